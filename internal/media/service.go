package media

import (
	"crypto/rand"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// 許可する拡張子（画像のみ）
var allowedExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

var ErrUnsupportedType = errors.New("unsupported media type")

// Service は端末のメディアピッカー相当の受け口。選択された画像を保存して
// 不透明なURIを返す。呼び出し側はこのURIを fotoPerfil としてそのまま扱う。
type Service struct {
	dir      string
	basePath string
}

func NewService(dir, basePath string) *Service {
	return &Service{dir: dir, basePath: basePath}
}

func (s *Service) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedExt[ext]; !ok {
		return "", ErrUnsupportedType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return "", err
	}
	name := id.String() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return path.Join(s.basePath, name), nil
}
