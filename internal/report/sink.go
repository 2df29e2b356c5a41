package report

import (
	"context"
	"crypto/rand"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
)

// FileGenerator は export ディレクトリに <ulid>.html を書き出して
// ファイル名を文書参照として返す
type FileGenerator struct {
	dir string
}

func NewFileGenerator(dir string) *FileGenerator {
	return &FileGenerator{dir: dir}
}

func (g *FileGenerator) Generate(ctx context.Context, html []byte) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", err
	}
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return "", err
	}
	name := id.String() + ".html"
	if err := os.WriteFile(filepath.Join(g.dir, name), html, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// LocalSharer は生成済み文書を静的配信パス（共有面）のURLとして差し出す。
// 文書が消えていれば共有不可として失敗する
type LocalSharer struct {
	dir      string
	basePath string
}

func NewLocalSharer(dir, basePath string) *LocalSharer {
	return &LocalSharer{dir: dir, basePath: basePath}
}

func (s *LocalSharer) Share(ctx context.Context, ref string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.dir, ref)); err != nil {
		return "", err
	}
	return path.Join(s.basePath, ref), nil
}
