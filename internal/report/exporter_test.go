package report

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	html []byte
	ref  string
	err  error
}

func (g *fakeGenerator) Generate(ctx context.Context, html []byte) (string, error) {
	g.html = append([]byte(nil), html...)
	if g.err != nil {
		return "", g.err
	}
	if g.ref == "" {
		return "doc.html", nil
	}
	return g.ref, nil
}

type fakeSharer struct {
	ref string
	url string
	err error
}

func (s *fakeSharer) Share(ctx context.Context, ref string) (string, error) {
	s.ref = ref
	if s.err != nil {
		return "", s.err
	}
	if s.url == "" {
		return "/exports/" + ref, nil
	}
	return s.url, nil
}

func TestExporter_ExportText(t *testing.T) {
	gen := &fakeGenerator{}
	share := &fakeSharer{}
	e := NewExporter(gen, share)

	res, err := e.ExportText(context.Background(), "Resumen diario", "Presentes: 2 / Ausentes: 1")
	require.NoError(t, err)
	require.Equal(t, "doc.html", res.Ref)
	require.Equal(t, "/exports/doc.html", res.URL)
	require.Equal(t, "doc.html", share.ref)

	html := string(gen.html)
	require.Contains(t, html, "<h1>Resumen diario</h1>")
	require.Contains(t, html, "<p>Presentes: 2 / Ausentes: 1</p>")
	require.NotContains(t, html, "<img")
}

func TestExporter_ExportTextEscapesHTML(t *testing.T) {
	gen := &fakeGenerator{}
	e := NewExporter(gen, &fakeSharer{})

	_, err := e.ExportText(context.Background(), "a <b> c", "x & y")
	require.NoError(t, err)
	html := string(gen.html)
	require.Contains(t, html, "a &lt;b&gt; c")
	require.Contains(t, html, "x &amp; y")
}

func TestExporter_ExportImage(t *testing.T) {
	gen := &fakeGenerator{}
	e := NewExporter(gen, &fakeSharer{})

	img := []byte{0x89, 'P', 'N', 'G'}
	_, err := e.ExportImage(context.Background(), "Horas por empleado", img, "")
	require.NoError(t, err)

	html := string(gen.html)
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)
	require.Contains(t, html, want, "mime 省略時は image/png")
	require.NotContains(t, html, "<p>")
}

func TestExporter_ComposeFailures(t *testing.T) {
	gen := &fakeGenerator{}
	e := NewExporter(gen, &fakeSharer{})
	ctx := context.Background()

	_, err := e.ExportText(ctx, "", "body")
	requireStage(t, err, StageCompose)

	_, err = e.ExportImage(ctx, "", []byte{1}, "image/png")
	requireStage(t, err, StageCompose)

	_, err = e.ExportImage(ctx, "title", nil, "image/png")
	requireStage(t, err, StageCompose)

	require.Nil(t, gen.html, "合成に失敗したら生成は呼ばれない")
}

func TestExporter_GenerateFailure(t *testing.T) {
	cause := errors.New("disk full")
	share := &fakeSharer{}
	e := NewExporter(&fakeGenerator{err: cause}, share)

	_, err := e.ExportText(context.Background(), "t", "")
	requireStage(t, err, StageGenerate)
	require.ErrorIs(t, err, cause)
	require.Empty(t, share.ref, "生成に失敗したら共有は呼ばれない")
}

func TestExporter_ShareFailure(t *testing.T) {
	cause := errors.New("no share target")
	e := NewExporter(&fakeGenerator{}, &fakeSharer{err: cause})

	_, err := e.ExportText(context.Background(), "t", "")
	requireStage(t, err, StageShare)
	require.ErrorIs(t, err, cause)
}

func requireStage(t *testing.T, err error, stage string) {
	t.Helper()
	require.Error(t, err)
	var ee *ExportError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, stage, ee.Stage)
}

// ===== ファイル実装 =====

func TestFileGeneratorAndLocalSharer(t *testing.T) {
	dir := t.TempDir()
	gen := NewFileGenerator(filepath.Join(dir, "exports"))
	share := NewLocalSharer(filepath.Join(dir, "exports"), "/exports")
	e := NewExporter(gen, share)

	res, err := e.ExportText(context.Background(), "Resumen", "cuerpo")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(res.Ref, ".html"))
	require.Equal(t, "/exports/"+res.Ref, res.URL)

	data, err := os.ReadFile(filepath.Join(dir, "exports", res.Ref))
	require.NoError(t, err)
	require.Contains(t, string(data), "<h1>Resumen</h1>")
}

func TestLocalSharer_MissingDocument(t *testing.T) {
	share := NewLocalSharer(t.TempDir(), "/exports")
	_, err := share.Share(context.Background(), "nope.html")
	require.Error(t, err)
}
