package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"html/template"
)

// 文書生成のコラボレータ。HTMLを受けて文書参照（ファイル名など）を返す
type Generator interface {
	Generate(ctx context.Context, html []byte) (string, error)
}

// 共有面のコラボレータ。文書参照を共有用URLにして差し出す
type Sharer interface {
	Share(ctx context.Context, ref string) (string, error)
}

type ExportResult struct {
	Ref string `json:"referencia"`
	URL string `json:"url"`
}

// Exporter は指標テキストまたはチャート画像を共有可能な文書に仕立てる。
// 合成 → 生成 → 共有 のどこで失敗しても ExportError（段階タグ付き）を返す。
type Exporter struct {
	gen   Generator
	share Sharer
}

func NewExporter(gen Generator, share Sharer) *Exporter {
	return &Exporter{gen: gen, share: share}
}

var docTmpl = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 40px; }
h1 { color: #1F2937; }
img { max-width: 100%; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Body}}<p>{{.Body}}</p>{{end}}
{{if .ImageSrc}}<img src="{{.ImageSrc}}" alt="{{.Title}}">{{end}}
</body>
</html>
`))

type docData struct {
	Title    string
	Body     string
	ImageSrc template.URL
}

// ExportText: タイトル＋本文のみの文書
func (e *Exporter) ExportText(ctx context.Context, title, body string) (ExportResult, error) {
	if title == "" {
		return ExportResult{}, newExportError(StageCompose, errors.New("title is required"))
	}
	return e.export(ctx, docData{Title: title, Body: body})
}

// ExportImage: 描画済みチャートの画像を data URI として埋め込む。
// 画像のキャプチャ自体は外部コラボレータの仕事で、ここは受け取るだけ。
func (e *Exporter) ExportImage(ctx context.Context, title string, img []byte, mimeType string) (ExportResult, error) {
	if title == "" {
		return ExportResult{}, newExportError(StageCompose, errors.New("title is required"))
	}
	if len(img) == 0 {
		return ExportResult{}, newExportError(StageCompose, errors.New("image is empty"))
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	src := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(img)
	return e.export(ctx, docData{Title: title, ImageSrc: template.URL(src)})
}

func (e *Exporter) export(ctx context.Context, data docData) (ExportResult, error) {
	var buf bytes.Buffer
	if err := docTmpl.Execute(&buf, data); err != nil {
		return ExportResult{}, newExportError(StageCompose, err)
	}

	ref, err := e.gen.Generate(ctx, buf.Bytes())
	if err != nil {
		return ExportResult{}, newExportError(StageGenerate, err)
	}

	url, err := e.share.Share(ctx, ref)
	if err != nil {
		return ExportResult{}, newExportError(StageShare, err)
	}
	return ExportResult{Ref: ref, URL: url}, nil
}
