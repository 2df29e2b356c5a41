package report

import "fmt"

// エクスポートはどの段階で失敗しても ExportError に畳む。呼び出し元の
// セッションには波及させない（非致命）。
const (
	StageCompose  = "compose"
	StageGenerate = "generate"
	StageShare    = "share"
)

type ExportError struct {
	Stage string // compose / generate / share
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("EXPORT_FAILED(%s): %v", e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func newExportError(stage string, err error) error {
	return &ExportError{Stage: stage, Err: err}
}
