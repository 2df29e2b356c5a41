package roster

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
)

// セッション状態
type SessionState string

const (
	StateViewing    SessionState = "Viewing"
	StateEditing    SessionState = "Editing"
	StateSaving     SessionState = "Saving"
	StateDeleting   SessionState = "Deleting"
	StateTerminated SessionState = "Terminated"
)

// EditSession が書き込みに使う面（Mirror が満たす）
type RecordWriter interface {
	Update(ctx context.Context, docID string, p Patch) error
	Remove(ctx context.Context, docID string) error
}

// EditSession は1レコード分の閲覧/編集/保存/削除のステートマシン。
//
//	Viewing → Editing → Saving → Viewing（成功）
//	                  Saving → Editing（失敗、入力は保持）
//	Viewing → Deleting → Terminated（成功） / Viewing（失敗）
//
// 作業コピー(work)を保存するまで正本(base)は触らない。保存は差分のみ送る。
// 同一セッションで同時に走る保存は1つまで（2本目は拒否、キューしない）。
type EditSession struct {
	mu     sync.Mutex
	writer RecordWriter
	state  SessionState
	base   Empleado
	work   Empleado
}

func NewEditSession(w RecordWriter, rec Empleado) *EditSession {
	return &EditSession{writer: w, state: StateViewing, base: rec, work: rec}
}

func (s *EditSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Record: 閲覧中は正本、編集中は作業コピーを返す
func (s *EditSession) Record() Empleado {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEditing || s.state == StateSaving {
		return s.work
	}
	return s.base
}

func (s *EditSession) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateViewing {
		return NewConflictError("beginEdit is only valid while viewing")
	}
	s.work = s.base
	s.state = StateEditing
	return nil
}

// SetField: テキスト入力を検証して作業コピーへ反映する。編集中のみ有効。
// 検証に失敗したら作業コピーは変更しない。empleadoId と id は変更不可。
func (s *EditSession) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return NewConflictError("setField is only valid while editing")
	}

	switch name {
	case FieldNombre:
		v := normalizeText(value)
		if v == "" {
			return NewInvalidArgumentError("nombre must not be empty")
		}
		s.work.Nombre = v
	case FieldPuesto:
		v := normalizeText(value)
		if v == "" {
			return NewInvalidArgumentError("puesto must not be empty")
		}
		s.work.Puesto = v
	case FieldEstado:
		e := EstadoAsistencia(strings.TrimSpace(value))
		if !e.Valid() {
			return NewInvalidArgumentError("estadoAsistencia must be Presente or Ausente")
		}
		s.work.EstadoAsistencia = e
	case FieldHoras:
		// 黙ってゼロ扱いにはしない。パース不能・負数は弾く
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return NewInvalidArgumentError("horasTrabajadas must be a non-negative integer")
		}
		s.work.HorasTrabajadas = n
	case FieldFoto:
		if value == "" {
			s.work.FotoPerfil = nil
		} else {
			v := value
			s.work.FotoPerfil = &v
		}
	case "empleadoId", "id":
		return NewInvalidArgumentError(name + " is immutable")
	default:
		return NewInvalidArgumentError("unknown field: " + name)
	}
	return nil
}

// Cancel: 作業コピーを捨てて閲覧に戻る。常に成功する（編集中以外では何もしない）。
func (s *EditSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEditing {
		s.work = s.base
		s.state = StateViewing
	}
}

// Save: 差分だけを merge-patch として送る。差分が無ければ書き込みせず成功。
// 失敗時は Editing と入力を保持（NOT_FOUND のみ Viewing へ戻す。対象が消えた
// レコードをさらに編集しても意味がないため）。
func (s *EditSession) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateSaving {
		s.mu.Unlock()
		return NewConflictError("save already in progress")
	}
	if s.state != StateEditing {
		s.mu.Unlock()
		return NewConflictError("save is only valid while editing")
	}

	patch := diffPatch(s.base, s.work)
	if len(patch) == 0 {
		s.state = StateViewing
		s.mu.Unlock()
		return nil
	}
	s.state = StateSaving
	work := s.work
	docID := s.base.DocID
	s.mu.Unlock()

	err := s.writer.Update(ctx, docID, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		var de *DomainError
		if errors.As(err, &de) && de.Code == ErrCodeNotFound {
			s.state = StateViewing
			return err
		}
		s.state = StateEditing
		return err
	}
	s.base = work
	s.state = StateViewing
	return nil
}

// Delete: 閲覧中のみ。成功すると Terminated（以後このセッションは使えない）。
func (s *EditSession) Delete(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateTerminated {
		s.mu.Unlock()
		return NewConflictError("session is terminated")
	}
	if s.state != StateViewing {
		s.mu.Unlock()
		return NewConflictError("delete is only valid while viewing")
	}
	s.state = StateDeleting
	docID := s.base.DocID
	s.mu.Unlock()

	err := s.writer.Remove(ctx, docID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateViewing
		return err
	}
	s.state = StateTerminated
	return nil
}

// base と work の差分をワイヤ名のパッチにする
func diffPatch(base, work Empleado) Patch {
	p := Patch{}
	if work.Nombre != base.Nombre {
		p[FieldNombre] = work.Nombre
	}
	if work.Puesto != base.Puesto {
		p[FieldPuesto] = work.Puesto
	}
	if work.EstadoAsistencia != base.EstadoAsistencia {
		p[FieldEstado] = string(work.EstadoAsistencia)
	}
	if work.HorasTrabajadas != base.HorasTrabajadas {
		p[FieldHoras] = work.HorasTrabajadas
	}
	if !equalFoto(work.FotoPerfil, base.FotoPerfil) {
		if work.FotoPerfil == nil {
			p[FieldFoto] = nil
		} else {
			p[FieldFoto] = *work.FotoPerfil
		}
	}
	return p
}

func equalFoto(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
