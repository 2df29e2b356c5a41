package roster

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ===== Service =====

type Service struct {
	mirror *Mirror
}

func NewService(m *Mirror) *Service {
	return &Service{mirror: m}
}

func (s *Service) Subscribe(fn SubscribeFunc) (cancel func()) {
	return s.mirror.Subscribe(fn)
}

// GET /empleados（鏡像の現在値＋集計）
func (s *Service) List(ctx context.Context) ListResponse {
	return toListDTO(s.mirror.Latest())
}

// GET /empleados/:id
func (s *Service) Get(ctx context.Context, docID string) (EmpleadoResponse, error) {
	rec, err := s.find(ctx, docID)
	if err != nil {
		return EmpleadoResponse{}, err
	}
	return rec.toDTO(), nil
}

// POST /empleados
func (s *Service) Create(ctx context.Context, req CreateEmpleadoRequest) (EmpleadoResponse, error) {
	if req.EmpleadoID <= 0 {
		return EmpleadoResponse{}, NewInvalidArgumentError("empleadoId must be a positive integer")
	}
	nombre := normalizeText(req.Nombre)
	if nombre == "" {
		return EmpleadoResponse{}, NewInvalidArgumentError("nombre is required")
	}
	puesto := normalizeText(req.Puesto)
	if puesto == "" {
		return EmpleadoResponse{}, NewInvalidArgumentError("puesto is required")
	}

	estado := EstadoAusente
	if req.EstadoAsistencia != nil && *req.EstadoAsistencia != "" {
		estado = EstadoAsistencia(*req.EstadoAsistencia)
		if !estado.Valid() {
			return EmpleadoResponse{}, NewInvalidArgumentError("estadoAsistencia must be Presente or Ausente")
		}
	}

	horas := 0
	if req.HorasTrabajadas != nil {
		if *req.HorasTrabajadas < 0 {
			return EmpleadoResponse{}, NewInvalidArgumentError("horasTrabajadas must be >= 0")
		}
		horas = *req.HorasTrabajadas
	}

	// 一回読みで一意性チェック。アトミックではないので最終防衛は
	// ストア側の UNIQUE KEY（Insert が DUPLICATE_KEY を返す）。
	snap, err := s.mirror.ReadOnce(ctx)
	if err != nil {
		return EmpleadoResponse{}, err
	}
	if !IsAvailable(snap, req.EmpleadoID) {
		return EmpleadoResponse{}, NewDuplicateKeyError(fmt.Sprintf("empleadoId %d already exists", req.EmpleadoID))
	}

	created, err := s.mirror.Create(ctx, Empleado{
		EmpleadoID:       req.EmpleadoID,
		Nombre:           nombre,
		Puesto:           puesto,
		EstadoAsistencia: estado,
		HorasTrabajadas:  horas,
		FotoPerfil:       normalizeFoto(req.FotoPerfil),
	})
	if err != nil {
		return EmpleadoResponse{}, err
	}
	return created.toDTO(), nil
}

// PUT /empleados/:id
// EditSession 越しに変更分だけ保存する
func (s *Service) Update(ctx context.Context, docID string, req UpdateEmpleadoRequest) (EmpleadoResponse, error) {
	rec, err := s.find(ctx, docID)
	if err != nil {
		return EmpleadoResponse{}, err
	}

	sess := NewEditSession(s.mirror, rec)
	if err := sess.BeginEdit(); err != nil {
		return EmpleadoResponse{}, err
	}

	fields := []struct {
		name  string
		value *string
	}{
		{FieldNombre, req.Nombre},
		{FieldPuesto, req.Puesto},
		{FieldEstado, req.EstadoAsistencia},
		{FieldHoras, req.HorasTrabajadas},
		{FieldFoto, req.FotoPerfil},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := sess.SetField(f.name, *f.value); err != nil {
			sess.Cancel()
			return EmpleadoResponse{}, err
		}
	}

	if err := sess.Save(ctx); err != nil {
		return EmpleadoResponse{}, err
	}
	return sess.Record().toDTO(), nil
}

// DELETE /empleados/:id（冪等）
func (s *Service) Delete(ctx context.Context, docID string) error {
	rec, err := s.find(ctx, docID)
	if err != nil {
		if codeOf(err) == ErrCodeNotFound {
			return nil
		}
		return err
	}
	sess := NewEditSession(s.mirror, rec)
	return sess.Delete(ctx)
}

// GET /empleados/stats（購読は張らず一回読みで集計）
func (s *Service) Stats(ctx context.Context) (ResumenResponse, error) {
	snap, err := s.mirror.ReadOnce(ctx)
	if err != nil {
		return ResumenResponse{}, err
	}
	return toResumenDTO(Aggregate(snap)), nil
}

func (s *Service) find(ctx context.Context, docID string) (Empleado, error) {
	snap, err := s.mirror.ReadOnce(ctx)
	if err != nil {
		return Empleado{}, err
	}
	for i := 0; i < len(snap); i++ {
		if snap[i].DocID == docID {
			return snap[i], nil
		}
	}
	return Empleado{}, NewNotFoundError("empleado " + docID + " not found")
}

// 前後空白を落として NFC に正規化（アクセント付きの名前の比較を安定させる）
func normalizeText(v string) string {
	return norm.NFC.String(strings.TrimSpace(v))
}

func normalizeFoto(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
