package roster

import "time"

// 出席状態（ワイヤ上は "Presente" / "Ausente" の2値固定）
type EstadoAsistencia string

const (
	EstadoPresente EstadoAsistencia = "Presente"
	EstadoAusente  EstadoAsistencia = "Ausente"
)

func (e EstadoAsistencia) Valid() bool {
	return e == EstadoPresente || e == EstadoAusente
}

// Service ↔ Store で使うモデル。DocID と FechaRegistro は作成時にストアが
// 採番し、以後不変。EmpleadoID も作成後は変更不可。
type Empleado struct {
	DocID            string
	EmpleadoID       int
	Nombre           string
	Puesto           string
	EstadoAsistencia EstadoAsistencia
	HorasTrabajadas  int
	FotoPerfil       *string
	FechaRegistro    time.Time
}

// DB行に対応（スキャン用）
type empleadoRow struct {
	DocID            string
	EmpleadoID       int
	Nombre           string
	Puesto           string
	EstadoAsistencia string
	HorasTrabajadas  int
	FotoPerfil       *string
	FechaRegistro    time.Time
}

func (r empleadoRow) toModel() Empleado {
	return Empleado{
		DocID:            r.DocID,
		EmpleadoID:       r.EmpleadoID,
		Nombre:           r.Nombre,
		Puesto:           r.Puesto,
		EstadoAsistencia: EstadoAsistencia(r.EstadoAsistencia),
		HorasTrabajadas:  r.HorasTrabajadas,
		FotoPerfil:       r.FotoPerfil,
		FechaRegistro:    r.FechaRegistro.UTC(),
	}
}

// Snapshot はある時点の名簿全体。fecha_registro 昇順で安定。
// 購読者へは値として渡し、受け取り側で書き換えない前提。
type Snapshot []Empleado

func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// マージパッチ。キーはワイヤ名（nombre, horasTrabajadas など）。
type Patch map[string]any

func (p Patch) Clone() Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (a Empleado) toDTO() EmpleadoResponse {
	return EmpleadoResponse{
		ID:               a.DocID,
		EmpleadoID:       a.EmpleadoID,
		Nombre:           a.Nombre,
		Puesto:           a.Puesto,
		EstadoAsistencia: string(a.EstadoAsistencia),
		HorasTrabajadas:  a.HorasTrabajadas,
		FotoPerfil:       a.FotoPerfil,
		FechaRegistro:    a.FechaRegistro,
	}
}
