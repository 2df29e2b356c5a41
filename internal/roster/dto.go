package roster

import "time"

// ワイヤ上のフィールド名（リモートコレクション Empleados 互換）
const (
	FieldNombre = "nombre"
	FieldPuesto = "puesto"
	FieldEstado = "estadoAsistencia"
	FieldHoras  = "horasTrabajadas"
	FieldFoto   = "fotoPerfil"
)

type CreateEmpleadoRequest struct {
	EmpleadoID       int     `json:"empleadoId" binding:"required"`
	Nombre           string  `json:"nombre" binding:"required"`
	Puesto           string  `json:"puesto" binding:"required"`
	EstadoAsistencia *string `json:"estadoAsistencia,omitempty"` // 未指定なら Ausente
	HorasTrabajadas  *int    `json:"horasTrabajadas,omitempty"`
	FotoPerfil       *string `json:"fotoPerfil,omitempty"`
}

// 編集可能フィールドのみ。値はすべてテキスト入力として受けて
// EditSession.SetField で検証する（empleadoId と id は変更不可）。
type UpdateEmpleadoRequest struct {
	Nombre           *string `json:"nombre,omitempty"`
	Puesto           *string `json:"puesto,omitempty"`
	EstadoAsistencia *string `json:"estadoAsistencia,omitempty"`
	HorasTrabajadas  *string `json:"horasTrabajadas,omitempty"`
	FotoPerfil       *string `json:"fotoPerfil,omitempty"`
}

type EmpleadoResponse struct {
	ID               string    `json:"id"`
	EmpleadoID       int       `json:"empleadoId"`
	Nombre           string    `json:"nombre"`
	Puesto           string    `json:"puesto"`
	EstadoAsistencia string    `json:"estadoAsistencia"`
	HorasTrabajadas  int       `json:"horasTrabajadas"`
	FotoPerfil       *string   `json:"fotoPerfil,omitempty"`
	FechaRegistro    time.Time `json:"fechaRegistro"`
}

type ResumenResponse struct {
	Total         int     `json:"total"`
	Presentes     int     `json:"presentes"`
	Ausentes      int     `json:"ausentes"`
	PromedioHoras float64 `json:"promedioHoras"`
}

type ListResponse struct {
	Items   []EmpleadoResponse `json:"items"`
	Resumen ResumenResponse    `json:"resumen"`
}

func toListDTO(snap Snapshot) ListResponse {
	items := make([]EmpleadoResponse, 0, len(snap))
	for i := 0; i < len(snap); i++ {
		items = append(items, snap[i].toDTO())
	}
	return ListResponse{Items: items, Resumen: toResumenDTO(Aggregate(snap))}
}

func toResumenDTO(r Resumen) ResumenResponse {
	return ResumenResponse{
		Total:         r.Total,
		Presentes:     r.Presentes,
		Ausentes:      r.Ausentes,
		PromedioHoras: r.PromedioHoras,
	}
}
