package roster

import "math"

// 集計結果。Presentes + Ausentes == Total（estado は2値なので常に成り立つ）
type Resumen struct {
	Total         int
	Presentes     int
	Ausentes      int
	PromedioHoras float64 // 小数2桁に丸め。空なら 0
}

// Aggregate: スナップショット1パスで集計する。純粋・決定的。
func Aggregate(snap Snapshot) Resumen {
	var r Resumen
	var horas int
	for i := 0; i < len(snap); i++ {
		r.Total++
		if snap[i].EstadoAsistencia == EstadoPresente {
			r.Presentes++
		} else {
			r.Ausentes++
		}
		horas += snap[i].HorasTrabajadas
	}
	if r.Total > 0 {
		r.PromedioHoras = round2(float64(horas) / float64(r.Total))
	}
	return r
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
