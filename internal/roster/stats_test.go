package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	// Present/Present/Absent, 8h/6h/0h → 平均 4.67（2桁丸め）
	snap := Snapshot{
		{EmpleadoID: 1, EstadoAsistencia: EstadoPresente, HorasTrabajadas: 8},
		{EmpleadoID: 2, EstadoAsistencia: EstadoPresente, HorasTrabajadas: 6},
		{EmpleadoID: 3, EstadoAsistencia: EstadoAusente, HorasTrabajadas: 0},
	}

	r := Aggregate(snap)
	require.Equal(t, 3, r.Total)
	require.Equal(t, 2, r.Presentes)
	require.Equal(t, 1, r.Ausentes)
	require.InDelta(t, 4.67, r.PromedioHoras, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	r := Aggregate(nil)
	require.Equal(t, Resumen{}, r)

	r = Aggregate(Snapshot{})
	require.Equal(t, 0, r.Total)
	require.Zero(t, r.PromedioHoras)
}

func TestAggregate_CountsSumToTotal(t *testing.T) {
	cases := []Snapshot{
		{{EstadoAsistencia: EstadoPresente}},
		{{EstadoAsistencia: EstadoAusente}},
		{
			{EstadoAsistencia: EstadoPresente, HorasTrabajadas: 7},
			{EstadoAsistencia: EstadoAusente},
			{EstadoAsistencia: EstadoPresente, HorasTrabajadas: 9},
			{EstadoAsistencia: EstadoAusente},
		},
	}
	for _, snap := range cases {
		r := Aggregate(snap)
		require.Equal(t, r.Total, r.Presentes+r.Ausentes)
	}
}

func TestAggregate_Average(t *testing.T) {
	snap := Snapshot{
		{EstadoAsistencia: EstadoPresente, HorasTrabajadas: 1},
		{EstadoAsistencia: EstadoPresente, HorasTrabajadas: 2},
	}
	r := Aggregate(snap)
	require.InDelta(t, 1.5, r.PromedioHoras, 1e-9)
}
