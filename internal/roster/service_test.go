package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newServiceForTest(t *testing.T) (*Service, *fakeRemote) {
	t.Helper()
	remote := newFakeRemote()
	m := startedMirror(t, remote)
	return NewService(m), remote
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestService_CreateAndGet(t *testing.T) {
	svc, _ := newServiceForTest(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateEmpleadoRequest{
		EmpleadoID: 101,
		Nombre:     "  Ana María  ",
		Puesto:     "Cajera",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)
	require.Equal(t, 101, res.EmpleadoID)
	require.Equal(t, "Ana María", res.Nombre, "入力は trim される")
	require.Equal(t, string(EstadoAusente), res.EstadoAsistencia, "estado 未指定は Ausente")
	require.Zero(t, res.HorasTrabajadas)
	require.False(t, res.FechaRegistro.IsZero())

	got, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, res, got)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := newServiceForTest(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateEmpleadoRequest
	}{
		{"empleadoId zero", CreateEmpleadoRequest{EmpleadoID: 0, Nombre: "A", Puesto: "B"}},
		{"empleadoId negative", CreateEmpleadoRequest{EmpleadoID: -3, Nombre: "A", Puesto: "B"}},
		{"nombre empty", CreateEmpleadoRequest{EmpleadoID: 1, Nombre: "  ", Puesto: "B"}},
		{"puesto empty", CreateEmpleadoRequest{EmpleadoID: 1, Nombre: "A", Puesto: ""}},
		{"estado invalid", CreateEmpleadoRequest{EmpleadoID: 1, Nombre: "A", Puesto: "B", EstadoAsistencia: strPtr("Tarde")}},
		{"horas negative", CreateEmpleadoRequest{EmpleadoID: 1, Nombre: "A", Puesto: "B", HorasTrabajadas: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			require.Error(t, err)
			require.Equal(t, ErrCodeInvalidArgument, codeOf(err))
		})
	}
}

func TestService_CreateRejectsDuplicateNumber(t *testing.T) {
	svc, _ := newServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 101, Nombre: "Ana", Puesto: "Cajera"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 101, Nombre: "Luis", Puesto: "Gerente"})
	require.Error(t, err)
	require.Equal(t, ErrCodeDuplicateKey, codeOf(err))

	// 別番号なら通る
	_, err = svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 202, Nombre: "Luis", Puesto: "Gerente"})
	require.NoError(t, err)
}

func TestService_UpdateSendsOnlyChangedFields(t *testing.T) {
	svc, remote := newServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 101, Nombre: "Ana", Puesto: "Cajera"})
	require.NoError(t, err)

	res, err := svc.Update(ctx, created.ID, UpdateEmpleadoRequest{
		Nombre: strPtr("Ana"), // 同値 → 差分に含まれない
		Puesto: strPtr("Gerente"),
	})
	require.NoError(t, err)
	require.Equal(t, "Gerente", res.Puesto)

	patches := remote.capturedPatches()
	require.Len(t, patches, 1)
	require.Equal(t, Patch{FieldPuesto: "Gerente"}, patches[0])
}

func TestService_UpdateRejectsBadHoursText(t *testing.T) {
	svc, remote := newServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 101, Nombre: "Ana", Puesto: "Cajera"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateEmpleadoRequest{HorasTrabajadas: strPtr("abc")})
	require.Error(t, err)
	require.Equal(t, ErrCodeInvalidArgument, codeOf(err))
	require.Empty(t, remote.capturedPatches(), "検証失敗で書き込みは発行されない")

	// 有効なテキストなら通る
	res, err := svc.Update(ctx, created.ID, UpdateEmpleadoRequest{HorasTrabajadas: strPtr("8")})
	require.NoError(t, err)
	require.Equal(t, 8, res.HorasTrabajadas)
}

func TestService_UpdateMissingRecord(t *testing.T) {
	svc, _ := newServiceForTest(t)
	_, err := svc.Update(context.Background(), "no-such-doc", UpdateEmpleadoRequest{Nombre: strPtr("X")})
	require.Error(t, err)
	require.Equal(t, ErrCodeNotFound, codeOf(err))
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc, _ := newServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 101, Nombre: "Ana", Puesto: "Cajera"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID)) // 既に消えていても成功

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	require.Equal(t, ErrCodeNotFound, codeOf(err))
}

func TestService_Stats(t *testing.T) {
	svc, _ := newServiceForTest(t)
	ctx := context.Background()

	estado := string(EstadoPresente)
	_, err := svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 1, Nombre: "A", Puesto: "P", EstadoAsistencia: &estado, HorasTrabajadas: intPtr(8)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 2, Nombre: "B", Puesto: "P", EstadoAsistencia: &estado, HorasTrabajadas: intPtr(6)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 3, Nombre: "C", Puesto: "P", HorasTrabajadas: intPtr(0)})
	require.NoError(t, err)

	res, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	require.Equal(t, 2, res.Presentes)
	require.Equal(t, 1, res.Ausentes)
	require.InDelta(t, 4.67, res.PromedioHoras, 1e-9)
}

func TestService_List(t *testing.T) {
	svc, _ := newServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 1, Nombre: "A", Puesto: "P"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateEmpleadoRequest{EmpleadoID: 2, Nombre: "B", Puesto: "P"})
	require.NoError(t, err)

	res := svc.List(ctx)
	require.Len(t, res.Items, 2)
	require.Equal(t, 2, res.Resumen.Total)
	// 登録順が保たれる
	require.Equal(t, 1, res.Items[0].EmpleadoID)
	require.Equal(t, 2, res.Items[1].EmpleadoID)
}
