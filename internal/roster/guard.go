package roster

// IsAvailable: candidate がスナップショット内のどの empleadoId とも
// 重複しなければ true。純粋関数、O(n)。
//
// チェック→作成はアトミックではないので、同時作成どうしは両方ここを
// 通過しうる。最終防衛線は empleados.empleado_id の UNIQUE KEY。
func IsAvailable(snap Snapshot, candidate int) bool {
	for i := 0; i < len(snap); i++ {
		if snap[i].EmpleadoID == candidate {
			return false
		}
	}
	return true
}
