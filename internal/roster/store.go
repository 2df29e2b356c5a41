package roster

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/oklog/ulid/v2"

	platformdb "asistencia-backend/internal/platform/db"
)

// リモートコレクション Empleados の操作面。本番は MySQL 実装、テストはフェイク。
type RemoteCollection interface {
	List(ctx context.Context) (Snapshot, error)
	Insert(ctx context.Context, e Empleado) (Empleado, error)
	Patch(ctx context.Context, docID string, p Patch) error
	Delete(ctx context.Context, docID string) error
}

// ===== 採番・時計のシーム =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ===== MySQL実装 =====

const mysqlErrDupEntry = 1062

type Store struct {
	db    *sql.DB
	clock Clock
	id    IDGen
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, clock: realClock{}, id: ulidGen{}}
}

const selectColumns = `doc_id, empleado_id, nombre, puesto, estado_asistencia, horas_trabajadas, foto_perfil, fecha_registro`

// List: fecha_registro 昇順（到着順に相当）で全件
func (s *Store) List(ctx context.Context) (Snapshot, error) {
	q := `
	SELECT ` + selectColumns + `
	FROM empleados
	ORDER BY fecha_registro ASC, doc_id ASC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out Snapshot
	for rows.Next() {
		var r empleadoRow
		if err := rows.Scan(&r.DocID, &r.EmpleadoID, &r.Nombre, &r.Puesto,
			&r.EstadoAsistencia, &r.HorasTrabajadas, &r.FotoPerfil, &r.FechaRegistro); err != nil {
			return nil, err
		}
		out = append(out, r.toModel())
	}
	return out, rows.Err()
}

// Insert: doc_id（ULID）と fecha_registro をここで採番する。
// empleado_id は UNIQUE KEY なので、事前チェックをすり抜けた競合負け側は
// ここで DUPLICATE_KEY になる。
func (s *Store) Insert(ctx context.Context, e Empleado) (Empleado, error) {
	id, err := s.id.New()
	if err != nil {
		return Empleado{}, err
	}
	now := s.clock.Now().UTC()

	const q = `
	INSERT INTO empleados
	(doc_id, empleado_id, nombre, puesto, estado_asistencia, horas_trabajadas, foto_perfil, fecha_registro)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, q,
		id, e.EmpleadoID, e.Nombre, e.Puesto, string(e.EstadoAsistencia),
		e.HorasTrabajadas, fotoOrNil(e.FotoPerfil), now)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlErrDupEntry {
			return Empleado{}, NewDuplicateKeyError(fmt.Sprintf("empleadoId %d already exists", e.EmpleadoID))
		}
		return Empleado{}, err
	}

	e.DocID = id
	e.FechaRegistro = now
	return e, nil
}

// ワイヤ名 → カラム名
var patchColumns = map[string]string{
	FieldNombre: "nombre",
	FieldPuesto: "puesto",
	FieldEstado: "estado_asistencia",
	FieldHoras:  "horas_trabajadas",
	FieldFoto:   "foto_perfil",
}

// Patch: 変更フィールドのみの動的 UPDATE。対象が消えていれば NOT_FOUND。
// 存在確認と更新の間に消されると困るので1トランザクションで行う。
func (s *Store) Patch(ctx context.Context, docID string, p Patch) error {
	if len(p) == 0 {
		return nil
	}

	var (
		sets []string
		args []any
	)
	for field, col := range patchColumns {
		v, ok := p[field]
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if len(sets) != len(p) {
		return NewInvalidArgumentError("patch contains an unknown or immutable field")
	}

	return platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		// 同値更新だと RowsAffected が 0 になるので存在は別途確認する
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM empleados WHERE doc_id = ? FOR UPDATE`, docID).Scan(&one)
		if err == sql.ErrNoRows {
			return NewNotFoundError("empleado " + docID + " not found")
		}
		if err != nil {
			return err
		}

		args = append(args, docID)
		q := "UPDATE empleados SET " + strings.Join(sets, ", ") + " WHERE doc_id = ?"
		_, err = tx.ExecContext(ctx, q, args...)
		return err
	})
}

// Delete: 冪等。既に無い doc_id を消してもエラーにしない。
func (s *Store) Delete(ctx context.Context, docID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM empleados WHERE doc_id = ?`, docID)
	return err
}

// ===== helpers =====

func fotoOrNil(s *string) any {
	if s == nil {
		return nil
	}
	if *s == "" {
		return nil
	}
	return *s
}
