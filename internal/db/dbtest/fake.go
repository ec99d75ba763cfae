// Package dbtest tiene dobles de pgx para testear repositorios sin Postgres.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeDB implementa db.DBTX registrando la última query.
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	LastQuery      string
	LastArgs       []any
	ExecCalled     bool
	QueryRowCalled bool
	QueryCalled    bool
}

func (db *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.ExecCalled = true
	db.LastQuery = sql
	db.LastArgs = args
	if db.ExecFn == nil {
		return pgconn.CommandTag{}, errors.New("unexpected Exec call")
	}
	return db.ExecFn(ctx, sql, args...)
}

func (db *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.QueryRowCalled = true
	db.LastQuery = sql
	db.LastArgs = args
	if db.QueryRowFn == nil {
		return &FakeRow{Err: errors.New("unexpected QueryRow call")}
	}
	return db.QueryRowFn(ctx, sql, args...)
}

func (db *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.QueryCalled = true
	db.LastQuery = sql
	db.LastArgs = args
	if db.QueryFn == nil {
		return nil, errors.New("unexpected Query call")
	}
	return db.QueryFn(ctx, sql, args...)
}

// Tag arma un CommandTag como el que devuelve Postgres ("DELETE 1", "UPDATE 0").
func Tag(text string) pgconn.CommandTag {
	return pgconn.NewCommandTag(text)
}

type FakeRow struct {
	Values []any
	Err    error
}

func (row *FakeRow) Scan(dest ...any) error {
	if row.Err != nil {
		return row.Err
	}
	return AssignValues(dest, row.Values)
}

type FakeRows struct {
	Rows    [][]any
	Error   error
	ScanErr error

	idx    int
	closed bool
}

func (rows *FakeRows) Close() {
	rows.closed = true
}

// Closed indica si el repositorio cerró el cursor.
func (rows *FakeRows) Closed() bool {
	return rows.closed
}

func (rows *FakeRows) Err() error {
	return rows.Error
}

func (rows *FakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}

func (rows *FakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}

func (rows *FakeRows) Next() bool {
	if rows.closed {
		return false
	}
	if rows.idx >= len(rows.Rows) {
		rows.closed = true
		return false
	}
	rows.idx++
	return true
}

func (rows *FakeRows) Scan(dest ...any) error {
	if rows.ScanErr != nil {
		return rows.ScanErr
	}
	if rows.idx == 0 || rows.idx > len(rows.Rows) {
		return errors.New("scan called without next")
	}
	return AssignValues(dest, rows.Rows[rows.idx-1])
}

func (rows *FakeRows) Values() ([]any, error) {
	return nil, errors.New("not implemented")
}

func (rows *FakeRows) RawValues() [][]byte {
	return nil
}

func (rows *FakeRows) Conn() *pgx.Conn {
	return nil
}

// AssignValues copia values en dest por reflexión, como haría pgx al escanear.
func AssignValues(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("dest len %d does not match values len %d", len(dest), len(values))
	}
	for i, d := range dest {
		if d == nil {
			continue
		}
		if err := assignValue(d, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dest any, value any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return fmt.Errorf("dest is not pointer")
	}
	if value == nil {
		destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
		return nil
	}
	valueValue := reflect.ValueOf(value)
	destElem := destValue.Elem()
	if destElem.Kind() == reflect.Ptr {
		ptrValue := reflect.New(destElem.Type().Elem())
		ptrValue.Elem().Set(valueValue.Convert(destElem.Type().Elem()))
		destElem.Set(ptrValue)
		return nil
	}
	destElem.Set(valueValue.Convert(destElem.Type()))
	return nil
}

// NormalizeSQL colapsa espacios para comparar queries.
func NormalizeSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
