package logic

import (
	"context"
	"errors"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockPgPool implements PgPool for testing
type MockPgPool struct {
	Row       []interface{}
	RowErr    error
	Records   [][]interface{}
	QueryErr  error
	Queries   []string
	QueryArgs [][]interface{}
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.Queries = append(m.Queries, sql)
	m.QueryArgs = append(m.QueryArgs, args)
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return &MockPgRows{data: m.Records}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.Queries = append(m.Queries, sql)
	m.QueryArgs = append(m.QueryArgs, args)
	return &MockPgRow{values: m.Row, err: m.RowErr}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

type MockPgRow struct {
	values []interface{}
	err    error
}

func (m *MockPgRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	return scanInto(dest, m.values)
}

type MockPgRows struct {
	pgx.Rows
	data   [][]interface{}
	index  int
	closed bool
}

func (m *MockPgRows) Next() bool {
	if m.index >= len(m.data) {
		return false
	}
	m.index++
	return true
}

func (m *MockPgRows) Scan(dest ...any) error {
	return scanInto(dest, m.data[m.index-1])
}

func (m *MockPgRows) Close() { m.closed = true }

func (m *MockPgRows) Err() error { return nil }

func scanInto(dest []any, values []interface{}) error {
	if len(dest) != len(values) {
		return errors.New("mock: column count mismatch")
	}
	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(values[i]))
	}
	return nil
}
