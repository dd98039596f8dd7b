package logic

import (
	"context"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockConn implements driver.Conn for snapshot reads
type MockConn struct {
	driver.Conn
	Rows       [][]interface{}
	QueryErr   error
	QueryCalls int
	LastQuery  string
	LastArgs   []interface{}
}

func (m *MockConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	m.QueryCalls++
	m.LastQuery = query
	m.LastArgs = args
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return &MockRows{data: m.Rows}, nil
}

type MockRows struct {
	driver.Rows
	data     [][]interface{}
	rowIndex int
}

func (m *MockRows) Next() bool {
	m.rowIndex++
	return m.rowIndex <= len(m.data)
}

func (m *MockRows) Scan(dest ...interface{}) error {
	row := m.data[m.rowIndex-1]
	for i := range dest {
		assign(dest[i], row[i])
	}
	return nil
}

func (m *MockRows) Close() error {
	return nil
}

func (m *MockRows) Err() error {
	return nil
}

func assign(dest interface{}, val interface{}) {
	v := reflect.ValueOf(dest).Elem()
	v.Set(reflect.ValueOf(val))
}
