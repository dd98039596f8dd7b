package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn

	mu         sync.Mutex
	batches    []*MockBatch
	PrepareErr error
	SendErr    error
	AppendErr  error

	// RejectKingdom makes Append fail for rows of that kingdom
	RejectKingdom int32
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	if m.PrepareErr != nil {
		return nil, m.PrepareErr
	}
	b := &MockBatch{mu: &m.mu, query: query, sendErr: m.SendErr, appendErr: m.AppendErr, rejectKingdom: m.RejectKingdom}
	m.mu.Lock()
	m.batches = append(m.batches, b)
	m.mu.Unlock()
	return b, nil
}

// SentRows returns every row of every successfully sent batch
func (m *MockClickHouseConn) SentRows() [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows [][]interface{}
	for _, b := range m.batches {
		if b.sent {
			rows = append(rows, b.rows...)
		}
	}
	return rows
}

func (m *MockClickHouseConn) BatchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.batches)
}

type MockBatch struct {
	driver.Batch
	mu        *sync.Mutex
	query     string
	rows      [][]interface{}
	sent      bool
	sendErr   error
	appendErr error

	rejectKingdom int32
}

func (m *MockBatch) IsSent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

func (m *MockBatch) Rows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	if m.rejectKingdom != 0 && len(v) > 1 && v[1] == m.rejectKingdom {
		return errors.New("rejected row")
	}
	m.rows = append(m.rows, v)
	return nil
}

func (m *MockBatch) Abort() error {
	return nil
}

func (m *MockBatch) Send() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = true
	return nil
}
