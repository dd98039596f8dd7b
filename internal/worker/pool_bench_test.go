package worker

import (
	"testing"

	"go.uber.org/zap"
)

func BenchmarkProcessBatch(b *testing.B) {
	p := NewPool(PoolConfig{ClickHouse: &MockClickHouseConn{}, Logger: zap.NewNop()})

	batch := make([]Job, 500)
	for i := range batch {
		batch[i] = Job{Snapshot: snapshot(i + 1)}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := p.processBatch(batch); err != nil {
			b.Fatal(err)
		}
	}
}
