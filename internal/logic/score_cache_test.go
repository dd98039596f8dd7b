package logic

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// MockCacheClient is an in-memory CacheClient
type MockCacheClient struct {
	data    map[string]string
	ttls    map[string]time.Duration
	GetErr  error
	SetErr  error
	getKeys []string
}

func NewMockCacheClient() *MockCacheClient {
	return &MockCacheClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *MockCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.getKeys = append(m.getKeys, key)
	if m.GetErr != nil {
		return redis.NewStringResult("", m.GetErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *MockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.SetErr != nil {
		return redis.NewStatusResult("", m.SetErr)
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisScoreCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := NewMockCacheClient()
	cache := NewRedisScoreCache(client, 10*time.Minute)

	fp := Fingerprint(scenarioStats())
	if _, ok, err := cache.Get(ctx, fp); ok || err != nil {
		t.Fatalf("Get() on empty cache = %v, %v, want miss", ok, err)
	}

	want, _ := ComputeScore(scenarioStats())
	if err := cache.Set(ctx, fp, &want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := cache.Get(ctx, fp)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, want hit", ok, err)
	}
	if *got != want {
		t.Errorf("Get() = %+v, want %+v", *got, want)
	}

	key := "kvk:score:" + FormulaVersion + ":" + fp
	if client.ttls[key] != 10*time.Minute {
		t.Errorf("ttl for %s = %v, want 10m", key, client.ttls[key])
	}
}

func TestRedisScoreCache_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("redis down")

	client := NewMockCacheClient()
	client.GetErr = boom
	client.SetErr = boom
	cache := NewRedisScoreCache(client, time.Minute)

	if _, ok, err := cache.Get(ctx, "fp"); ok || !errors.Is(err, boom) {
		t.Errorf("Get() = %v, %v, want wrapped %v", ok, err, boom)
	}
	b, _ := ComputeScore(scenarioStats())
	if err := cache.Set(ctx, "fp", &b); !errors.Is(err, boom) {
		t.Errorf("Set() error = %v, want wrapped %v", err, boom)
	}

	corrupt := NewMockCacheClient()
	corrupt.data[scoreCacheKey("fp")] = "{not json"
	_, ok, err := NewRedisScoreCache(corrupt, time.Minute).Get(ctx, "fp")
	if ok || err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("Get() on corrupt entry = %v, %v, want decode error", ok, err)
	}
}
