package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T, prefix string) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	s := NewRedisWithClient(client, prefix)
	t.Cleanup(func() { _ = s.Close() })
	return s, server
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	s, _ := newTestRedis(t, "careerdeck:")
	exerciseStore(t, s)
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, server := newTestRedis(t, "careerdeck:")

	if err := s.Set(ctx, "jobTrackerDigest_2024-05-01", []byte(`{"date":"2024-05-01"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := server.Get("careerdeck:jobTrackerDigest_2024-05-01")
	if err != nil {
		t.Fatalf("prefixed key not found on server: %v", err)
	}
	if got != `{"date":"2024-05-01"}` {
		t.Fatalf("unexpected value on server: %s", got)
	}
	if server.Exists("jobTrackerDigest_2024-05-01") {
		t.Fatalf("key stored without prefix")
	}

	// A key written by another tool outside the prefix stays invisible.
	if err := server.Set("savedJobs", `["a"]`); err != nil {
		t.Fatalf("seeding server: %v", err)
	}
	if _, err := s.Get(ctx, "savedJobs"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unprefixed key, got %v", err)
	}

	if err := s.Remove(ctx, "jobTrackerDigest_2024-05-01"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if server.Exists("careerdeck:jobTrackerDigest_2024-05-01") {
		t.Fatalf("key still present after remove")
	}
}

func TestRedisStoreServerErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, server := newTestRedis(t, "")
	server.Close()

	if _, err := s.Get(ctx, "k"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if err := s.Set(ctx, "k", []byte(`1`)); err == nil {
		t.Fatalf("expected connection error on set")
	}
}

func TestNewRedisPings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	server := miniredis.RunT(t)

	s, err := NewRedis(ctx, server.Addr(), "", 0, "cd:")
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer s.Close()

	if err := SetJSON(ctx, s, "k", map[string]int{"x": 1}); err != nil {
		t.Fatalf("set json: %v", err)
	}
	if !server.Exists("cd:k") {
		t.Fatalf("expected prefixed key on server")
	}

	addr := server.Addr()
	server.Close()
	if _, err := NewRedis(ctx, addr, "", 0, ""); err == nil {
		t.Fatalf("expected ping failure against a stopped server")
	}
}
