package store

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"shopwise-server/internal/domain/session/model"
)

func newRedisTestStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store, err := NewRedis(Config{
		TTL: time.Second,
		Redis: &RedisConfig{
			Addr: mr.Addr(),
		},
	})
	if err != nil {
		t.Fatalf("NewRedis error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store, mr
}

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisTestStore(t)

	rec := model.Record{
		SessionID: "redis-session",
		Payload:   []byte(`{"id":"2","username":"mvc"}`),
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Get(ctx, rec.SessionID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.SessionID != rec.SessionID || string(got.Payload) != string(rec.Payload) {
		t.Fatalf("unexpected record: %+v", got)
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(ids) != 1 || ids[0] != rec.SessionID {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if err := store.Remove(ctx, rec.SessionID); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := store.Get(ctx, rec.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisTestStore(t)

	// garbage written at the key must surface as ErrCorrupt, never a panic
	mr.Set("session:record:broken", "this is not json")

	_, err := store.Get(ctx, "broken")
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisTestStore(t)

	rec := model.Record{
		SessionID: "short-lived",
		Payload:   []byte(`{}`),
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Get(ctx, rec.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}
