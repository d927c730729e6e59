package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopwise-server/internal/domain/session/model"
)

func TestMemoryStoreBasicLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(Config{
		TTL:    time.Second,
		Memory: &MemoryConfig{GCInterval: 10 * time.Millisecond},
	})
	t.Cleanup(func() {
		_ = store.Close(ctx)
	})

	rec := model.Record{
		SessionID: "session-basic",
		Payload:   []byte(`{"id":"1","username":"muser"}`),
	}

	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	stored, err := store.Get(ctx, rec.SessionID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.SessionID != rec.SessionID || string(stored.Payload) != string(rec.Payload) {
		t.Fatalf("unexpected record: %+v", stored)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatalf("expected created timestamp to be set")
	}
	if stored.ExpiresAt == nil {
		t.Fatalf("expected expiry to be derived from TTL")
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(ids) != 1 || ids[0] != rec.SessionID {
		t.Fatalf("expected list to include record: %v", ids)
	}

	if err := store.Remove(ctx, rec.SessionID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := store.Get(ctx, rec.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(Config{
		TTL:    50 * time.Millisecond,
		Memory: &MemoryConfig{GCInterval: 5 * time.Millisecond},
	})
	t.Cleanup(func() {
		_ = store.Close(ctx)
	})

	rec := model.Record{
		SessionID: "session-expiring",
		Payload:   []byte(`{}`),
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := store.Get(ctx, rec.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired record to be gone, got %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats["active"].(int) != 0 {
		t.Fatalf("expected no active records, got %v", stats["active"])
	}
}

func TestMemoryStoreSaveRequiresSessionID(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(Config{TTL: time.Second})
	t.Cleanup(func() {
		_ = store.Close(ctx)
	})

	if err := store.Save(ctx, model.Record{}); err == nil {
		t.Fatalf("expected error for missing session id")
	}
}

func TestMemoryStoreRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(Config{TTL: time.Second})
	t.Cleanup(func() {
		_ = store.Close(ctx)
	})

	if err := store.Remove(ctx, "never-stored"); err != nil {
		t.Fatalf("Remove of absent record should not error: %v", err)
	}
}
