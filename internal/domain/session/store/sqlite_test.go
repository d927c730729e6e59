package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shopwise-server/internal/domain/session/model"
	"shopwise-server/internal/platform/storage"
)

func newTestSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&storage.SessionRecord{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func TestSQLiteStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)

	store, err := NewSQLite(db, Config{TTL: time.Second})
	if err != nil {
		t.Fatalf("NewSQLite error: %v", err)
	}

	rec := model.Record{
		SessionID: "sqlite-session",
		Payload:   []byte(`{"id":"1","username":"muser","role":"user"}`),
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

func TestSQLiteStoreSaveReplacesExisting(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)

	store, err := NewSQLite(db, Config{TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewSQLite error: %v", err)
	}

	first := model.Record{SessionID: "replace-me", Payload: []byte(`{"id":"1"}`)}
	second := model.Record{SessionID: "replace-me", Payload: []byte(`{"id":"2"}`)}

	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first Save error: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second Save error: %v", err)
	}

	got, err := store.Get(ctx, "replace-me")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got.Payload) != `{"id":"2"}` {
		t.Fatalf("expected replacement payload, got %s", got.Payload)
	}
}

func TestSQLiteStoreCleanupExpired(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteDB(t)

	store, err := NewSQLite(db, Config{TTL: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewSQLite error: %v", err)
	}

	rec := model.Record{SessionID: "expiring", Payload: []byte(`{}`)}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if err := store.CleanupExpired(ctx); err != nil {
		t.Fatalf("CleanupExpired error: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats["total"].(int64) != 0 {
		t.Fatalf("expected all records cleaned, got %v", stats["total"])
	}
}
