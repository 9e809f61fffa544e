package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	errs "trophyseeker/internal/errors"
)

// offlinePostgres returns a gorm handle that never reaches a server: queries
// answer with an expired entry and deletes fail.
func offlinePostgres(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=trophyseeker dbname=trophyseeker sslmode=disable",
	}), &gorm.Config{DisableAutomaticPing: true, SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}

	expired := time.Now().Add(-time.Minute)
	if err := db.Callback().Query().Replace("gorm:query", func(tx *gorm.DB) {
		if entry, ok := tx.Statement.Dest.(*KVEntry); ok {
			*entry = KVEntry{Key: "stale", Value: []byte("old"), ExpiresAt: &expired}
			tx.RowsAffected = 1
		}
	}); err != nil {
		t.Fatal(err)
	}
	if err := db.Callback().Delete().Replace("gorm:delete", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("connection reset"))
	}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestPostgresGetExpiredLogsFailedDelete(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := NewPostgresKVStorage(offlinePostgres(t), zap.New(core).Sugar())

	if _, err := store.Get(context.Background(), "stale"); !errors.Is(err, errs.ErrKeyNotFound) {
		t.Fatalf("Get expired: got %v, want ErrKeyNotFound", err)
	}

	warned := logs.FilterMessage("delete expired kv entry").All()
	if len(warned) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warned))
	}
	if got := warned[0].ContextMap()["key"]; got != "stale" {
		t.Errorf("warning key: got %v, want stale", got)
	}
}
