package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	errs "trophyseeker/internal/errors"
)

type KVEntry struct {
	Key       string `gorm:"primaryKey;size:512"`
	Value     []byte `gorm:"not null"`
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

type PostgresKVStorage struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewPostgresKVStorage(db *gorm.DB, log *zap.SugaredLogger) *PostgresKVStorage {
	return &PostgresKVStorage{db: db, log: log}
}

func (p *PostgresKVStorage) Migrate() error {
	return p.db.AutoMigrate(&KVEntry{})
}

func (p *PostgresKVStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrKeyNotFound
		}
		return nil, err
	}
	if entry.ExpiresAt != nil && !time.Now().Before(*entry.ExpiresAt) {
		// an expired row that survives the delete is still reported missing
		if err := p.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error; err != nil {
			p.log.Warnw("delete expired kv entry", "key", key, "error", err)
		}
		return nil, errs.ErrKeyNotFound
	}
	return entry.Value, nil
}

func (p *PostgresKVStorage) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := KVEntry{Key: key, Value: value}
	if ttl > 0 {
		expiresAt := time.Now().Add(ttl)
		entry.ExpiresAt = &expiresAt
	}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
}

func (p *PostgresKVStorage) Delete(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error
}

func (p *PostgresKVStorage) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
