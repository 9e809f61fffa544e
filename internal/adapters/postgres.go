package adapters

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trophyseeker/internal/bootstrap"
)

type AdapterPostgres struct {
	DB  *gorm.DB
	cfg *bootstrap.Config
	log *zap.SugaredLogger
}

func NewAdapterPostgres(cfg *bootstrap.Config, log *zap.SugaredLogger) *AdapterPostgres {
	return &AdapterPostgres{cfg: cfg, log: log}
}

func (a *AdapterPostgres) Init(ctx context.Context) error {
	db, err := gorm.Open(postgres.Open(a.cfg.PostgresDsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get postgres handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	a.DB = db
	a.log.Info("connected to postgres")
	return nil
}

func (a *AdapterPostgres) Close(context.Context) error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
