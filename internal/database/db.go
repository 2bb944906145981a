package database

import (
	"context"
	"fmt"
	"time"

	"it-inventory/internal/config"
	"it-inventory/internal/logging"
	"it-inventory/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres, retrying while the database comes up.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 1; i <= cfg.DBConnectAttempts; i++ {
		log.WithFields(logrus.Fields{"attempt": i, "maxAttempts": cfg.DBConnectAttempts}).Info("connecting to database")

		db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{Logger: logging.Gorm(log)})
		if err == nil {
			break
		}

		log.WithError(err).Warn("failed to connect to database")
		if i == cfg.DBConnectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBConnectRetryWait):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", cfg.DBConnectAttempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	}

	log.Info("connected to database")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Catalog{},
		&models.SKU{},
		&models.Asset{},
		&models.AuditLog{},
	)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
