package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kanbanboard/pkg/common/config"
	"kanbanboard/pkg/common/fs"
	"kanbanboard/pkg/common/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

var (
	instance *gorm.DB
	once     sync.Once
)

// Init opens the process-wide database once; later calls return the same handle.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var initErr error
	once.Do(func() {
		db, err := Open(cfg)
		if err != nil {
			initErr = err
			return
		}
		instance = db
	})
	return instance, initErr
}

// Open connects to the configured database and verifies the connection.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	log := logger.WithComponent("database")

	dialector, target, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open db failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db failed: %w", err)
	}
	if cfg.Driver == "sqlite" {
		// One connection keeps sqlite writers from tripping over each other.
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping db failed: %w", err)
	}

	log.Info().Str("driver", cfg.Driver).Str("db", target).Msg("database initialized")
	return db, nil
}

// Close releases the connections held by db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dialectorFor returns the gorm dialector and a loggable description of the target.
func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, string, error) {
	switch cfg.Driver {
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			fsys, err := fs.New()
			if err != nil {
				return nil, "", fmt.Errorf("filesystem init failed: %w", err)
			}
			dsn = fsys.Path(cfg.Name)
			if size, err := fsys.Size(cfg.Name); err == nil {
				logger.WithComponent("database").Debug().Str("db", dsn).Int64("bytes", size).Msg("existing database file")
			}
		}
		return sqlite.Open(dsn), dsn, nil
	case "postgres":
		if cfg.DSN == "" {
			return nil, "", fmt.Errorf("postgres requires a dsn")
		}
		return postgres.Open(cfg.DSN), "postgres", nil
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
