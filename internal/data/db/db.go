package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/automate-backend/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string
	// Path is the sqlite database file; ":memory:" is accepted.
	Path string
	// DSN is the postgres connection string.
	DSN           string
	SlowThreshold time.Duration
}

// Open connects to the configured store. Unique violations surface as
// gorm.ErrDuplicatedKey.
func Open(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	serviceLog := log.With("service", "Database")
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormLogger.New(
		zap.NewStdLog(log.SugaredLogger.Desugar()),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gcfg := &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSQLite:
		dsn, err := sqliteDSN(cfg.Path)
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite %q: %w", cfg.Path, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite has a single writer
		sqlDB.SetMaxOpenConns(1)
		serviceLog.Info("Connected to sqlite", "path", cfg.Path)
		return db, nil
	case DriverPostgres:
		if strings.TrimSpace(cfg.DSN) == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		db, err := gorm.Open(postgres.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		serviceLog.Info("Connected to postgres")
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func sqliteDSN(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		return "file::memory:?_foreign_keys=on", nil
	}
	if strings.HasPrefix(path, "file:") {
		return path, nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	return "file:" + path + "?_foreign_keys=on", nil
}

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
