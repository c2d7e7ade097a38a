package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tradepilot/internal/logger"
	"tradepilot/internal/models"
)

// Manager handles database operations
type Manager struct {
	db *gorm.DB
}

// NewManager creates a new database manager for the configured driver.
func NewManager(config *Config) (*Manager, error) {
	var (
		db  *gorm.DB
		err error
	)

	// TranslateError lets services detect unique-constraint violations
	// through gorm.ErrDuplicatedKey regardless of driver.
	gormCfg := &gorm.Config{TranslateError: true}

	switch config.Driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true, // Required for connection poolers; harmless for direct connections
		}), gormCfg)
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(config.SQLiteDSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverSQLite {
		// A single connection keeps the shared in-memory database alive
		// for the whole process lifetime.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db}, nil
}

// Migrate creates or updates the schema for all models.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running schema migration...")

	if err := m.db.AutoMigrate(
		&models.User{},
		&models.Trade{},
		&models.TradingSignal{},
		&models.RiskSettings{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Schema migration completed")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
