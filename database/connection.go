package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// ConnectionConfig describes how to reach the store
type ConnectionConfig struct {
	DSN         string
	ReplicaDSNs []string
	LogLevel    logger.LogLevel

	// MaxOpenConns caps the pool when positive
	MaxOpenConns int

	// Dialector overrides DSN; tests use it to inject sqlite
	Dialector gorm.Dialector
}

// Connection owns the process-wide gorm handle. Open is idempotent: the first
// successful call is memoized and later calls return the same *gorm.DB. A
// failed attempt is not cached, so a later call can retry.
type Connection struct {
	cfg ConnectionConfig

	mu sync.Mutex
	db *gorm.DB
}

func NewConnection(cfg ConnectionConfig) *Connection {
	return &Connection{cfg: cfg}
}

func (c *Connection) Open(ctx context.Context) (*gorm.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	dialector := c.cfg.Dialector
	if dialector == nil {
		if c.cfg.DSN == "" {
			return nil, errors.New("database DSN is empty")
		}
		dialector = postgres.New(postgres.Config{
			DSN:                  c.cfg.DSN,
			PreferSimpleProtocol: true,
		})
	}

	logLevel := c.cfg.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if len(c.cfg.ReplicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(c.cfg.ReplicaDSNs))
		for _, dsn := range c.cfg.ReplicaDSNs {
			replicas = append(replicas, postgres.Open(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("error registering read replicas: %w", err)
		}
	}

	if c.cfg.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("error reading connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(c.cfg.MaxOpenConns)
	}

	var result int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("error testing database connection: %w", err)
	}

	c.db = db
	return db, nil
}

// Close releases the pool if it was opened
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	c.db = nil
	return sqlDB.Close()
}
