package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/portfolio-api/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options describes how to reach the store.
type Options struct {
	Driver        string
	DSN           string   // postgres URI or key=value DSN, or a sqlite file path
	Replicas      []string // postgres read replicas, routed through dbresolver
	SlowThreshold time.Duration
	LogLevel      gormlogger.LogLevel
}

// OptionsFromConfig maps application configuration onto Options.
func OptionsFromConfig(c *config.Config) Options {
	opts := Options{
		Driver:        c.DBType,
		DSN:           c.DatabaseURL,
		Replicas:      c.ReplicaURLs(),
		SlowThreshold: c.DBSlowThreshold,
		LogLevel:      gormlogger.Warn,
	}
	if c.DBType == DriverSQLite {
		opts.DSN = c.SQLitePath
		opts.Replicas = nil
	}
	if c.LogLevel == "debug" || c.LogLevel == "trace" {
		opts.LogLevel = gormlogger.Info
	}
	return opts
}

// Open connects to the configured store, retrying postgres connections with backoff.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:                 newGormLogger(opts.LogLevel, opts.SlowThreshold),
		SkipDefaultTransaction: true,
	}

	switch opts.Driver {
	case DriverSQLite:
		return openSQLite(opts.DSN, gormCfg)
	case DriverPostgres:
		return openPostgres(ctx, opts, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", opts.Driver)
	}
}

func openSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	// DELETE journal mode; WAL has visibility issues with the pure-Go driver.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)

	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// A single writer; transactions must reuse their own connection.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func openPostgres(ctx context.Context, opts Options, gormCfg *gorm.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	b := backoff{
		maxRetries: 5,
		delay:      500 * time.Millisecond,
		maxDelay:   5 * time.Second,
	}

	for attempt := 0; ; attempt++ {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  opts.DSN,
			PreferSimpleProtocol: true,
		}), gormCfg)
		if err == nil {
			break
		}
		if attempt >= b.maxRetries {
			return nil, fmt.Errorf("open postgres failed after retries: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open postgres canceled: %w", ctx.Err())
		case <-time.After(b.nextDelay(attempt)):
		}
	}

	if len(opts.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(opts.Replicas))
		for _, dsn := range opts.Replicas {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(25).
			SetMaxIdleConns(25).
			SetConnMaxLifetime(5 * time.Minute)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db db() error: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

type backoff struct {
	maxRetries int
	delay      time.Duration
	maxDelay   time.Duration
}

func (b backoff) nextDelay(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay {
		return b.maxDelay
	}
	return d
}
