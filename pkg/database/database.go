package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"laptopstore/internal/models"

	_ "github.com/lib/pq"           // PostgreSQL driver for database/sql
	_ "github.com/mattn/go-sqlite3" // SQLite driver for database/sql
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const pingTimeout = 5 * time.Second

// Config selects the SQL driver and DSN.
type Config struct {
	Driver string // "postgres" or "sqlite"
	DSN    string
}

// sqlDriverName maps a configured driver to its database/sql registration name.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case models.DialectPostgres:
		return "postgres", nil
	case models.DialectSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func gormDialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case models.DialectPostgres:
		return postgres.Open(cfg.DSN), nil
	case models.DialectSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenGORM opens a GORM handle, verifies the connection and makes sure the
// laptops table exists.
func OpenGORM(cfg Config) (*gorm.DB, error) {
	dialector, err := gormDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if cfg.Driver == models.DialectSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := EnsureSchema(ctx, sqlDB, cfg.Driver); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Printf("Connected to %s database (gorm)", cfg.Driver)
	return db, nil
}

// OpenSQL opens a database/sql handle, verifies the connection and makes sure
// the laptops table exists.
func OpenSQL(cfg Config) (*sql.DB, error) {
	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if cfg.Driver == models.DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := EnsureSchema(ctx, db, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Connected to %s database (database/sql)", cfg.Driver)
	return db, nil
}

// EnsureSchema issues the idempotent CREATE TABLE statement for the laptops table.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect string) error {
	stmt, err := models.SchemaStatement(dialect)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create laptops table: %w", err)
	}
	return nil
}
