package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/proconnect-app/backend/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the PostgreSQL connection. Postgres is nil when no connection
// string was configured or the initial connect failed; the server then runs
// in degraded mode where reads return empty collections and writes fail
// with a "database not connected" error.
type DB struct {
	Postgres *gorm.DB
}

// InitDB initializes the database connection from the resolved connection
// string. A missing or unreachable database is not fatal.
func InitDB(cfg *Config) *DB {
	// Load environment variables from .env file
	if err := godotenv.Load(); err == nil {
		// .env may define the connection string, so resolve again.
		cfg.DatabaseURL = resolveDatabaseURL()
	}

	if cfg.DatabaseURL == "" {
		logger.Warn.Printf("no database URL found in any of %v, starting in degraded mode", databaseURLVars)
		return &DB{}
	}

	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Error.Printf("failed to connect to PostgreSQL: %v, starting in degraded mode", err)
		return &DB{}
	}

	return &DB{Postgres: db}
}

// initPostgres initializes the PostgreSQL database connection using GORM
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Info.Println("Successfully connected to PostgreSQL!")
	return db, nil
}

// Connected reports whether a database connection was established at startup.
func (db *DB) Connected() bool {
	return db.Postgres != nil
}

// Ping runs a connectivity probe against the database.
func (db *DB) Ping(ctx context.Context) error {
	if !db.Connected() {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// CloseDB closes the database connection.
func (db *DB) CloseDB() {
	if db.Postgres == nil {
		return
	}
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		logger.Error.Printf("Error getting SQL DB from GORM: %v\n", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error.Printf("Error closing PostgreSQL connection: %v\n", err)
	} else {
		logger.Info.Println("PostgreSQL connection closed.")
	}
}
