package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm/internal/logger"
)

// Connect builds a pgx connection pool from DB_* environment variables
// and verifies it with a ping.
func Connect(log *logger.Logger) (*pgxpool.Pool, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return nil, fmt.Errorf("DB_HOST environment variable is required")
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		return nil, fmt.Errorf("DB_PORT environment variable is required")
	}
	user := os.Getenv("DB_USERNAME")
	if user == "" {
		return nil, fmt.Errorf("DB_USERNAME environment variable is required")
	}
	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	database := os.Getenv("DB_DATABASE")
	if database == "" {
		return nil, fmt.Errorf("DB_DATABASE environment variable is required")
	}

	userInfo := url.UserPassword(user, password)
	dsn := fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=disable",
		userInfo.String(),
		host,
		port,
		url.PathEscape(database),
	)

	return ConnectDSN(dsn, log)
}

// ConnectDSN connects to the given postgres URL. Split out from Connect
// so integration tests can point the pool at a throwaway database.
func ConnectDSN(dsn string, log *logger.Logger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string (check your .env file): %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection pool established")
	return pool, nil
}
