package storage

import "time"

// Config for the storage backends
type Config struct {
	// PostgreSQL config
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
	PostgresTimeout  time.Duration
	MaxLifetime      time.Duration
	MaxIdleTime      time.Duration

	// Redis config (rate limiting; optional)
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	RedisMaxRetries int
	RedisPoolSize   int
}

// DefaultConfig returns sensible defaults for local development
func DefaultConfig() Config {
	return Config{
		PostgresURL:      "postgres://localhost:5432/quorum?sslmode=disable",
		PostgresMaxConns: 25,
		PostgresMinConns: 5,
		PostgresTimeout:  5 * time.Second,
		MaxLifetime:      30 * time.Minute,
		MaxIdleTime:      5 * time.Minute,
		RedisDB:          -1,
	}
}
