// Package config loads application configuration from QUORUM_* environment
// variables.
//
// # Usage
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// LoadConfig validates the result; a missing Postgres URL or a port collision
// between the API and health servers fails fast at startup rather than at
// first request.
//
// # Environment Variables
//
//	QUORUM_HOST, QUORUM_PORT, QUORUM_HEALTH_PORT
//	QUORUM_READ_TIMEOUT, QUORUM_WRITE_TIMEOUT, QUORUM_IDLE_TIMEOUT,
//	QUORUM_SHUTDOWN_TIMEOUT
//	QUORUM_POSTGRES_URL, QUORUM_POSTGRES_MAX_CONNS, QUORUM_POSTGRES_MIN_CONNS,
//	QUORUM_POSTGRES_TIMEOUT
//	QUORUM_REDIS_URL, QUORUM_REDIS_PASSWORD, QUORUM_REDIS_DB,
//	QUORUM_REDIS_MAX_RETRIES, QUORUM_REDIS_POOL_SIZE
//	QUORUM_LOG_LEVEL, QUORUM_METRICS_ENABLED
//	QUORUM_RATELIMIT_ENABLED, QUORUM_RATELIMIT_DISTRIBUTED
package config
