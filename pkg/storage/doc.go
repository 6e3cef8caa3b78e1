// Package storage provides the persistence layer for the permission service.
//
// # Overview
//
// PostgreSQL is the system of record for spaces, memberships, roles, forum
// categories, permission rows, and the proposal projections the accessibility
// resolver reads. Redis backs distributed rate limiting only; losing it
// degrades but does not break the service.
//
// # Connections
//
//	cfg := storage.DefaultConfig()
//	cfg.PostgresURL = "postgres://localhost/quorum?sslmode=disable"
//	db, err := storage.NewPostgres(cfg)
//
//	redisClient, err := storage.NewRedis(cfg) // optional
//
// # Schema
//
// Migrate applies the schema with idempotent statements:
//
//	if err := storage.Migrate(ctx, db); err != nil {
//		log.Fatal(err)
//	}
//
// The DDL sticks to portable column types, so tests run the same migrations
// against in-memory sqlite databases.
//
// # Related Packages
//
//   - pkg/spaces, pkg/forum, pkg/proposals: query layers over this schema
//   - pkg/config: environment-driven construction of Config
package storage
