// Package middleware provides HTTP middleware for actor identity, request IDs, and rate limiting.
//
// # Overview
//
// The service sits behind an authenticating gateway, so actor identity arrives
// as a trusted X-Actor-ID header; ActorMiddleware validates it and places it on
// the request context. Anonymous callers simply omit the header.
//
// # Middleware Components
//
// ActorMiddleware: actor identity extraction
//
//	router.Use(middleware.ActorMiddleware)
//	// Validates X-Actor-ID (UUID), adds actor ID to request context
//
// RequestIDMiddleware: request correlation
//
//	router.Use(middleware.RequestIDMiddleware)
//
// RateLimitMiddleware: in-process rate limiting
//
//	limiter := middleware.NewRateLimitMiddleware()
//	router.Use(limiter.Handler)
//
// DistributedRateLimitMiddleware: Redis-backed rate limiting with in-process
// fallback when Redis is unreachable
//
//	limiter := middleware.NewDistributedRateLimitMiddleware(redisClient, metrics)
//	router.Use(limiter.Handler)
//
// # Rate Limiting
//
// Anonymous (by IP): 100 req/min, 10 burst
// Per-Actor: 1000 req/min, 50 burst
//
// # Related Packages
//
//   - pkg/contextkeys: Context key definitions
//   - pkg/observability: Rate limit metrics
package middleware
