package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/quorumspace/quorum/pkg/contextkeys"
	"github.com/quorumspace/quorum/pkg/httputil"
)

// ActorIDHeader carries the authenticated user's ID, set by the gateway in
// front of this service. Absent for anonymous callers.
const ActorIDHeader = "X-Actor-ID"

// RequestIDHeader carries the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// ActorMiddleware extracts the actor's user ID from the request header and
// stores it on the context. A malformed ID is rejected before any handler
// runs; a missing header means an anonymous caller.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := r.Header.Get(ActorIDHeader)
		if actorID != "" {
			if _, err := uuid.Parse(actorID); err != nil {
				httputil.WriteBadRequest(w, "invalid actor id")
				return
			}
			r = r.WithContext(contextkeys.WithActorID(r.Context(), actorID))
		}
		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware assigns each request a correlation ID, reusing the
// inbound header when present, and echoes it on the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(contextkeys.WithRequestID(r.Context(), requestID)))
	})
}
