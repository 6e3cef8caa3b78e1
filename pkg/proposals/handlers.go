package proposals

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quorumspace/quorum/pkg/contextkeys"
	"github.com/quorumspace/quorum/pkg/httputil"
	"github.com/quorumspace/quorum/pkg/observability"
)

// Handlers provides the proposal accessibility API endpoints
type Handlers struct {
	resolver *Resolver
	metrics  *observability.Metrics
}

// NewHandlers creates a new proposals handlers instance. metrics may be nil.
func NewHandlers(resolver *Resolver, metrics *observability.Metrics) *Handlers {
	return &Handlers{resolver: resolver, metrics: metrics}
}

// RegisterRoutes registers proposal accessibility API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/spaces/{spaceID}/proposals/accessible", h.listAccessible).Methods("GET")
}

// listAccessible handles GET /api/v1/spaces/{spaceID}/proposals/accessible
// Returns the IDs of every proposal the caller may view in the space.
// Query params:
//   - only_assigned: narrow to proposals the caller is personally assigned to
func (h *Handlers) listAccessible(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spaceID, ok := httputil.ParsePathUUIDOrError(w, r, "spaceID")
	if !ok {
		return
	}

	onlyAssigned, err := httputil.ParseQueryBool(r, "only_assigned", false)
	if err != nil {
		httputil.WriteBadRequest(w, "only_assigned must be a boolean")
		return
	}

	req := AccessRequest{
		SpaceID:      spaceID,
		UserID:       contextkeys.GetActorID(ctx),
		OnlyAssigned: onlyAssigned,
	}

	ids, err := h.resolver.AccessibleProposalIDs(ctx, req, nil)
	if err != nil {
		httputil.WriteAccessError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveProposalQuery(onlyAssigned, len(ids))
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"space_id":      spaceID,
		"only_assigned": onlyAssigned,
		"proposal_ids":  ids,
	})
}
