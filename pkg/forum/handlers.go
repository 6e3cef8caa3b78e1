package forum

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quorumspace/quorum/pkg/contextkeys"
	"github.com/quorumspace/quorum/pkg/httputil"
	"github.com/quorumspace/quorum/pkg/observability"
)

// Handlers provides the forum permission API endpoints
type Handlers struct {
	store      *Store
	aggregator *Aggregator
	writer     *Writer
	metrics    *observability.Metrics
}

// NewHandlers creates a new forum handlers instance. metrics may be nil.
func NewHandlers(store *Store, aggregator *Aggregator, writer *Writer, metrics *observability.Metrics) *Handlers {
	return &Handlers{
		store:      store,
		aggregator: aggregator,
		writer:     writer,
		metrics:    metrics,
	}
}

// RegisterRoutes registers forum permission API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/spaces/{spaceID}/post-categories", h.listCategories).Methods("GET")
	r.HandleFunc("/api/v1/post-categories/{categoryID}/permissions/computed", h.getComputedPermissions).Methods("GET")
	r.HandleFunc("/api/v1/post-categories/{categoryID}/permissions", h.upsertPermission).Methods("PUT")
	r.HandleFunc("/api/v1/post-category-permissions/{permissionID}", h.deletePermission).Methods("DELETE")
}

// listCategories handles GET /api/v1/spaces/{spaceID}/post-categories
// Returns the categories the caller may see, each annotated with computed
// permission flags. Categories the caller has no grant for are omitted.
func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spaceID, ok := httputil.ParsePathUUIDOrError(w, r, "spaceID")
	if !ok {
		return
	}
	actorID := contextkeys.GetActorID(ctx)

	categories, err := h.store.ListCategories(ctx, spaceID)
	if err != nil {
		httputil.WriteAccessError(w, err)
		return
	}

	start := time.Now()
	result, err := h.aggregator.PermissionedCategories(ctx, categories, actorID, nil)
	if err != nil {
		h.observeCheck("category_batch", "error", start)
		httputil.WriteAccessError(w, err)
		return
	}
	h.observeCheck("category_batch", "ok", start)

	httputil.WriteSuccess(w, map[string]interface{}{
		"space_id":   spaceID,
		"categories": result,
	})
}

// getComputedPermissions handles GET /api/v1/post-categories/{categoryID}/permissions/computed
// Returns the caller's effective operation flags on one category. An actor
// with no grants receives all-false flags, not an error.
func (h *Handlers) getComputedPermissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categoryID, ok := httputil.ParsePathUUIDOrError(w, r, "categoryID")
	if !ok {
		return
	}
	actorID := contextkeys.GetActorID(ctx)

	start := time.Now()
	computed, err := h.aggregator.ComputePermissions(ctx, categoryID, actorID, nil)
	if err != nil {
		h.observeCheck("category", "error", start)
		httputil.WriteAccessError(w, err)
		return
	}
	h.observeCheck("category", "ok", start)

	httputil.WriteSuccess(w, map[string]interface{}{
		"post_category_id": categoryID,
		"permissions":      computed.Flags(),
	})
}

// upsertPermission handles PUT /api/v1/post-categories/{categoryID}/permissions
// Creates or replaces the grant for the assignee shape in the request body.
func (h *Handlers) upsertPermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categoryID, ok := httputil.ParsePathUUIDOrError(w, r, "categoryID")
	if !ok {
		return
	}

	var input UpsertInput
	if !httputil.ParseJSONOrError(w, r, &input) {
		return
	}
	input.PostCategoryID = categoryID

	perm, err := h.writer.Upsert(ctx, input)
	if err != nil {
		h.observeWrite("upsert", "error")
		httputil.WriteAccessError(w, err)
		return
	}
	h.observeWrite("upsert", "ok")

	httputil.WriteSuccess(w, perm)
}

// deletePermission handles DELETE /api/v1/post-category-permissions/{permissionID}
// Deleting a row that does not exist succeeds with no content.
func (h *Handlers) deletePermission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	permissionID, ok := httputil.ParsePathUUIDOrError(w, r, "permissionID")
	if !ok {
		return
	}

	if err := h.writer.Delete(ctx, permissionID); err != nil {
		h.observeWrite("delete", "error")
		httputil.WriteAccessError(w, err)
		return
	}
	h.observeWrite("delete", "ok")

	httputil.WriteNoContent(w)
}

func (h *Handlers) observeCheck(resource, outcome string, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.ObservePermissionCheck(resource, outcome, time.Since(start))
}

func (h *Handlers) observeWrite(operation, status string) {
	if h.metrics == nil {
		return
	}
	h.metrics.PermissionWritesTotal.WithLabelValues(operation, status).Inc()
}
