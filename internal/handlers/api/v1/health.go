package v1

import (
	"net/http"

	"craftpin/internal/cache"
	"craftpin/internal/database"
	"craftpin/internal/response"
)

// HealthHandler reports liveness of the store and cache
type HealthHandler struct {
	db    *database.Manager
	cache cache.Cache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.Manager, cacheClient cache.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheClient}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	dbHealth := h.db.Health(r.Context())

	cacheStatus := "healthy"
	if err := h.cache.Health(r.Context()); err != nil {
		cacheStatus = "unhealthy"
	}

	status := http.StatusOK
	if dbHealth.Status == database.StatusUnhealthy || cacheStatus == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	response.JSON(w, r, status, map[string]any{
		"database": dbHealth,
		"cache":    cacheStatus,
	})
}
