package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"craftpin/internal/middleware"
	"craftpin/internal/models"
	"craftpin/internal/response"
	"craftpin/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20 // 1MB

// decodeJSON reads the request body into dest, rejecting unknown fields
// and oversized payloads.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dest); err != nil {
		return services.NewValidationError("invalid request body", err)
	}
	return nil
}

// pathID parses a positive int64 URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid "+name, err)
	}
	return id, nil
}

// pagination reads limit/offset/sort/order query parameters with defaults
func pagination(r *http.Request) models.PaginationParams {
	q := r.URL.Query()

	params := models.PaginationParams{
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		params.Offset = offset
	}

	params.Normalize()
	return params
}

// requireUserID pulls the authenticated user id; the auth middleware
// guarantees it is set on protected routes.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, r, services.NewUnauthorizedError("authentication required"))
		return 0, false
	}
	return userID, true
}

// viewerID returns the optional authenticated user id for read endpoints
func viewerID(r *http.Request) *int64 {
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		return &userID
	}
	return nil
}
