// ABOUTME: HTTP handler for the single updates resource
// ABOUTME: Dispatches GET/POST/PUT/DELETE/OPTIONS on one path by method

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"legacy-updates-api/api/dto/mappers"
	"legacy-updates-api/api/dto/requests"
	"legacy-updates-api/api/dto/responses"
	"legacy-updates-api/core/domain"
	coreerrors "legacy-updates-api/core/errors"
	"legacy-updates-api/core/interfaces"
	"legacy-updates-api/core/query"
	"legacy-updates-api/pkg/utils/parse"
)

// maxBodyBytes bounds write request bodies
const maxBodyBytes = 4 << 20 // 4 MB; cover images arrive as URLs, not payloads

// QueryService defines the read operations the handler needs
type QueryService interface {
	List(ctx context.Context, req query.ListRequest) (*domain.FeedPage, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
}

// WriteService defines the write operations the handler needs
type WriteService interface {
	Upsert(ctx context.Context, article *domain.Article) (*domain.Article, bool, error)
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// UpdatesHandler handles all methods of the updates resource
type UpdatesHandler struct {
	queries QueryService
	writes  WriteService
	logger  interfaces.Logger
}

// NewUpdatesHandler creates a new updates handler
func NewUpdatesHandler(queries QueryService, writes WriteService, logger interfaces.Logger) *UpdatesHandler {
	return &UpdatesHandler{
		queries: queries,
		writes:  writes,
		logger:  logger,
	}
}

// ServeHTTP dispatches by HTTP method
func (h *UpdatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodPut:
		h.handlePut(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	case http.MethodOptions:
		// Preflights are normally answered by the CORS layer before
		// reaching here.
		w.WriteHeader(http.StatusOK)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, responses.MessageResponse{Message: "Method not allowed"})
	}
}

// handleGet serves the single-article fetch when an id is present, otherwise
// the paginated list. Missing page/limit default to 1/9 at this boundary.
func (h *UpdatesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	if id := params.Get("id"); id != "" {
		article, err := h.queries.Get(r.Context(), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, mappers.ToArticleResponse(article))
		return
	}

	page, err := h.queries.List(r.Context(), query.ListRequest{
		Page:   parse.IntOrDefault(params.Get("page"), 1),
		Limit:  parse.IntOrDefault(params.Get("limit"), query.FirstPageLimit),
		Search: params.Get("search"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.ToFeedPageResponse(page))
}

// handlePost accepts a full article object and upserts it by id.
// 201 when a record was created, 200 when an existing one was updated.
func (h *UpdatesHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req requests.UpsertArticleRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	stored, created, err := h.writes.Upsert(r.Context(), req.ToDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, mappers.ToArticleResponse(stored))
}

// handlePut applies an explicit partial update; unknown ids are not-found,
// never an insert
func (h *UpdatesHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	var req requests.UpdateArticleRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	updated, err := h.writes.Update(r.Context(), req.ID, req.ToPatch())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.ToArticleResponse(updated))
}

// handleDelete removes a record by either key and reports the removed count
func (h *UpdatesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, responses.ErrorResponse{Error: "ID param missing"})
		return
	}

	deleted, err := h.writes.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, responses.DeleteResponse{
		Success:      true,
		DeletedCount: deleted,
	})
}

// decodeBody decodes a JSON body with the closed-schema rule: unknown fields
// are rejected rather than silently persisted
func (h *UpdatesHandler) decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		writeJSON(w, http.StatusBadRequest, responses.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return false
	}

	return true
}

// writeError logs the failure and maps it to a status via toStatus
func (h *UpdatesHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := toStatus(err)

	if status >= 500 && h.logger != nil {
		h.logger.Error("Request failed", map[string]interface{}{
			"method": r.Method,
			"query":  r.URL.RawQuery,
			"error":  err.Error(),
		})
	}

	writeJSON(w, status, body)
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// toStatus maps domain errors to HTTP responses. Internal diagnostic detail
// never leaks past this point.
func toStatus(err error) (int, responses.ErrorResponse) {
	switch {
	case coreerrors.IsNotFound(err):
		return http.StatusNotFound, responses.ErrorResponse{Error: err.Error()}
	case coreerrors.IsInvalidRequest(err):
		return http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()}
	case coreerrors.IsTransient(err):
		return http.StatusServiceUnavailable, responses.ErrorResponse{Error: "Service temporarily unavailable"}
	default:
		return http.StatusInternalServerError, responses.ErrorResponse{Error: "Internal Server Error"}
	}
}
