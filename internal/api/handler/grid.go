package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vschuh/eurogrid/internal/api/respond"
	"github.com/vschuh/eurogrid/internal/cache"
	"github.com/vschuh/eurogrid/internal/category"
	"github.com/vschuh/eurogrid/internal/store"
)

// GetGrid serves a grid by identifier: a numeric identifier is a custom
// grid's share id, anything else is a grid family name resolved to its most
// recent grid.
// @Summary Fetch a grid
// @Description Numeric identifiers fetch custom grids; family names fetch the latest scheduled grid.
// @Tags grids
// @Produce json
// @Param identifier path string true "Family name or custom grid id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /grid/{identifier} [get]
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	ttl := cache.TTLGrid
	key := "grid:" + identifier
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var (
		data []byte
		err  error
	)
	if id, numErr := strconv.ParseInt(identifier, 10, 64); numErr == nil {
		ttl = cache.TTLCustomGrid
		data, err = h.grids.CustomByID(r.Context(), id)
	} else {
		data, err = h.grids.LatestByFamily(r.Context(), identifier)
	}
	if errors.Is(err, store.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, "GRID_NOT_FOUND", "Grid not found")
		return
	}
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "GRID_FETCH_FAILED", "Failed to fetch grid")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

// customGridRequest is the ad-hoc grid creation payload.
type customGridRequest struct {
	Rows []category.Category `json:"rows"`
	Cols []category.Category `json:"cols"`
}

// CreateCustomGrid stores an ad-hoc grid and returns its share id. Custom
// grids are retained for 24 hours.
// @Summary Create a custom grid
// @Tags grids
// @Accept json
// @Produce json
// @Param grid body customGridRequest true "Three row and three column categories"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} respond.ErrorResponse
// @Router /grids [post]
func (h *Handler) CreateCustomGrid(w http.ResponseWriter, r *http.Request) {
	var req customGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Rows) != 3 || len(req.Cols) != 3 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_GRID", "A grid needs exactly 3 row and 3 column categories")
		return
	}
	for _, cat := range append(append([]category.Category{}, req.Rows...), req.Cols...) {
		if _, err := h.compiler.Compile(cat); err != nil {
			respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_CATEGORY", "Unrecognized category in grid", cat.Kind)
			return
		}
	}

	// Opportunistic cleanup keeps the retention policy without a hard
	// dependency on the maintenance ticker.
	if _, err := h.grids.DeleteExpiredCustom(r.Context()); err != nil {
		h.log.Error("custom grid cleanup failed", "error", err)
	}

	data, err := json.Marshal(map[string]any{"rows": req.Rows, "cols": req.Cols})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "GRID_SAVE_FAILED", "Failed to save custom grid")
		return
	}
	id, err := h.grids.InsertCustom(r.Context(), data)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "GRID_SAVE_FAILED", "Failed to save custom grid")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]int64{"id": id})
}
