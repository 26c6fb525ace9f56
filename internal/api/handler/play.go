package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vschuh/eurogrid/internal/api/respond"
	"github.com/vschuh/eurogrid/internal/category"
	"github.com/vschuh/eurogrid/internal/condition"
)

// searchHit is one player-search result after canonical deduplication.
type searchHit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year string `json:"year,omitempty"`
}

// SearchPlayers finds players by name fragment.
// @Summary Search players by name fragment
// @Description Accent-insensitive substring match over first and last name. Fragments under 3 characters return an empty list.
// @Tags play
// @Produce json
// @Param query query string true "Name fragment (min 3 characters)"
// @Success 200 {array} searchHit
// @Router /players/search [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if len(query) < 3 {
		respond.WriteJSONObject(w, http.StatusOK, []searchHit{})
		return
	}

	results, err := h.players.SearchByName(r.Context(), query)
	if err != nil {
		h.log.Error("player search failed", "query", query, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "SEARCH_FAILED", "Player search failed")
		return
	}

	// Collapse alias records so one real player appears once.
	seen := make(map[string]bool, len(results))
	hits := make([]searchHit, 0, len(results))
	for _, res := range results {
		canon := h.merges.PlayerID(res.ID)
		if seen[canon] {
			continue
		}
		seen[canon] = true
		hit := searchHit{ID: canon, Name: res.FirstName + " " + res.LastName}
		if res.DOB != nil {
			hit.Year = res.DOB.Format("2006-01-02")
		}
		hits = append(hits, hit)
		if len(hits) == 10 {
			break
		}
	}
	respond.WriteJSONObject(w, http.StatusOK, hits)
}

// ValidateGuess checks a guessed player against one category.
// @Summary Validate a guess
// @Description Checks whether the player (including alias identities) satisfies the category; returns the player's display image on success.
// @Tags play
// @Produce json
// @Param playerId query string true "Player id"
// @Param playerName query string true "Player display name"
// @Param categoryType query string true "Category kind"
// @Param categoryValue query string true "Category value"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /validate [get]
func (h *Handler) ValidateGuess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	playerID := q.Get("playerId")
	playerName := q.Get("playerName")
	cat := category.Category{
		Kind:      q.Get("categoryType"),
		Value:     q.Get("categoryValue"),
		Condition: q.Get("categoryCondition"),
	}
	if playerID == "" || playerName == "" || cat.Kind == "" || cat.Value == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PARAMETERS", "Required parameters are missing")
		return
	}

	// All historical identities of the guessed player count.
	playerIDs := h.merges.PlayerIDs(playerID)
	frag, values, err := h.compiler.Build(cat, "p", len(playerIDs)+1)
	if errors.Is(err, condition.ErrInvalidCategory) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CATEGORY", "Invalid category type")
		return
	}
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "VALIDATION_FAILED", "Validation failed")
		return
	}

	ok, err := h.players.ValidateGuess(r.Context(), playerIDs, frag, values)
	if err != nil {
		h.log.Error("guess validation failed", "player", playerID, "kind", cat.Kind, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "VALIDATION_FAILED", "Validation failed")
		return
	}
	if !ok {
		respond.WriteJSONObject(w, http.StatusOK, map[string]any{"isValid": false})
		return
	}

	image, err := h.players.PlayerImage(r.Context(), playerID)
	if err != nil {
		h.log.Error("player image lookup failed", "player", playerID, "error", err)
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"isValid": true,
		"player":  map[string]string{"name": playerName, "image": image},
	})
}

// cellAnswersRequest names the two categories of one grid cell.
type cellAnswersRequest struct {
	Cat1 *category.Category `json:"cat1"`
	Cat2 *category.Category `json:"cat2"`
}

// GetCellAnswers lists every player satisfying both categories of a cell.
// @Summary List a cell's answers
// @Tags play
// @Accept json
// @Produce json
// @Param cell body cellAnswersRequest true "The two categories"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /cells/answers [post]
func (h *Handler) GetCellAnswers(w http.ResponseWriter, r *http.Request) {
	var req cellAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cat1 == nil || req.Cat2 == nil {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_CATEGORIES", "Two categories are required")
		return
	}

	players := h.counter.Names(r.Context(), *req.Cat1, *req.Cat2)
	if players == nil {
		players = []string{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"players": players,
		"count":   len(players),
	})
}
