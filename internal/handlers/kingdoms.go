package handlers

import (
	"fmt"
	"net/http"

	"github.com/kvkstats/ranking-api/internal/logic"
	"github.com/kvkstats/ranking-api/internal/models"
)

// GetKingdomScore scores a stored kingdom
// @Summary Get kingdom score
// @Description Loads the kingdom profile, extracts its stats and scores them. The result is recorded in the score history.
// @Tags Kingdoms
// @Produce json
// @Param id path int true "Kingdom number"
// @Success 200 {object} models.KingdomScore
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /kingdoms/{id}/score [get]
func (h *Handler) GetKingdomScore(w http.ResponseWriter, r *http.Request) {
	id, err := kingdomIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	score, err := h.ranking.ScoreKingdom(r.Context(), id)
	if err != nil {
		h.serviceError(w, "kingdom score", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, score)
}

// SimulateKingdom projects hypothetical results for a stored kingdom
// @Summary Simulate future KvKs for a kingdom
// @Tags Kingdoms
// @Accept json
// @Produce json
// @Param id path int true "Kingdom number"
// @Param body body models.KingdomSimulateRequest true "Events"
// @Success 200 {object} models.SimulationResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /kingdoms/{id}/simulate [post]
func (h *Handler) SimulateKingdom(w http.ResponseWriter, r *http.Request) {
	id, err := kingdomIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.KingdomSimulateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.ranking.SimulateKingdom(r.Context(), id, req.Events)
	if err != nil {
		h.serviceError(w, "kingdom simulate", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}

// ScoreKingdoms scores many stored kingdoms at once
// @Summary Batch kingdom scores
// @Description Scores every kingdom independently; results keep the request order.
// @Tags Kingdoms
// @Accept json
// @Produce json
// @Param body body models.BatchScoreRequest true "Kingdom numbers"
// @Success 200 {array} models.KingdomScore
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /kingdoms/scores [post]
func (h *Handler) ScoreKingdoms(w http.ResponseWriter, r *http.Request) {
	var req models.BatchScoreRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if len(req.KingdomIDs) > h.batchLimit {
		h.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("at most %d kingdoms per request", h.batchLimit))
		return
	}

	scores, err := h.ranking.ScoreKingdoms(r.Context(), req.KingdomIDs)
	if err != nil {
		h.serviceError(w, "batch score", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, scores)
}

// GetKingdomHistory lists persisted score snapshots of a kingdom
// @Summary Kingdom score history
// @Tags Kingdoms
// @Produce json
// @Param id path int true "Kingdom number"
// @Param limit query int false "Max snapshots (1-500, default 50)"
// @Success 200 {array} models.ScoreSnapshot
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /kingdoms/{id}/history [get]
func (h *Handler) GetKingdomHistory(w http.ResponseWriter, r *http.Request) {
	id, err := kingdomIDParam(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshots, err := h.history.KingdomHistory(r.Context(), id, queryLimit(r, 50, 500))
	if err != nil {
		h.serviceError(w, "kingdom history", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, snapshots)
}

// GetLeaderboard ranks kingdoms by their latest recorded score
// @Summary Kingdom leaderboard
// @Tags Kingdoms
// @Produce json
// @Param tier query string false "Only this tier (S, A, B, C, D)"
// @Param formula query string false "Formula version (default current)"
// @Param limit query int false "Max rows (1-500, default 50)"
// @Success 200 {array} models.ScoreSnapshot
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rows, err := h.history.Leaderboard(r.Context(), logic.SnapshotQuery{
		Tier:           q.Get("tier"),
		FormulaVersion: q.Get("formula"),
		Limit:          queryLimit(r, 50, 500),
	})
	if err != nil {
		h.serviceError(w, "leaderboard", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, rows)
}
