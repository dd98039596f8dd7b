package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/kvkstats/ranking-api/internal/logic"
	"github.com/kvkstats/ranking-api/internal/models"
)

// ExtractStats turns a raw kingdom profile into KingdomStats
// @Summary Extract kingdom stats
// @Description Derives streaks and the recent outcome window from a raw profile. Counters may be numbers or numeric strings.
// @Tags Scoring
// @Accept json
// @Produce json
// @Param body body models.KingdomProfile true "Raw profile"
// @Success 200 {object} models.KingdomStats
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /extract [post]
func (h *Handler) ExtractStats(w http.ResponseWriter, r *http.Request) {
	var profile models.KingdomProfile
	if !h.decodeJSON(w, r, &profile) {
		return
	}

	stats, err := logic.ExtractStats(profile)
	if err != nil {
		h.serviceError(w, "extract", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// ScoreStats computes the score breakdown of a KingdomStats value
// @Summary Score kingdom stats
// @Tags Scoring
// @Accept json
// @Produce json
// @Param body body models.KingdomStats true "Kingdom stats"
// @Success 200 {object} models.ScoreBreakdown
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /score [post]
func (h *Handler) ScoreStats(w http.ResponseWriter, r *http.Request) {
	var stats models.KingdomStats
	if !h.decodeJSON(w, r, &stats) {
		return
	}
	if err := normalizeOutcomes(&stats); err != nil {
		h.serviceError(w, "score", err)
		return
	}

	score, err := h.ranking.ScoreStats(r.Context(), stats)
	if err != nil {
		h.serviceError(w, "score", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, score.Breakdown)
}

// GetTier classifies a score
// @Summary Classify a score into a tier
// @Tags Scoring
// @Produce json
// @Param score query number true "Final score"
// @Success 200 {object} models.TierResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /tier [get]
func (h *Handler) GetTier(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("score")
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		h.errorResponse(w, http.StatusBadRequest, "score must be a finite number")
		return
	}

	tier := logic.ClassifyTier(score)
	h.jsonResponse(w, http.StatusOK, models.TierResponse{
		Score: score,
		Tier:  tier,
		Rank:  logic.TierRank(tier),
	})
}

// Simulate projects hypothetical KvK results onto caller-supplied stats
// @Summary Simulate future KvKs
// @Description Applies the events in order to a copy of the stats and explains the score change.
// @Tags Simulation
// @Accept json
// @Produce json
// @Param body body models.SimulateRequest true "Stats and events"
// @Success 200 {object} models.SimulationResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /simulate [post]
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := normalizeOutcomes(&req.Stats); err != nil {
		h.serviceError(w, "simulate", err)
		return
	}

	result, err := logic.Simulate(req.Stats, req.Events)
	if err != nil {
		h.serviceError(w, "simulate", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}

// normalizeOutcomes accepts recent outcomes in any letter case
func normalizeOutcomes(s *models.KingdomStats) error {
	for i, o := range s.RecentOutcomes {
		parsed, err := logic.ParseOutcome(string(o))
		if err != nil {
			return err
		}
		s.RecentOutcomes[i] = parsed
	}
	return nil
}
