package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	_ "github.com/kvkstats/ranking-api/docs"
	"github.com/kvkstats/ranking-api/internal/logic"
	"github.com/kvkstats/ranking-api/internal/models"
)

func newTestRouter(cfg Config) (*Handler, http.Handler) {
	if cfg.Ranking == nil {
		cfg.Ranking = &MockRankingService{}
	}
	if cfg.History == nil {
		cfg.History = &MockHistoryService{}
	}
	cfg.Logger = zap.NewNop()
	h := New(cfg)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return h, r
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
}

const scenarioJSON = `{
	"total_matches": 10, "prep_wins": 8, "prep_losses": 2, "battle_wins": 7, "battle_losses": 3,
	"dominations": 6, "invasions": 1,
	"recent_outcomes": ["Domination", "domination", "comeback", "DOMINATION", "reversal"],
	"current_prep_streak": 3, "current_battle_streak": 2
}`

func TestHealth(t *testing.T) {
	_, router := newTestRouter(Config{})

	w := do(t, router, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", w.Code)
	}
	var body map[string]interface{}
	decode(t, w, &body)
	if body["formula_version"] != logic.FormulaVersion {
		t.Errorf("formula_version = %v, want %s", body["formula_version"], logic.FormulaVersion)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantStatus int
	}{
		{
			name: "All Healthy",
			cfg: Config{
				Postgres: &MockPinger{}, ClickHouse: &MockPinger{}, Redis: &MockRedisPinger{},
				Snapshots: &MockSnapshotQueue{Depth: 3},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Postgres Down",
			cfg: Config{
				Postgres: &MockPinger{Err: errBackend}, ClickHouse: &MockPinger{}, Redis: &MockRedisPinger{},
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "Redis Down",
			cfg: Config{
				Postgres: &MockPinger{}, ClickHouse: &MockPinger{}, Redis: &MockRedisPinger{Err: errBackend},
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{name: "Nothing Wired", cfg: Config{}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newTestRouter(tt.cfg)
			w := do(t, router, "GET", "/ready", "")
			if w.Code != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestExtractStats(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantPrep   int
	}{
		{
			name: "String Counters",
			body: `{"kingdom_id":"1402","total_kvks":"3","prep_wins":"2","prep_losses":"1","battle_wins":2,"battle_losses":1,
				"dominations":"2","invasions":"1","history":[
				{"kvk_number":"3","prep_result":"win","battle_result":"win","opponent_kingdom":"77"},
				{"kvk_number":2,"prep_result":"win","battle_result":"win","opponent_kingdom":78},
				{"kvk_number":1,"prep_result":"loss","battle_result":"loss","opponent_kingdom":79}]}`,
			wantStatus: http.StatusOK,
			wantPrep:   2,
		},
		{name: "Empty Profile", body: `{}`, wantStatus: http.StatusOK},
		{name: "Malformed JSON", body: `{"total_kvks":`, wantStatus: http.StatusBadRequest},
		{name: "Non Numeric Counter", body: `{"total_kvks":"many"}`, wantStatus: http.StatusBadRequest},
		{name: "Negative Counter", body: `{"total_kvks":-1}`, wantStatus: http.StatusBadRequest},
		{
			name:       "Unknown Phase Result",
			body:       `{"total_kvks":1,"history":[{"kvk_number":1,"prep_result":"draw","battle_result":"win","opponent_kingdom":5}]}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newTestRouter(Config{})
			w := do(t, router, "POST", "/api/v1/extract", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var stats models.KingdomStats
			decode(t, w, &stats)
			if stats.CurrentPrepStreak != tt.wantPrep {
				t.Errorf("CurrentPrepStreak = %d, want %d", stats.CurrentPrepStreak, tt.wantPrep)
			}
			if stats.RecentOutcomes == nil {
				t.Error("recent_outcomes should encode as an empty list, not null")
			}
		})
	}
}

func TestScoreStats(t *testing.T) {
	_, router := newTestRouter(Config{})

	w := do(t, router, "POST", "/api/v1/score", scenarioJSON)
	if w.Code != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200: %s", w.Code, w.Body.String())
	}
	var b models.ScoreBreakdown
	decode(t, w, &b)
	if b.FinalScore != 10.03 || b.Tier != models.TierS || b.FormulaVersion != logic.FormulaVersion {
		t.Errorf("breakdown = %+v, want 10.03 in tier S", b)
	}
}

func TestScoreStats_Errors(t *testing.T) {
	tests := []struct {
		name       string
		ranking    *MockRankingService
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "Unknown Outcome",
			ranking:    &MockRankingService{},
			body:       `{"total_matches":1,"recent_outcomes":["stalemate"]}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "stalemate",
		},
		{
			name:       "Inconsistent Counts",
			ranking:    &MockRankingService{},
			body:       `{"total_matches":1,"dominations":1,"invasions":1}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "exceed",
		},
		{
			name: "Backend Failure",
			ranking: &MockRankingService{ScoreStatsFunc: func(ctx context.Context, s models.KingdomStats) (*models.KingdomScore, error) {
				return nil, errBackend
			}},
			body:       `{}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newTestRouter(Config{Ranking: tt.ranking})
			w := do(t, router, "POST", "/api/v1/score", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d", w.Code, tt.wantStatus)
			}
			var body map[string]string
			decode(t, w, &body)
			if !strings.Contains(body["error"], tt.wantError) {
				t.Errorf("error = %q, want it to mention %q", body["error"], tt.wantError)
			}
			if strings.Contains(body["error"], errBackend.Error()) {
				t.Error("internal error details leaked to the client")
			}
		})
	}
}

func TestGetTier(t *testing.T) {
	tests := []struct {
		query      string
		wantStatus int
		wantTier   models.Tier
		wantRank   int
	}{
		{"score=9", http.StatusOK, models.TierS, 4},
		{"score=8.99", http.StatusOK, models.TierA, 3},
		{"score=0", http.StatusOK, models.TierD, 0},
		{"score=-3", http.StatusOK, models.TierD, 0},
		{"score=abc", http.StatusBadRequest, "", 0},
		{"score=NaN", http.StatusBadRequest, "", 0},
		{"", http.StatusBadRequest, "", 0},
	}

	_, router := newTestRouter(Config{})
	for _, tt := range tests {
		w := do(t, router, "GET", "/api/v1/tier?"+tt.query, "")
		if w.Code != tt.wantStatus {
			t.Errorf("%s: StatusCode = %d, want %d", tt.query, w.Code, tt.wantStatus)
			continue
		}
		if tt.wantStatus != http.StatusOK {
			continue
		}
		var resp models.TierResponse
		decode(t, w, &resp)
		if resp.Tier != tt.wantTier || resp.Rank != tt.wantRank {
			t.Errorf("%s: got %s/%d, want %s/%d", tt.query, resp.Tier, resp.Rank, tt.wantTier, tt.wantRank)
		}
	}
}

func TestSimulate(t *testing.T) {
	ww := `{"prep_result":"win","battle_result":"win"}`
	events := strings.Repeat(ww+",", 4) + ww

	_, router := newTestRouter(Config{})
	w := do(t, router, "POST", "/api/v1/simulate", `{"stats":{},"events":[`+events+`]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200: %s", w.Code, w.Body.String())
	}

	var res models.SimulationResult
	decode(t, w, &res)
	if res.Projected.FinalScore != 10.13 || res.ProjectedTier != models.TierS || !res.TierChanged {
		t.Errorf("projection = %v (%s), want 10.13 (S)", res.Projected.FinalScore, res.ProjectedTier)
	}
	if len(res.Insights) == 0 || len(res.Insights) > logic.MaxInsights {
		t.Errorf("Insights = %v", res.Insights)
	}
}

func TestSimulate_ResultSpellings(t *testing.T) {
	body := `{"stats":{},"events":[` +
		`{"prep_result":"Win","battle_result":"W"},` +
		`{"prep_result":" LOSS ","battle_result":"won"}]}`

	_, router := newTestRouter(Config{})
	w := do(t, router, "POST", "/api/v1/simulate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200: %s", w.Code, w.Body.String())
	}

	var res models.SimulationResult
	decode(t, w, &res)
	ps := res.ProjectedStats
	if ps.TotalMatches != 2 || ps.Dominations != 1 || ps.PrepWins != 1 || ps.PrepLosses != 1 || ps.BattleWins != 2 {
		t.Errorf("ProjectedStats = %+v, want one domination then one comeback", ps)
	}
}

func TestSimulate_Rejects(t *testing.T) {
	tooMany := strings.TrimSuffix(strings.Repeat(`{"prep_result":"win","battle_result":"loss"},`, 51), ",")

	tests := []struct {
		name string
		body string
	}{
		{"Unknown Result", `{"stats":{},"events":[{"prep_result":"draw","battle_result":"win"}]}`},
		{"Missing Result", `{"stats":{},"events":[{"prep_result":"win"}]}`},
		{"Undecided Result", `{"stats":{},"events":[{"prep_result":"pending","battle_result":"win"}]}`},
		{"Too Many Events", `{"stats":{},"events":[` + tooMany + `]}`},
		{"Invalid Stats", `{"stats":{"total_matches":-1},"events":[]}`},
	}

	_, router := newTestRouter(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, router, "POST", "/api/v1/simulate", tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("StatusCode = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetKingdomScore(t *testing.T) {
	ranking := &MockRankingService{
		ScoreKingdomFunc: func(ctx context.Context, id int) (*models.KingdomScore, error) {
			switch id {
			case 404:
				return nil, fmt.Errorf("kingdom %d: %w", id, logic.ErrKingdomNotFound)
			case 500:
				return nil, errBackend
			}
			return &models.KingdomScore{KingdomID: id, Breakdown: models.ScoreBreakdown{Tier: models.TierB}}, nil
		},
	}

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/kingdoms/1402/score", http.StatusOK},
		{"/api/v1/kingdoms/404/score", http.StatusNotFound},
		{"/api/v1/kingdoms/500/score", http.StatusInternalServerError},
		{"/api/v1/kingdoms/abc/score", http.StatusBadRequest},
		{"/api/v1/kingdoms/0/score", http.StatusBadRequest},
	}

	_, router := newTestRouter(Config{Ranking: ranking})
	for _, tt := range tests {
		w := do(t, router, "GET", tt.path, "")
		if w.Code != tt.wantStatus {
			t.Errorf("%s: StatusCode = %d, want %d", tt.path, w.Code, tt.wantStatus)
		}
	}
}

func TestGetKingdomScore_RouteContext(t *testing.T) {
	var gotID int
	h := New(Config{Logger: zap.NewNop(), Ranking: &MockRankingService{
		ScoreKingdomFunc: func(ctx context.Context, id int) (*models.KingdomScore, error) {
			gotID = id
			return &models.KingdomScore{KingdomID: id}, nil
		},
	}})

	req := httptest.NewRequest("GET", "/api/v1/kingdoms/2041/score", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "2041")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	h.GetKingdomScore(w, req)

	if w.Code != http.StatusOK || gotID != 2041 {
		t.Errorf("StatusCode = %d, id = %d, want 200 and 2041", w.Code, gotID)
	}
}

func TestSimulateKingdom(t *testing.T) {
	var gotEvents []models.SimulatedEvent
	ranking := &MockRankingService{
		SimulateKingdomFunc: func(ctx context.Context, id int, events []models.SimulatedEvent) (*models.SimulationResult, error) {
			gotEvents = events
			if id == 404 {
				return nil, logic.ErrKingdomNotFound
			}
			return &models.SimulationResult{ScoreDelta: 1.5}, nil
		},
	}
	_, router := newTestRouter(Config{Ranking: ranking})

	body := `{"events":[{"prep_result":"loss","battle_result":"win"}]}`
	w := do(t, router, "POST", "/api/v1/kingdoms/7/simulate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200: %s", w.Code, w.Body.String())
	}
	if len(gotEvents) != 1 || gotEvents[0].PrepResult != models.PhaseLoss {
		t.Errorf("events = %+v", gotEvents)
	}

	if w := do(t, router, "POST", "/api/v1/kingdoms/404/simulate", body); w.Code != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", w.Code)
	}
}

func TestScoreKingdoms(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantIDs    []int
	}{
		{"Order Preserved", `{"kingdom_ids":[30,10,20]}`, http.StatusOK, []int{30, 10, 20}},
		{"Empty", `{"kingdom_ids":[]}`, http.StatusBadRequest, nil},
		{"Missing", `{}`, http.StatusBadRequest, nil},
		{"Non Positive Id", `{"kingdom_ids":[1,0]}`, http.StatusBadRequest, nil},
		{"Over Configured Limit", `{"kingdom_ids":[1,2,3,4]}`, http.StatusBadRequest, nil},
	}

	_, router := newTestRouter(Config{BatchLimit: 3})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, "POST", "/api/v1/kingdoms/scores", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantIDs == nil {
				return
			}
			var scores []models.KingdomScore
			decode(t, w, &scores)
			for i, id := range tt.wantIDs {
				if scores[i].KingdomID != id {
					t.Errorf("scores[%d] = kingdom %d, want %d", i, scores[i].KingdomID, id)
				}
			}
		})
	}
}

func TestHistoryEndpoints(t *testing.T) {
	var (
		gotLimit int
		gotQuery logic.SnapshotQuery
	)
	history := &MockHistoryService{
		KingdomHistoryFunc: func(ctx context.Context, id, limit int) ([]models.ScoreSnapshot, error) {
			gotLimit = limit
			return []models.ScoreSnapshot{{KingdomID: id, Tier: models.TierA}}, nil
		},
		LeaderboardFunc: func(ctx context.Context, q logic.SnapshotQuery) ([]models.ScoreSnapshot, error) {
			gotQuery = q
			if q.Tier == "Z" {
				return nil, fmt.Errorf("leaderboard: %w", logic.ErrInvalidInput)
			}
			return []models.ScoreSnapshot{}, nil
		},
	}
	_, router := newTestRouter(Config{History: history})

	w := do(t, router, "GET", "/api/v1/kingdoms/1402/history?limit=5", "")
	if w.Code != http.StatusOK || gotLimit != 5 {
		t.Errorf("history: StatusCode = %d, limit = %d, want 200 and 5", w.Code, gotLimit)
	}
	limits := []struct {
		raw  string
		want int
	}{
		{"9999", 500},
		{"500", 500},
		{"0", 50},
		{"-4", 50},
		{"ten", 50},
	}
	for _, l := range limits {
		if do(t, router, "GET", "/api/v1/kingdoms/1402/history?limit="+l.raw, ""); gotLimit != l.want {
			t.Errorf("limit=%s gave %d, want %d", l.raw, gotLimit, l.want)
		}
	}

	w = do(t, router, "GET", "/api/v1/leaderboard?tier=S&formula=2.1&limit=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard StatusCode = %d", w.Code)
	}
	if gotQuery.Tier != "S" || gotQuery.FormulaVersion != "2.1" || gotQuery.Limit != 10 {
		t.Errorf("leaderboard query = %+v", gotQuery)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty leaderboard body = %s, want []", w.Body.String())
	}

	if w := do(t, router, "GET", "/api/v1/leaderboard?tier=Z", ""); w.Code != http.StatusBadRequest {
		t.Errorf("invalid tier StatusCode = %d, want 400", w.Code)
	}
}

func TestBodyTooLarge(t *testing.T) {
	_, router := newTestRouter(Config{})
	huge := `{"kingdom_id":1,"history":[` + strings.Repeat(`{"kvk_number":1},`, MaxBodySize/16) + `{}]}`

	w := do(t, router, "POST", "/api/v1/extract", huge)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("StatusCode = %d, want 413", w.Code)
	}
}

func TestSwaggerDoc(t *testing.T) {
	_, router := newTestRouter(Config{})

	w := do(t, router, "GET", "/swagger/doc.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", w.Code)
	}
	var doc map[string]interface{}
	decode(t, w, &doc)
	paths, _ := doc["paths"].(map[string]interface{})
	if _, ok := paths["/kingdoms/{id}/score"]; !ok {
		t.Errorf("swagger doc is missing /kingdoms/{id}/score")
	}
}
