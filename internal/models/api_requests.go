package models

type SimulateRequest struct {
	Stats  KingdomStats     `json:"stats"`
	Events []SimulatedEvent `json:"events" validate:"max=50,dive"`
}

type KingdomSimulateRequest struct {
	Events []SimulatedEvent `json:"events" validate:"max=50,dive"`
}

type BatchScoreRequest struct {
	KingdomIDs []int `json:"kingdom_ids" validate:"required,min=1,max=100,dive,gt=0"`
}

type TierResponse struct {
	Score float64 `json:"score"`
	Tier  Tier    `json:"tier"`
	Rank  int     `json:"rank"` // D=0 .. S=4
}
