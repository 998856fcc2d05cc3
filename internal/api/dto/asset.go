package dto

import "time"

// AssetResponse describes a known asset.
type AssetResponse struct {
	ID     uint   `json:"id"`
	Symbol string `json:"symbol"`
	Kind   string `json:"kind"`
}

// IndicatorQuery bounds an indicator history request.
type IndicatorQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// IndicatorResponse is one stored indicator value.
type IndicatorResponse struct {
	Key   string    `json:"key"`
	Ts    time.Time `json:"ts"`
	Value float64   `json:"value"`
}

// ScoreQuery limits a score history request.
type ScoreQuery struct {
	Limit int `query:"limit" default:"20" validate:"min=1,max=500"`
}

// ScoreResponse is one stored score snapshot.
type ScoreResponse struct {
	ID      uint             `json:"id"`
	Ts      time.Time        `json:"ts"`
	Total   int              `json:"total"`
	Version string           `json:"version"`
	Pillars []PillarResponse `json:"pillars"`
}
