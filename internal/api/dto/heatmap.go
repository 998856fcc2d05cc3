package dto

import "time"

// ComponentResponse is one indicator contribution inside a pillar.
type ComponentResponse struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
}

// PillarResponse is a pillar with its summed component scores.
type PillarResponse struct {
	Name       string              `json:"name"`
	Score      int                 `json:"score"`
	Components []ComponentResponse `json:"components"`
}

// HeatmapResponse is the latest bias view of one asset.
type HeatmapResponse struct {
	Asset        string           `json:"asset" example:"XAUUSD"`
	Score        int              `json:"score" example:"5"`
	DisplayScore float64          `json:"display_score" example:"0.63"`
	Scale        [2]int           `json:"scale"`
	Pillars      []PillarResponse `json:"pillars"`
	AsOf         *time.Time       `json:"as_of"`
	Version      string           `json:"version" example:"2025.08.1"`
}

// HeatmapBatchQuery is the query of the batch heatmap endpoint.
type HeatmapBatchQuery struct {
	Assets string `query:"assets" validate:"required"`
}

// HeatmapBatchResponse holds one item per requested asset plus per-asset errors.
type HeatmapBatchResponse struct {
	Items  []HeatmapResponse `json:"items"`
	Errors []string          `json:"errors"`
}
