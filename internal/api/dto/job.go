package dto

// RecomputeQuery selects the asset to recompute. Empty means every known asset.
type RecomputeQuery struct {
	Asset string `query:"asset" validate:"omitempty,max=20"`
}

// RecomputeResponse reports how many score tasks were queued.
type RecomputeResponse struct {
	Status string `json:"status" example:"queued"`
	Queued int    `json:"queued" example:"1"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status  string            `json:"status" example:"ok"`
	Checks  map[string]string `json:"checks,omitempty"`
	Version string            `json:"version,omitempty"`
}
