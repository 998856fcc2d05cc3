package dto

import "encoding/json"

// EventRequest is one externally submitted event.
type EventRequest struct {
	SchemaVersion string          `json:"schema_version" validate:"required,max=20" example:"2025.08.1"`
	Source        string          `json:"source" validate:"required,max=50" example:"macro-feed"`
	Asset         string          `json:"asset" validate:"required,max=20" example:"XAUUSD"`
	Kind          string          `json:"kind" validate:"required,oneof=indicator news price yield" example:"indicator"`
	IngestedAt    string          `json:"ingested_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2024-01-01T00:00:00Z"`
	Payload       json.RawMessage `json:"payload" validate:"required" swaggertype:"object"`
	TraceID       string          `json:"trace_id" validate:"required,max=64" example:"8d3c8a4e-6a4b-4f0e-9a53-0e6f2b1d7c11"`
	Tags          []string        `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
}

// IngestRequest is a batch of events.
type IngestRequest struct {
	Events []EventRequest `json:"events"`
}

// EventRejection reports an event of the batch that was not admitted.
type EventRejection struct {
	Index   int    `json:"index"`
	TraceID string `json:"trace_id,omitempty"`
	Error   string `json:"error"`
}

// IngestResponse summarises a batch admission.
type IngestResponse struct {
	Status     string           `json:"status" example:"accepted"`
	Accepted   int              `json:"accepted"`
	Duplicates int              `json:"duplicates"`
	Rejected   []EventRejection `json:"rejected"`
}
