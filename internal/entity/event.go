package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// EventKind classifies an admitted event.
type EventKind string

const (
	EventKindIndicator EventKind = "indicator"
	EventKindNews      EventKind = "news"
	EventKindPrice     EventKind = "price"
	EventKindYield     EventKind = "yield"
)

// Event is an admitted, immutable external observation tied to an asset.
type Event struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	TraceID       string         `gorm:"size:36;uniqueIndex;not null" json:"trace_id"`
	SchemaVersion string         `gorm:"size:20" json:"schema_version"`
	Source        string         `gorm:"size:50;not null" json:"source"`
	AssetID       uint           `gorm:"not null" json:"asset_id"`
	Kind          EventKind      `gorm:"size:20;not null" json:"kind"`
	IngestedAt    time.Time      `gorm:"not null" json:"ingested_at"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Event model.
func (Event) TableName() string {
	return "events"
}
