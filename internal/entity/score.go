package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Component is one weighted indicator inside a pillar, truncated toward zero.
type Component struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
}

// PillarBreakdown holds the components of one pillar in weight-document order.
type PillarBreakdown struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
}

// Breakdown maps pillar name to its ordered components. It is stored as an
// ordered JSON array so the pillar order of the weight document survives.
type Breakdown []PillarBreakdown

// Value implements driver.Valuer.
func (b Breakdown) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]PillarBreakdown(b))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (b *Breakdown) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*b = Breakdown{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported breakdown type %T", value)
	}
	var pillars []PillarBreakdown
	if err := json.Unmarshal(data, &pillars); err != nil {
		return fmt.Errorf("failed to decode breakdown: %w", err)
	}
	*b = pillars
	return nil
}

// Score is an immutable snapshot of an asset's bias. Rows are append-only and
// the latest by (ts, id) is the serving view.
type Score struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AssetID   uint      `gorm:"not null;index:ix_scores_asset_ts" json:"asset_id"`
	Ts        time.Time `gorm:"column:ts;not null;index:ix_scores_asset_ts" json:"ts"`
	Total     int       `gorm:"not null" json:"total"`
	Breakdown Breakdown `gorm:"type:jsonb;not null" json:"breakdown"`
	Version   string    `gorm:"size:20;not null" json:"version"`
}

// TableName specifies the table name for the Score model.
func (Score) TableName() string {
	return "scores"
}
