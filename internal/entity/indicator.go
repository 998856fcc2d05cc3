package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Indicator is a derived numeric observation for one asset, one key, at one timestamp.
// (asset_id, key, ts) is unique; re-deriving the same triple overwrites the row.
type Indicator struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	AssetID uint           `gorm:"not null;uniqueIndex:uq_indicators_asset_key_ts" json:"asset_id"`
	Key     string         `gorm:"size:50;not null;uniqueIndex:uq_indicators_asset_key_ts" json:"key"`
	Ts      time.Time      `gorm:"column:ts;not null;uniqueIndex:uq_indicators_asset_key_ts" json:"ts"`
	Value   float64        `gorm:"not null" json:"value"`
	Meta    datatypes.JSON `gorm:"type:jsonb" json:"meta,omitempty"`
}

// TableName specifies the table name for the Indicator model.
func (Indicator) TableName() string {
	return "indicators"
}
