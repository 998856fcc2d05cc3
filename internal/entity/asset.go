package entity

import "time"

// AssetKindUnknown is the placeholder kind given to assets created lazily by intake.
const AssetKindUnknown = "unknown"

// Asset is a tradable symbol tracked by the system.
type Asset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"size:20;uniqueIndex;not null" json:"symbol"`
	Kind      string    `gorm:"size:20;not null" json:"kind"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Asset model.
func (Asset) TableName() string {
	return "assets"
}
