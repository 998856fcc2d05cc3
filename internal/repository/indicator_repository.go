package repository

import (
	"context"
	"database/sql"
	"time"

	"golang-bias-heatmap/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IndicatorRepository is the indicator store: latest value per (asset, key) plus history by timestamp.
type IndicatorRepository interface {
	// Upsert inserts the indicator or replaces value and meta of the row with the same (asset, key, ts).
	Upsert(ctx context.Context, indicator *entity.Indicator) error
	// Latest returns the most recent indicator for (asset, key), or nil when there is none.
	Latest(ctx context.Context, assetID uint, key string) (*entity.Indicator, error)
	// LatestTimestamp returns the most recent indicator timestamp, scoped to assetID when it is not nil.
	LatestTimestamp(ctx context.Context, assetID *uint) (*time.Time, error)
	// FindRange returns the history of an asset in ascending timestamp order. Nil bounds are open.
	FindRange(ctx context.Context, assetID uint, from, to *time.Time) ([]entity.Indicator, error)
}

// NewIndicatorRepository creates a new GORM-based indicator repository.
func NewIndicatorRepository(db *gorm.DB) IndicatorRepository {
	return &indicatorRepository{db: db}
}

type indicatorRepository struct {
	db *gorm.DB
}

func (r *indicatorRepository) Upsert(ctx context.Context, indicator *entity.Indicator) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}, {Name: "key"}, {Name: "ts"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "meta"}),
	}).Create(indicator).Error
}

func (r *indicatorRepository) Latest(ctx context.Context, assetID uint, key string) (*entity.Indicator, error) {
	var rows []entity.Indicator
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND key = ?", assetID, key).
		Order("ts DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *indicatorRepository) LatestTimestamp(ctx context.Context, assetID *uint) (*time.Time, error) {
	q := r.db.WithContext(ctx).Model(&entity.Indicator{}).Select("MAX(ts)")
	if assetID != nil {
		q = q.Where("asset_id = ?", *assetID)
	}

	var latest sql.NullTime
	if err := q.Row().Scan(&latest); err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	return &latest.Time, nil
}

func (r *indicatorRepository) FindRange(ctx context.Context, assetID uint, from, to *time.Time) ([]entity.Indicator, error) {
	q := r.db.WithContext(ctx).Where("asset_id = ?", assetID)
	if from != nil {
		q = q.Where("ts >= ?", *from)
	}
	if to != nil {
		q = q.Where("ts <= ?", *to)
	}

	var indicators []entity.Indicator
	if err := q.Order("ts ASC").Find(&indicators).Error; err != nil {
		return nil, err
	}
	return indicators, nil
}
