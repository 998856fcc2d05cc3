package repository

import (
	"context"
	"errors"

	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/pkg/apperror"

	"gorm.io/gorm"
)

// ScoreRepository defines the interface for score snapshot operations. Snapshots are append-only.
type ScoreRepository interface {
	Create(ctx context.Context, score *entity.Score) error
	// Latest returns the serving snapshot: newest ts, ties broken by the highest id.
	Latest(ctx context.Context, assetID uint) (*entity.Score, error)
	History(ctx context.Context, assetID uint, limit int) ([]entity.Score, error)
}

// NewScoreRepository creates a new GORM-based score repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

type scoreRepository struct {
	db *gorm.DB
}

func (r *scoreRepository) Create(ctx context.Context, score *entity.Score) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *scoreRepository) Latest(ctx context.Context, assetID uint) (*entity.Score, error) {
	var score entity.Score
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("ts DESC").
		Order("id DESC").
		Take(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("score for asset %d not found", assetID)
		}
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepository) History(ctx context.Context, assetID uint, limit int) ([]entity.Score, error) {
	var scores []entity.Score
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("ts DESC").
		Order("id DESC").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}
