package repository

import (
	"context"
	"errors"

	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/pkg/apperror"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetRepository defines the interface for asset data operations.
type AssetRepository interface {
	FindBySymbol(ctx context.Context, symbol string) (*entity.Asset, error)
	FirstOrCreate(ctx context.Context, symbol string) (*entity.Asset, error)
	FindAll(ctx context.Context) ([]entity.Asset, error)
}

// NewAssetRepository creates a new GORM-based asset repository.
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

type assetRepository struct {
	db *gorm.DB
}

// FindBySymbol retrieves an asset by its symbol.
func (r *assetRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Asset, error) {
	var asset entity.Asset
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).Take(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("asset %s not found", symbol)
		}
		return nil, err
	}
	return &asset, nil
}

// FirstOrCreate returns the asset for symbol, creating it with the unknown kind
// when absent. Concurrent first sightings of a symbol resolve to the same row.
func (r *assetRepository) FirstOrCreate(ctx context.Context, symbol string) (*entity.Asset, error) {
	asset := entity.Asset{Symbol: symbol, Kind: entity.AssetKindUnknown}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(&asset).Error
	if err != nil {
		return nil, err
	}
	if asset.ID != 0 {
		return &asset, nil
	}
	return r.FindBySymbol(ctx, symbol)
}

// FindAll retrieves all assets ordered by symbol.
func (r *assetRepository) FindAll(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}
