package service

import (
	"context"
	"strings"

	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/internal/repository"
	"golang-bias-heatmap/pkg/apperror"

	"github.com/patrickmn/go-cache"
)

// AssetLookup resolves symbols to assets, memoizing hits. Assets are never
// deleted, so cached entries do not go stale.
type AssetLookup struct {
	repo  repository.AssetRepository
	cache *cache.Cache
}

// NewAssetLookup creates a lookup over repo. A nil cache disables memoization.
func NewAssetLookup(repo repository.AssetRepository, c *cache.Cache) *AssetLookup {
	return &AssetLookup{repo: repo, cache: c}
}

// Find returns the asset for symbol or a NotFound error.
func (l *AssetLookup) Find(ctx context.Context, symbol string) (*entity.Asset, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, apperror.Validation("asset symbol is required")
	}
	if asset, ok := l.cached(symbol); ok {
		return asset, nil
	}
	asset, err := l.repo.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	l.remember(asset)
	return asset, nil
}

// FindOrCreate returns the asset for symbol, creating it lazily.
func (l *AssetLookup) FindOrCreate(ctx context.Context, symbol string) (*entity.Asset, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, apperror.Validation("asset symbol is required")
	}
	if asset, ok := l.cached(symbol); ok {
		return asset, nil
	}
	asset, err := l.repo.FirstOrCreate(ctx, symbol)
	if err != nil {
		return nil, err
	}
	l.remember(asset)
	return asset, nil
}

// All returns every known asset.
func (l *AssetLookup) All(ctx context.Context) ([]entity.Asset, error) {
	return l.repo.FindAll(ctx)
}

func (l *AssetLookup) cached(symbol string) (*entity.Asset, bool) {
	if l.cache == nil {
		return nil, false
	}
	v, ok := l.cache.Get(symbol)
	if !ok {
		return nil, false
	}
	asset, ok := v.(entity.Asset)
	if !ok {
		return nil, false
	}
	return &asset, true
}

func (l *AssetLookup) remember(asset *entity.Asset) {
	if l.cache == nil || asset == nil {
		return
	}
	l.cache.SetDefault(asset.Symbol, *asset)
}
