package service

import (
	"context"
	"time"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/repository"
	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/logger"
)

// AssetService exposes assets and their stored history.
type AssetService interface {
	ListAssets(ctx context.Context) ([]dto.AssetResponse, error)
	GetIndicators(ctx context.Context, symbol string, from, to *time.Time) ([]dto.IndicatorResponse, error)
	GetScores(ctx context.Context, symbol string, limit int) ([]dto.ScoreResponse, error)
}

// NewAssetService creates a new asset service.
func NewAssetService(
	assets *AssetLookup,
	indicatorRepo repository.IndicatorRepository,
	scoreRepo repository.ScoreRepository,
	log *logger.Logger,
) AssetService {
	return &assetService{
		assets:        assets,
		indicatorRepo: indicatorRepo,
		scoreRepo:     scoreRepo,
		logger:        log.Named("asset"),
	}
}

type assetService struct {
	assets        *AssetLookup
	indicatorRepo repository.IndicatorRepository
	scoreRepo     repository.ScoreRepository
	logger        *logger.Logger
}

func (s *assetService) ListAssets(ctx context.Context) ([]dto.AssetResponse, error) {
	assets, err := s.assets.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.AssetResponse{ID: a.ID, Symbol: a.Symbol, Kind: a.Kind})
	}
	return out, nil
}

// GetIndicators returns the indicator history of the asset in ascending
// timestamp order, optionally bounded by from and to (inclusive).
func (s *assetService) GetIndicators(ctx context.Context, symbol string, from, to *time.Time) ([]dto.IndicatorResponse, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, apperror.Validation("from must not be after to")
	}
	asset, err := s.assets.Find(ctx, symbol)
	if err != nil {
		return nil, err
	}
	indicators, err := s.indicatorRepo.FindRange(ctx, asset.ID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IndicatorResponse, 0, len(indicators))
	for _, ind := range indicators {
		out = append(out, dto.IndicatorResponse{Key: ind.Key, Ts: ind.Ts, Value: ind.Value})
	}
	return out, nil
}

// GetScores returns up to limit score snapshots, newest first.
func (s *assetService) GetScores(ctx context.Context, symbol string, limit int) ([]dto.ScoreResponse, error) {
	asset, err := s.assets.Find(ctx, symbol)
	if err != nil {
		return nil, err
	}
	scores, err := s.scoreRepo.History(ctx, asset.ID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScoreResponse, 0, len(scores))
	for _, sc := range scores {
		out = append(out, dto.ScoreResponse{
			ID:      sc.ID,
			Ts:      sc.Ts,
			Total:   sc.Total,
			Version: sc.Version,
			Pillars: toPillars(sc.Breakdown),
		})
	}
	return out, nil
}
