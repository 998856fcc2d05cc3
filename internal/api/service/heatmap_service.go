package service

import (
	"context"
	"fmt"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/internal/repository"
	"golang-bias-heatmap/internal/scoring"
	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/logger"
)

// DisplayConfig controls how stored totals are presented.
type DisplayConfig struct {
	ClampBound int
	Divisor    float64
	Decimals   int
}

// HeatmapService serves the latest score view of assets.
type HeatmapService interface {
	GetHeatmap(ctx context.Context, symbol string) (*dto.HeatmapResponse, error)
	GetHeatmaps(ctx context.Context, symbols []string) (*dto.HeatmapBatchResponse, error)
}

// NewHeatmapService creates a new heatmap service.
func NewHeatmapService(
	assets *AssetLookup,
	scoreRepo repository.ScoreRepository,
	display DisplayConfig,
	maxBatchAssets int,
	log *logger.Logger,
) HeatmapService {
	return &heatmapService{
		assets:         assets,
		scoreRepo:      scoreRepo,
		display:        display,
		maxBatchAssets: maxBatchAssets,
		logger:         log.Named("heatmap"),
	}
}

type heatmapService struct {
	assets         *AssetLookup
	scoreRepo      repository.ScoreRepository
	display        DisplayConfig
	maxBatchAssets int
	logger         *logger.Logger
}

// GetHeatmap returns the latest score of the asset. Unknown assets and assets
// without a score yield NotFound.
func (s *heatmapService) GetHeatmap(ctx context.Context, symbol string) (*dto.HeatmapResponse, error) {
	asset, err := s.assets.Find(ctx, symbol)
	if err != nil {
		return nil, err
	}
	score, err := s.scoreRepo.Latest(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(asset.Symbol, score), nil
}

// GetHeatmaps returns one item per requested symbol in request order. Assets
// that cannot be resolved get a neutral item and an entry in Errors.
func (s *heatmapService) GetHeatmaps(ctx context.Context, symbols []string) (*dto.HeatmapBatchResponse, error) {
	if len(symbols) == 0 {
		return nil, apperror.Validation("at least one asset is required")
	}
	if s.maxBatchAssets > 0 && len(symbols) > s.maxBatchAssets {
		return nil, apperror.Validation("too many assets: %d requested, at most %d allowed", len(symbols), s.maxBatchAssets)
	}

	resp := &dto.HeatmapBatchResponse{
		Items:  make([]dto.HeatmapResponse, 0, len(symbols)),
		Errors: []string{},
	}
	for _, symbol := range symbols {
		item, err := s.GetHeatmap(ctx, symbol)
		if err != nil {
			if !apperror.Is(err, apperror.CodeNotFound) {
				s.logger.Error("Failed to load heatmap", logger.StringField("asset", symbol), logger.ErrorField(err))
			}
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %s", symbol, reason(err)))
			item = s.neutral(symbol)
		}
		resp.Items = append(resp.Items, *item)
	}
	return resp, nil
}

func (s *heatmapService) toResponse(symbol string, score *entity.Score) *dto.HeatmapResponse {
	asOf := score.Ts
	return &dto.HeatmapResponse{
		Asset:        symbol,
		Score:        score.Total,
		DisplayScore: scoring.DisplayScore(score.Total, s.display.ClampBound, s.display.Divisor, s.display.Decimals),
		Scale:        [2]int{-s.display.ClampBound, s.display.ClampBound},
		Pillars:      toPillars(score.Breakdown),
		AsOf:         &asOf,
		Version:      score.Version,
	}
}

func (s *heatmapService) neutral(symbol string) *dto.HeatmapResponse {
	return &dto.HeatmapResponse{
		Asset:   symbol,
		Scale:   [2]int{-s.display.ClampBound, s.display.ClampBound},
		Pillars: []dto.PillarResponse{},
	}
}

func toPillars(breakdown entity.Breakdown) []dto.PillarResponse {
	pillars := make([]dto.PillarResponse, 0, len(breakdown))
	for _, p := range breakdown {
		pillar := dto.PillarResponse{Name: p.Name, Components: make([]dto.ComponentResponse, 0, len(p.Components))}
		for _, c := range p.Components {
			pillar.Score += c.Score
			pillar.Components = append(pillar.Components, dto.ComponentResponse{Key: c.Key, Score: c.Score})
		}
		pillars = append(pillars, pillar)
	}
	return pillars
}

// reason returns the client-facing message of err.
func reason(err error) string {
	if appErr := apperror.As(err); appErr != nil {
		return appErr.Message
	}
	return "internal error"
}
