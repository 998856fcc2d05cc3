package service

import (
	"context"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/dispatch"
	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/logger"
)

const statusQueued = "queued"

// JobService triggers asynchronous maintenance jobs.
type JobService interface {
	RecomputeBias(ctx context.Context, symbol string) (*dto.RecomputeResponse, error)
}

// NewJobService creates a new job service.
func NewJobService(assets *AssetLookup, dispatcher dispatch.Dispatcher, log *logger.Logger) JobService {
	return &jobService{
		assets:     assets,
		dispatcher: dispatcher,
		logger:     log.Named("jobs"),
	}
}

type jobService struct {
	assets     *AssetLookup
	dispatcher dispatch.Dispatcher
	logger     *logger.Logger
}

// RecomputeBias queues a score recomputation for symbol, or for every known
// asset when symbol is empty.
func (s *jobService) RecomputeBias(ctx context.Context, symbol string) (*dto.RecomputeResponse, error) {
	var targets []entity.Asset
	if symbol != "" {
		asset, err := s.assets.Find(ctx, symbol)
		if err != nil {
			return nil, err
		}
		targets = []entity.Asset{*asset}
	} else {
		all, err := s.assets.All(ctx)
		if err != nil {
			return nil, err
		}
		targets = all
	}

	resp := &dto.RecomputeResponse{Status: statusQueued}
	for _, asset := range targets {
		task := dispatch.ScoreTask{AssetID: asset.ID, Reason: dispatch.ReasonManual}
		if err := s.dispatcher.DispatchScore(ctx, task); err != nil {
			return nil, apperror.Transient("failed to queue recompute for %s", asset.Symbol).WithError(err)
		}
		resp.Queued++
	}

	s.logger.Info("Recompute queued", logger.StringField("asset", symbol), logger.IntField("queued", resp.Queued))
	return resp, nil
}
