package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang-bias-heatmap/internal/dispatch"
	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/internal/repository"
	"golang-bias-heatmap/internal/scoring"
	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/logger"
	"golang-bias-heatmap/pkg/metrics"
	"golang-bias-heatmap/pkg/telegram"

	"github.com/redis/go-redis/v9"
)

// ScoringService computes and appends score snapshots.
type ScoringService interface {
	StreamTaskService
	Execute(ctx context.Context, task dispatch.ScoreTask) (*entity.Score, error)
	// RecomputeAll schedules a score task for every known asset and returns how many were queued.
	RecomputeAll(ctx context.Context) (int, error)
}

// NewScoringService creates a new ScoringService.
func NewScoringService(
	rdb *redis.Client,
	assetRepo repository.AssetRepository,
	scoreRepo repository.ScoreRepository,
	engine *scoring.Engine,
	weights scoring.WeightLoader,
	dispatcher dispatch.Dispatcher,
	notifier telegram.Notifier,
	cfg StreamConfig,
	log *logger.Logger,
	rec *metrics.Recorder,
) ScoringService {
	s := &scoringService{
		assetRepo:  assetRepo,
		scoreRepo:  scoreRepo,
		engine:     engine,
		weights:    weights,
		dispatcher: dispatcher,
		log:        log.Named("scoring"),
		metrics:    rec,
	}
	s.streamProcessor = newStreamProcessor(common.RedisStreamScoreRecompute, cfg, rdb, notifier, s.log, rec, s.handle)
	return s
}

type scoringService struct {
	*streamProcessor
	assetRepo  repository.AssetRepository
	scoreRepo  repository.ScoreRepository
	engine     *scoring.Engine
	weights    scoring.WeightLoader
	dispatcher dispatch.Dispatcher
	log        *logger.Logger
	metrics    *metrics.Recorder
}

// Execute loads the current weights, computes the asset's score and appends it.
// Nothing is written when the weights cannot be loaded.
func (s *scoringService) Execute(ctx context.Context, task dispatch.ScoreTask) (*entity.Score, error) {
	start := time.Now()
	weights, err := s.weights.Load(ctx)
	if err != nil {
		return nil, err
	}

	score, err := s.engine.Compute(ctx, task.AssetID, weights)
	if err != nil {
		return nil, err
	}
	if err := s.scoreRepo.Create(ctx, score); err != nil {
		return nil, apperror.Transient("failed to store score for asset %d", task.AssetID).WithError(err)
	}

	s.metrics.RecordScore(strconv.FormatUint(uint64(task.AssetID), 10), score.Total)
	s.metrics.RecordLatency("score", time.Since(start).Seconds())
	s.log.Info("Score stored",
		logger.Field("asset_id", task.AssetID),
		logger.IntField("total", score.Total),
		logger.StringField("version", score.Version),
		logger.StringField("reason", task.Reason))
	return score, nil
}

func (s *scoringService) RecomputeAll(ctx context.Context) (int, error) {
	assets, err := s.assetRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list assets: %w", err)
	}

	queued := 0
	for _, asset := range assets {
		if err := s.dispatcher.DispatchScore(ctx, dispatch.ScoreTask{AssetID: asset.ID, Reason: dispatch.ReasonCron}); err != nil {
			return queued, fmt.Errorf("failed to queue recompute for %s: %w", asset.Symbol, err)
		}
		queued++
	}
	s.log.Info("Recompute scheduled", logger.IntField("queued", queued))
	return queued, nil
}

func (s *scoringService) handle(ctx context.Context, values map[string]interface{}) (string, error) {
	task, err := dispatch.DecodeScoreTask(values)
	if err != nil {
		return "", apperror.Validation("malformed score task").WithError(err)
	}
	_, err = s.Execute(ctx, task)
	return fmt.Sprintf("asset_id=%d reason=%s", task.AssetID, task.Reason), err
}
