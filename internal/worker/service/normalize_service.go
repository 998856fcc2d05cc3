package service

import (
	"context"
	"encoding/json"
	"fmt"

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
	"gorm.io/datatypes"
)

// NormalizeService turns admitted events into indicator values.
type NormalizeService interface {
	StreamTaskService
	Execute(ctx context.Context, task dispatch.NormalizeTask) (*entity.Indicator, error)
}

// NewNormalizeService creates a new NormalizeService.
func NewNormalizeService(
	rdb *redis.Client,
	eventRepo repository.EventRepository,
	indicatorRepo repository.IndicatorRepository,
	dispatcher dispatch.Dispatcher,
	notifier telegram.Notifier,
	cfg StreamConfig,
	log *logger.Logger,
	rec *metrics.Recorder,
) NormalizeService {
	s := &normalizeService{
		eventRepo:     eventRepo,
		indicatorRepo: indicatorRepo,
		dispatcher:    dispatcher,
		log:           log.Named("normalizer"),
	}
	s.streamProcessor = newStreamProcessor(common.RedisStreamEventNormalize, cfg, rdb, notifier, s.log, rec, s.handle)
	return s
}

type normalizeService struct {
	*streamProcessor
	eventRepo     repository.EventRepository
	indicatorRepo repository.IndicatorRepository
	dispatcher    dispatch.Dispatcher
	log           *logger.Logger
}

type indicatorMeta struct {
	TraceID string `json:"trace_id"`
	Source  string `json:"source"`
	Kind    string `json:"kind"`
}

// Execute derives the indicator of the event, upserts it at the event's
// ingestion time and schedules a score recomputation for the asset.
func (s *normalizeService) Execute(ctx context.Context, task dispatch.NormalizeTask) (*entity.Indicator, error) {
	event, err := s.eventRepo.FindByTraceID(ctx, task.TraceID)
	if err != nil {
		return nil, err
	}

	key, value, err := scoring.PayloadToIndicator(event.Payload)
	if err != nil {
		return nil, err
	}

	meta, err := json.Marshal(indicatorMeta{TraceID: event.TraceID, Source: event.Source, Kind: string(event.Kind)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal indicator meta: %w", err)
	}

	indicator := &entity.Indicator{
		AssetID: event.AssetID,
		Key:     key,
		Ts:      event.IngestedAt,
		Value:   value,
		Meta:    datatypes.JSON(meta),
	}
	if err := s.indicatorRepo.Upsert(ctx, indicator); err != nil {
		return nil, apperror.Transient("failed to store indicator %s for asset %d", key, event.AssetID).WithError(err)
	}

	s.log.Debug("Indicator stored",
		logger.StringField("trace_id", event.TraceID),
		logger.StringField("key", key),
		logger.FloatField("value", value))

	if err := s.dispatcher.DispatchScore(ctx, dispatch.ScoreTask{AssetID: event.AssetID, Reason: dispatch.ReasonIndicator}); err != nil {
		return indicator, apperror.Transient("failed to schedule scoring for asset %d", event.AssetID).WithError(err)
	}
	return indicator, nil
}

func (s *normalizeService) handle(ctx context.Context, values map[string]interface{}) (string, error) {
	task, err := dispatch.DecodeNormalizeTask(values)
	if err != nil {
		return "", apperror.Validation("malformed normalize task").WithError(err)
	}
	_, err = s.Execute(ctx, task)
	return "trace_id=" + task.TraceID, err
}
