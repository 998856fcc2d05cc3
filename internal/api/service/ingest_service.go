package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/dispatch"
	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/internal/repository"
	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/logger"
	"golang-bias-heatmap/pkg/metrics"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const statusAccepted = "accepted"

// IngestService admits external events into the pipeline.
type IngestService interface {
	Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error)
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	assets *AssetLookup,
	eventRepo repository.EventRepository,
	dispatcher dispatch.Dispatcher,
	maxBatchSize int,
	log *logger.Logger,
	rec *metrics.Recorder,
) IngestService {
	return &ingestService{
		assets:       assets,
		eventRepo:    eventRepo,
		dispatcher:   dispatcher,
		maxBatchSize: maxBatchSize,
		logger:       log.Named("ingest"),
		metrics:      rec,
	}
}

type ingestService struct {
	assets       *AssetLookup
	eventRepo    repository.EventRepository
	dispatcher   dispatch.Dispatcher
	maxBatchSize int
	logger       *logger.Logger
	metrics      *metrics.Recorder
}

// Ingest admits each event of the batch independently. A failing event is
// reported in Rejected and does not affect its siblings. Re-submitted trace ids
// are counted as duplicates and schedule nothing.
func (s *ingestService) Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResponse, error) {
	if s.maxBatchSize > 0 && len(req.Events) > s.maxBatchSize {
		return nil, apperror.Validation("batch too large: %d events, at most %d allowed", len(req.Events), s.maxBatchSize)
	}

	start := time.Now()
	resp := &dto.IngestResponse{Status: statusAccepted, Rejected: []dto.EventRejection{}}
	for i := range req.Events {
		ev := &req.Events[i]
		admitted, err := s.admit(ctx, ev)
		switch {
		case err != nil:
			resp.Rejected = append(resp.Rejected, dto.EventRejection{Index: i, TraceID: ev.TraceID, Error: reason(err)})
			s.metrics.RecordEvent("rejected")
			s.logger.Warn("Event rejected",
				logger.IntField("index", i),
				logger.StringField("trace_id", ev.TraceID),
				logger.ErrorField(err))
		case admitted:
			resp.Accepted++
			s.metrics.RecordEvent("accepted")
		default:
			resp.Duplicates++
			s.metrics.RecordEvent("duplicate")
		}
	}
	s.metrics.RecordLatency("ingest", time.Since(start).Seconds())

	s.logger.Info("Batch ingested",
		logger.IntField("accepted", resp.Accepted),
		logger.IntField("duplicates", resp.Duplicates),
		logger.IntField("rejected", len(resp.Rejected)))
	return resp, nil
}

func (s *ingestService) admit(ctx context.Context, ev *dto.EventRequest) (bool, error) {
	ev.Asset = strings.TrimSpace(ev.Asset)
	if err := dto.Validate(ctx, ev); err != nil {
		return false, err
	}
	if !isJSONObject(ev.Payload) {
		return false, apperror.Validation("payload must be a JSON object")
	}

	traceID, err := uuid.Parse(ev.TraceID)
	if err != nil {
		return false, apperror.Validation("trace_id must be a valid UUID").WithError(err)
	}
	ingestedAt, err := time.Parse(time.RFC3339Nano, ev.IngestedAt)
	if err != nil {
		return false, apperror.Validation("ingested_at must be an RFC 3339 timestamp").WithError(err)
	}

	asset, err := s.assets.FindOrCreate(ctx, ev.Asset)
	if err != nil {
		return false, err
	}

	event := &entity.Event{
		TraceID:       traceID.String(),
		SchemaVersion: ev.SchemaVersion,
		Source:        ev.Source,
		AssetID:       asset.ID,
		Kind:          entity.EventKind(ev.Kind),
		IngestedAt:    ingestedAt.UTC(),
		Payload:       datatypes.JSON(ev.Payload),
		Tags:          pq.StringArray(ev.Tags),
	}
	created, err := s.eventRepo.CreateIfAbsent(ctx, event)
	if err != nil {
		return false, err
	}
	if !created {
		return false, nil
	}

	if err := s.dispatcher.DispatchNormalize(ctx, dispatch.NormalizeTask{TraceID: event.TraceID}); err != nil {
		// an unscheduled event must not block its own resubmission
		if delErr := s.eventRepo.DeleteByTraceID(ctx, event.TraceID); delErr != nil {
			s.logger.Error("Failed to release unscheduled event",
				logger.StringField("trace_id", event.TraceID),
				logger.ErrorField(delErr))
		}
		return false, apperror.Transient("normalization could not be scheduled, resubmit the event").WithError(err)
	}
	return true, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
