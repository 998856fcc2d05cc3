package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/internal/dispatch"
	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/logger"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const traceA = "0b7e1c9a-3f2d-4c55-9a8e-5d4f3b2a1c00"

func validEvent(traceID string) dto.EventRequest {
	return dto.EventRequest{
		SchemaVersion: "2025.08.1",
		Source:        "test",
		Asset:         "XAUUSD",
		Kind:          "indicator",
		IngestedAt:    "2024-01-01T00:00:00Z",
		Payload:       json.RawMessage(`{"key":"macro","value":5}`),
		TraceID:       traceID,
	}
}

type ingestFixture struct {
	assets     *mockAssetRepo
	events     *mockEventRepo
	dispatcher *mockDispatcher
	svc        IngestService
}

func newIngestFixture(maxBatch int) *ingestFixture {
	f := &ingestFixture{
		assets:     new(mockAssetRepo),
		events:     new(mockEventRepo),
		dispatcher: new(mockDispatcher),
	}
	lookup := NewAssetLookup(f.assets, cache.New(cache.NoExpiration, 0))
	f.svc = NewIngestService(lookup, f.events, f.dispatcher, maxBatch, logger.NewNop(), nil)
	return f
}

func TestIngest_AdmitsAndSchedulesNormalization(t *testing.T) {
	f := newIngestFixture(1000)
	ctx := context.Background()
	f.assets.On("FirstOrCreate", ctx, "XAUUSD").Return(&entity.Asset{ID: 1, Symbol: "XAUUSD", Kind: entity.AssetKindUnknown}, nil).Once()
	f.events.On("CreateIfAbsent", ctx, mock.MatchedBy(func(e *entity.Event) bool {
		return e.TraceID == traceA && e.AssetID == 1 && e.Kind == entity.EventKindIndicator &&
			e.IngestedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return(true, nil).Once()
	f.dispatcher.On("DispatchNormalize", ctx, dispatch.NormalizeTask{TraceID: traceA}).Return(nil).Once()

	resp, err := f.svc.Ingest(ctx, &dto.IngestRequest{Events: []dto.EventRequest{validEvent(traceA)}})

	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, 0, resp.Duplicates)
	assert.Empty(t, resp.Rejected)
	f.assets.AssertExpectations(t)
	f.events.AssertExpectations(t)
	f.dispatcher.AssertExpectations(t)
}

func TestIngest_DuplicateTraceIDSchedulesNothing(t *testing.T) {
	f := newIngestFixture(1000)
	ctx := context.Background()
	f.assets.On("FirstOrCreate", ctx, "XAUUSD").Return(&entity.Asset{ID: 1, Symbol: "XAUUSD"}, nil).Once()
	f.events.On("CreateIfAbsent", ctx, mock.Anything).Return(true, nil).Once()
	f.events.On("CreateIfAbsent", ctx, mock.Anything).Return(false, nil).Once()
	f.dispatcher.On("DispatchNormalize", ctx, mock.Anything).Return(nil).Once()

	ev := validEvent(traceA)
	resp, err := f.svc.Ingest(ctx, &dto.IngestRequest{Events: []dto.EventRequest{ev, ev}})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, 1, resp.Duplicates)
	f.dispatcher.AssertNumberOfCalls(t, "DispatchNormalize", 1)
	// second sighting of the symbol is served from the memo
	f.assets.AssertNumberOfCalls(t, "FirstOrCreate", 1)
}

func TestIngest_CanonicalisesTraceID(t *testing.T) {
	f := newIngestFixture(1000)
	ctx := context.Background()
	upper := "0B7E1C9A-3F2D-4C55-9A8E-5D4F3B2A1C00"
	f.assets.On("FirstOrCreate", ctx, "XAUUSD").Return(&entity.Asset{ID: 1, Symbol: "XAUUSD"}, nil)
	f.events.On("CreateIfAbsent", ctx, mock.MatchedBy(func(e *entity.Event) bool { return e.TraceID == traceA })).Return(true, nil)
	f.dispatcher.On("DispatchNormalize", ctx, dispatch.NormalizeTask{TraceID: traceA}).Return(nil)

	resp, err := f.svc.Ingest(ctx, &dto.IngestRequest{Events: []dto.EventRequest{validEvent(upper)}})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Accepted)
}

func TestIngest_RejectsInvalidEventsIndividually(t *testing.T) {
	f := newIngestFixture(1000)
	ctx := context.Background()
	f.assets.On("FirstOrCreate", ctx, "XAUUSD").Return(&entity.Asset{ID: 1, Symbol: "XAUUSD"}, nil)
	f.events.On("CreateIfAbsent", ctx, mock.Anything).Return(true, nil)
	f.dispatcher.On("DispatchNormalize", ctx, mock.Anything).Return(nil)

	badKind := validEvent("6f1d7a52-8c1e-4e0b-8a55-2f7b7c7e9d01")
	badKind.Kind = "rumour"
	badPayload := validEvent("6f1d7a52-8c1e-4e0b-8a55-2f7b7c7e9d02")
	badPayload.Payload = json.RawMessage(`[1,2,3]`)
	badTrace := validEvent("not-a-uuid")
	badTime := validEvent("6f1d7a52-8c1e-4e0b-8a55-2f7b7c7e9d03")
	badTime.IngestedAt = "yesterday"

	resp, err := f.svc.Ingest(ctx, &dto.IngestRequest{Events: []dto.EventRequest{
		badKind, validEvent(traceA), badPayload, badTrace, badTime,
	}})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Accepted)
	require.Len(t, resp.Rejected, 4)
	assert.Equal(t, []int{0, 2, 3, 4}, []int{resp.Rejected[0].Index, resp.Rejected[1].Index, resp.Rejected[2].Index, resp.Rejected[3].Index})
	assert.Contains(t, resp.Rejected[0].Error, "Kind")
	assert.Contains(t, resp.Rejected[1].Error, "JSON object")
	f.events.AssertNumberOfCalls(t, "CreateIfAbsent", 1)
}

func TestIngest_BatchTooLarge(t *testing.T) {
	f := newIngestFixture(2)
	events := make([]dto.EventRequest, 3)
	for i := range events {
		events[i] = validEvent(fmt.Sprintf("6f1d7a52-8c1e-4e0b-8a55-2f7b7c7e9d%02d", i))
	}

	_, err := f.svc.Ingest(context.Background(), &dto.IngestRequest{Events: events})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
	f.events.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestIngest_FailuresDoNotAbortBatch(t *testing.T) {
	f := newIngestFixture(1000)
	ctx := context.Background()
	second := "6f1d7a52-8c1e-4e0b-8a55-2f7b7c7e9d10"
	f.assets.On("FirstOrCreate", ctx, "XAUUSD").Return(&entity.Asset{ID: 1, Symbol: "XAUUSD"}, nil)
	f.events.On("CreateIfAbsent", ctx, mock.MatchedBy(func(e *entity.Event) bool { return e.TraceID == traceA })).Return(false, errors.New("db down"))
	f.events.On("CreateIfAbsent", ctx, mock.MatchedBy(func(e *entity.Event) bool { return e.TraceID == second })).Return(true, nil)
	f.dispatcher.On("DispatchNormalize", ctx, dispatch.NormalizeTask{TraceID: second}).Return(errors.New("queue down"))
	f.events.On("DeleteByTraceID", ctx, second).Return(nil)

	resp, err := f.svc.Ingest(ctx, &dto.IngestRequest{Events: []dto.EventRequest{validEvent(traceA), validEvent(second)}})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Accepted)
	require.Len(t, resp.Rejected, 2)
	assert.Equal(t, "internal error", resp.Rejected[0].Error)
	assert.Contains(t, resp.Rejected[1].Error, "could not be scheduled")
	assert.NotContains(t, resp.Rejected[1].Error, "queue down")
}

func TestIngest_DispatchFailureReleasesEvent(t *testing.T) {
	f := newIngestFixture(1000)
	ctx := context.Background()
	f.assets.On("FirstOrCreate", ctx, "XAUUSD").Return(&entity.Asset{ID: 1, Symbol: "XAUUSD"}, nil)
	f.events.On("CreateIfAbsent", ctx, mock.Anything).Return(true, nil)
	f.dispatcher.On("DispatchNormalize", ctx, dispatch.NormalizeTask{TraceID: traceA}).Return(errors.New("queue full")).Once()
	f.events.On("DeleteByTraceID", ctx, traceA).Return(nil).Once()

	resp, err := f.svc.Ingest(ctx, &dto.IngestRequest{Events: []dto.EventRequest{validEvent(traceA)}})

	require.NoError(t, err)
	assert.Zero(t, resp.Accepted)
	require.Len(t, resp.Rejected, 1)
	f.events.AssertCalled(t, "DeleteByTraceID", ctx, traceA)

	// the resubmission is admitted rather than counted as a duplicate
	f.dispatcher.On("DispatchNormalize", ctx, dispatch.NormalizeTask{TraceID: traceA}).Return(nil).Once()

	resp, err = f.svc.Ingest(ctx, &dto.IngestRequest{Events: []dto.EventRequest{validEvent(traceA)}})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Accepted)
	assert.Zero(t, resp.Duplicates)
}

func TestIngest_RejectsBlankAsset(t *testing.T) {
	f := newIngestFixture(1000)
	ev := validEvent(traceA)
	ev.Asset = "   "

	resp, err := f.svc.Ingest(context.Background(), &dto.IngestRequest{Events: []dto.EventRequest{ev}})

	require.NoError(t, err)
	require.Len(t, resp.Rejected, 1)
	assert.Contains(t, resp.Rejected[0].Error, "Asset is required")
	f.assets.AssertNotCalled(t, "FirstOrCreate", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestIngest_TrimsAssetSymbol(t *testing.T) {
	f := newIngestFixture(1000)
	ctx := context.Background()
	f.assets.On("FirstOrCreate", ctx, "XAUUSD").Return(&entity.Asset{ID: 1, Symbol: "XAUUSD"}, nil).Once()
	f.events.On("CreateIfAbsent", ctx, mock.Anything).Return(true, nil)
	f.dispatcher.On("DispatchNormalize", ctx, mock.Anything).Return(nil)
	ev := validEvent(traceA)
	ev.Asset = "  XAUUSD "

	resp, err := f.svc.Ingest(ctx, &dto.IngestRequest{Events: []dto.EventRequest{ev}})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Accepted)
	f.assets.AssertExpectations(t)
}
