package service

import (
	"context"
	"time"

	"golang-bias-heatmap/internal/dispatch"
	"golang-bias-heatmap/internal/entity"

	"github.com/stretchr/testify/mock"
)

type mockAssetRepo struct{ mock.Mock }

func (m *mockAssetRepo) FindBySymbol(ctx context.Context, symbol string) (*entity.Asset, error) {
	args := m.Called(ctx, symbol)
	if a := args.Get(0); a != nil {
		return a.(*entity.Asset), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssetRepo) FirstOrCreate(ctx context.Context, symbol string) (*entity.Asset, error) {
	args := m.Called(ctx, symbol)
	if a := args.Get(0); a != nil {
		return a.(*entity.Asset), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssetRepo) FindAll(ctx context.Context) ([]entity.Asset, error) {
	args := m.Called(ctx)
	if a := args.Get(0); a != nil {
		return a.([]entity.Asset), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) CreateIfAbsent(ctx context.Context, event *entity.Event) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventRepo) FindByTraceID(ctx context.Context, traceID string) (*entity.Event, error) {
	args := m.Called(ctx, traceID)
	if e := args.Get(0); e != nil {
		return e.(*entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) DeleteByTraceID(ctx context.Context, traceID string) error {
	return m.Called(ctx, traceID).Error(0)
}

type mockScoreRepo struct{ mock.Mock }

func (m *mockScoreRepo) Create(ctx context.Context, score *entity.Score) error {
	return m.Called(ctx, score).Error(0)
}

func (m *mockScoreRepo) Latest(ctx context.Context, assetID uint) (*entity.Score, error) {
	args := m.Called(ctx, assetID)
	if s := args.Get(0); s != nil {
		return s.(*entity.Score), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreRepo) History(ctx context.Context, assetID uint, limit int) ([]entity.Score, error) {
	args := m.Called(ctx, assetID, limit)
	if s := args.Get(0); s != nil {
		return s.([]entity.Score), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockIndicatorRepo struct{ mock.Mock }

func (m *mockIndicatorRepo) Upsert(ctx context.Context, indicator *entity.Indicator) error {
	return m.Called(ctx, indicator).Error(0)
}

func (m *mockIndicatorRepo) Latest(ctx context.Context, assetID uint, key string) (*entity.Indicator, error) {
	args := m.Called(ctx, assetID, key)
	if i := args.Get(0); i != nil {
		return i.(*entity.Indicator), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIndicatorRepo) LatestTimestamp(ctx context.Context, assetID *uint) (*time.Time, error) {
	args := m.Called(ctx, assetID)
	if t := args.Get(0); t != nil {
		return t.(*time.Time), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIndicatorRepo) FindRange(ctx context.Context, assetID uint, from, to *time.Time) ([]entity.Indicator, error) {
	args := m.Called(ctx, assetID, from, to)
	if i := args.Get(0); i != nil {
		return i.([]entity.Indicator), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) DispatchNormalize(ctx context.Context, task dispatch.NormalizeTask) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockDispatcher) DispatchScore(ctx context.Context, task dispatch.ScoreTask) error {
	return m.Called(ctx, task).Error(0)
}
