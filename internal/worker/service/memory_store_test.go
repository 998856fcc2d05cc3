package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/pkg/apperror"
)

// memoryStore implements the repositories over maps so the pipeline can run
// without Postgres.
type memoryStore struct {
	mu         sync.Mutex
	assets     []entity.Asset
	events     []entity.Event
	eventSeq   uint
	indicators []entity.Indicator
	scores     []entity.Score
}

func newMemoryStore() *memoryStore { return &memoryStore{} }

type memoryAssets struct{ *memoryStore }
type memoryEvents struct{ *memoryStore }
type memoryIndicators struct{ *memoryStore }
type memoryScores struct{ *memoryStore }

func (s memoryAssets) FindBySymbol(_ context.Context, symbol string) (*entity.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assets {
		if a.Symbol == symbol {
			a := a
			return &a, nil
		}
	}
	return nil, apperror.NotFound("asset %s not found", symbol)
}

func (s memoryAssets) FirstOrCreate(ctx context.Context, symbol string) (*entity.Asset, error) {
	if a, err := s.FindBySymbol(ctx, symbol); err == nil {
		return a, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := entity.Asset{ID: uint(len(s.assets) + 1), Symbol: symbol, Kind: entity.AssetKindUnknown}
	s.assets = append(s.assets, a)
	return &a, nil
}

func (s memoryAssets) FindAll(context.Context) ([]entity.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Asset(nil), s.assets...), nil
}

func (s memoryEvents) CreateIfAbsent(_ context.Context, event *entity.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.TraceID == event.TraceID {
			return false, nil
		}
	}
	s.eventSeq++
	event.ID = s.eventSeq
	s.events = append(s.events, *event)
	return true, nil
}

func (s memoryEvents) DeleteByTraceID(_ context.Context, traceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.TraceID == traceID {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s memoryEvents) FindByTraceID(_ context.Context, traceID string) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.TraceID == traceID {
			e := e
			return &e, nil
		}
	}
	return nil, apperror.NotFound("event %s not found", traceID)
}

func (s memoryIndicators) Upsert(_ context.Context, ind *entity.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.indicators {
		if existing.AssetID == ind.AssetID && existing.Key == ind.Key && existing.Ts.Equal(ind.Ts) {
			s.indicators[i].Value = ind.Value
			s.indicators[i].Meta = ind.Meta
			ind.ID = existing.ID
			return nil
		}
	}
	ind.ID = uint(len(s.indicators) + 1)
	s.indicators = append(s.indicators, *ind)
	return nil
}

func (s memoryIndicators) Latest(_ context.Context, assetID uint, key string) (*entity.Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *entity.Indicator
	for i := range s.indicators {
		ind := s.indicators[i]
		if ind.AssetID == assetID && ind.Key == key && (latest == nil || ind.Ts.After(latest.Ts)) {
			latest = &ind
		}
	}
	return latest, nil
}

func (s memoryIndicators) LatestTimestamp(_ context.Context, assetID *uint) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *time.Time
	for _, ind := range s.indicators {
		if assetID != nil && ind.AssetID != *assetID {
			continue
		}
		if latest == nil || ind.Ts.After(*latest) {
			ts := ind.Ts
			latest = &ts
		}
	}
	return latest, nil
}

func (s memoryIndicators) FindRange(_ context.Context, assetID uint, from, to *time.Time) ([]entity.Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Indicator
	for _, ind := range s.indicators {
		if ind.AssetID != assetID || (from != nil && ind.Ts.Before(*from)) || (to != nil && ind.Ts.After(*to)) {
			continue
		}
		out = append(out, ind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ts.Before(out[j].Ts) })
	return out, nil
}

func (s memoryScores) Create(_ context.Context, score *entity.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	score.ID = uint(len(s.scores) + 1)
	s.scores = append(s.scores, *score)
	return nil
}

func (s memoryScores) Latest(_ context.Context, assetID uint) (*entity.Score, error) {
	history, _ := s.History(context.Background(), assetID, 1)
	if len(history) == 0 {
		return nil, apperror.NotFound("score for asset %d not found", assetID)
	}
	return &history[0], nil
}

func (s memoryScores) History(_ context.Context, assetID uint, limit int) ([]entity.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Score
	for _, sc := range s.scores {
		if sc.AssetID == assetID {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Ts.Equal(out[j].Ts) {
			return out[i].Ts.After(out[j].Ts)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
