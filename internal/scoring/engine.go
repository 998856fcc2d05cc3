package scoring

import (
	"context"
	"fmt"
	"time"

	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/utils"
)

// SnapshotScope selects which indicators define a score's timestamp.
type SnapshotScope string

const (
	// SnapshotScopeAsset stamps a score with the newest indicator of the scored asset.
	SnapshotScopeAsset SnapshotScope = "asset"
	// SnapshotScopeGlobal stamps a score with the newest indicator of any asset.
	SnapshotScopeGlobal SnapshotScope = "global"
)

// ParseSnapshotScope maps a config value to a scope. Empty means asset.
func ParseSnapshotScope(s string) (SnapshotScope, error) {
	switch SnapshotScope(s) {
	case "", SnapshotScopeAsset:
		return SnapshotScopeAsset, nil
	case SnapshotScopeGlobal:
		return SnapshotScopeGlobal, nil
	default:
		return "", apperror.Configuration("unknown snapshot scope %q", s)
	}
}

// IndicatorReader is the read side of the indicator store used by the engine.
type IndicatorReader interface {
	Latest(ctx context.Context, assetID uint, key string) (*entity.Indicator, error)
	LatestTimestamp(ctx context.Context, assetID *uint) (*time.Time, error)
}

// Engine computes score snapshots from the latest indicators of an asset.
type Engine struct {
	reader IndicatorReader
	bound  int
	scope  SnapshotScope
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClampBound overrides the symmetric clamp bound. Non-positive values are ignored.
func WithClampBound(bound int) Option {
	return func(e *Engine) {
		if bound > 0 {
			e.bound = bound
		}
	}
}

// WithSnapshotScope sets the snapshot timestamp scope.
func WithSnapshotScope(scope SnapshotScope) Option {
	return func(e *Engine) {
		e.scope = scope
	}
}

// WithClock replaces the wall clock used when no indicator exists.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine reading from reader.
func NewEngine(reader IndicatorReader, opts ...Option) *Engine {
	e := &Engine{
		reader: reader,
		bound:  common.DefaultClampBound,
		scope:  SnapshotScopeAsset,
		now:    utils.TimeNowUTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bound returns the clamp bound in use.
func (e *Engine) Bound() int {
	return e.bound
}

// Compute builds an unsaved score for assetID under weights.
func (e *Engine) Compute(ctx context.Context, assetID uint, weights *Weights) (*entity.Score, error) {
	if weights == nil {
		return nil, apperror.Configuration("no weight configuration loaded")
	}

	values := make(map[string]float64)
	for _, key := range weights.Keys() {
		indicator, err := e.reader.Latest(ctx, assetID, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load indicator %s for asset %d: %w", key, assetID, err)
		}
		if indicator != nil {
			values[key] = indicator.Value
		}
	}

	raw, breakdown := Aggregate(weights, values)

	ts, err := e.snapshotTime(ctx, assetID)
	if err != nil {
		return nil, err
	}

	return &entity.Score{
		AssetID:   assetID,
		Ts:        ts,
		Total:     Clamp(raw, e.bound),
		Breakdown: breakdown,
		Version:   weights.Version,
	}, nil
}

func (e *Engine) snapshotTime(ctx context.Context, assetID uint) (time.Time, error) {
	var scope *uint
	if e.scope != SnapshotScopeGlobal {
		scope = &assetID
	}
	latest, err := e.reader.LatestTimestamp(ctx, scope)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to resolve snapshot timestamp: %w", err)
	}
	if latest == nil {
		return e.now().UTC(), nil
	}
	return latest.UTC(), nil
}

// Aggregate applies weights to values. It returns the unclamped raw total and a
// breakdown of truncated component contributions. Missing keys are skipped and
// pillars left without components are omitted.
func Aggregate(weights *Weights, values map[string]float64) (float64, entity.Breakdown) {
	var total float64
	breakdown := entity.Breakdown{}
	for _, pillar := range weights.Pillars {
		var pillarTotal float64
		var components []entity.Component
		for _, cw := range pillar.Components {
			value, ok := values[cw.Key]
			if !ok {
				continue
			}
			raw := value * cw.Weight
			components = append(components, entity.Component{Key: cw.Key, Score: int(raw)})
			pillarTotal += raw
		}
		if len(components) == 0 {
			continue
		}
		breakdown = append(breakdown, entity.PillarBreakdown{Name: pillar.Name, Components: components})
		total += pillarTotal
	}
	return total, breakdown
}
