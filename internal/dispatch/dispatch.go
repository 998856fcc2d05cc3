// Package dispatch carries pipeline work items between intake, normalization
// and scoring. Tasks carry identifiers only; handlers reload state from the
// store, so a task may be delivered more than once.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang-bias-heatmap/pkg/common"
)

var (
	// ErrQueueFull is returned when an in-memory queue has no room left.
	ErrQueueFull = errors.New("dispatch queue is full")
	// ErrClosed is returned when dispatching to a closed dispatcher.
	ErrClosed = errors.New("dispatcher is closed")
)

// NormalizeTask asks the normalizer to derive an indicator from an admitted event.
type NormalizeTask struct {
	TraceID string `json:"trace_id"`
}

// ScoreTask asks the scoring engine to recompute an asset.
type ScoreTask struct {
	AssetID uint   `json:"asset_id"`
	Reason  string `json:"reason,omitempty"`
}

// Reasons attached to score tasks.
const (
	ReasonIndicator = "indicator"
	ReasonManual    = "manual"
	ReasonCron      = "cron"
)

// Dispatcher schedules tasks for asynchronous execution.
type Dispatcher interface {
	DispatchNormalize(ctx context.Context, task NormalizeTask) error
	DispatchScore(ctx context.Context, task ScoreTask) error
}

// DecodeNormalizeTask reads a normalize task from a stream entry.
func DecodeNormalizeTask(values map[string]interface{}) (NormalizeTask, error) {
	var task NormalizeTask
	if err := decodePayload(values, &task); err != nil {
		return task, err
	}
	if task.TraceID == "" {
		return task, fmt.Errorf("normalize task has no trace id")
	}
	return task, nil
}

// DecodeScoreTask reads a score task from a stream entry.
func DecodeScoreTask(values map[string]interface{}) (ScoreTask, error) {
	var task ScoreTask
	if err := decodePayload(values, &task); err != nil {
		return task, err
	}
	if task.AssetID == 0 {
		return task, fmt.Errorf("score task has no asset id")
	}
	return task, nil
}

func decodePayload(values map[string]interface{}, v interface{}) error {
	raw, ok := values[common.RedisStreamPayloadField]
	if !ok {
		return fmt.Errorf("stream entry has no %q field", common.RedisStreamPayloadField)
	}

	var data []byte
	switch p := raw.(type) {
	case string:
		data = []byte(p)
	case []byte:
		data = p
	default:
		return fmt.Errorf("unexpected payload type %T", raw)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}
	return nil
}
