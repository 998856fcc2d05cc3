package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/logger"
	"golang-bias-heatmap/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// RedisDispatcher publishes tasks to Redis streams consumed by the worker.
type RedisDispatcher struct {
	rdb     *redis.Client
	maxLen  int64
	logger  *logger.Logger
	metrics *metrics.Recorder
}

// NewRedisDispatcher creates a dispatcher writing to rdb. When maxLen is
// positive a stream holding maxLen entries refuses new tasks with ErrQueueFull.
// Streams are never trimmed; the worker deletes entries once acknowledged.
func NewRedisDispatcher(rdb *redis.Client, maxLen int64, log *logger.Logger, rec *metrics.Recorder) *RedisDispatcher {
	return &RedisDispatcher{
		rdb:     rdb,
		maxLen:  maxLen,
		logger:  log.Named("dispatcher"),
		metrics: rec,
	}
}

// DispatchNormalize implements Dispatcher.
func (d *RedisDispatcher) DispatchNormalize(ctx context.Context, task NormalizeTask) error {
	return d.publish(ctx, common.RedisStreamEventNormalize, task)
}

// DispatchScore implements Dispatcher.
func (d *RedisDispatcher) DispatchScore(ctx context.Context, task ScoreTask) error {
	return d.publish(ctx, common.RedisStreamScoreRecompute, task)
}

func (d *RedisDispatcher) publish(ctx context.Context, stream string, task interface{}) error {
	payload, err := json.Marshal(task)
	if err != nil {
		d.metrics.RecordDispatch(stream, "error")
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if d.maxLen > 0 {
		backlog, err := d.rdb.XLen(ctx, stream).Result()
		if err != nil {
			d.metrics.RecordDispatch(stream, "error")
			return fmt.Errorf("failed to read backlog of %s: %w", stream, err)
		}
		// the check and the add are not atomic, so concurrent producers may overshoot slightly
		if backlog >= d.maxLen {
			d.metrics.RecordDispatch(stream, "full")
			d.logger.Warn("Stream backlog full", logger.StringField("stream", stream), logger.Field("backlog", backlog))
			return fmt.Errorf("%s: %w", stream, ErrQueueFull)
		}
	}

	id, err := d.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{common.RedisStreamPayloadField: payload},
	}).Result()
	if err != nil {
		d.metrics.RecordDispatch(stream, "error")
		d.logger.Error("Failed to enqueue task", logger.StringField("stream", stream), logger.ErrorField(err))
		return fmt.Errorf("failed to enqueue task on %s: %w", stream, err)
	}

	d.metrics.RecordDispatch(stream, "ok")
	d.logger.Debug("Task enqueued", logger.StringField("stream", stream), logger.StringField("message_id", id))
	return nil
}

var _ Dispatcher = (*RedisDispatcher)(nil)
