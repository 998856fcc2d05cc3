package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/logger"
	"golang-bias-heatmap/pkg/metrics"
	"golang-bias-heatmap/pkg/telegram"
	"golang-bias-heatmap/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// StreamConfig controls how a stream is read and retried.
type StreamConfig struct {
	Consumer        string
	ReadBlock       time.Duration
	MaxIdleDuration time.Duration
	MaxRetry        int
}

// StreamTaskService is driven by the consumer: ProcessTask reads new entries as
// the named group consumer, ProcessRetries reclaims entries left pending by
// failed attempts.
type StreamTaskService interface {
	ProcessTask(ctx context.Context, consumer string)
	ProcessRetries(ctx context.Context)
}

// handleFunc decodes and executes one stream entry. It returns a short
// description of the task for logs and alerts.
type handleFunc func(ctx context.Context, values map[string]interface{}) (string, error)

// streamProcessor holds the at-least-once plumbing shared by the task services.
// An entry is acked and deleted only after it succeeded, failed permanently or
// exhausted its retries.
type streamProcessor struct {
	stream   string
	cfg      StreamConfig
	rdb      *redis.Client
	notifier telegram.Notifier
	log      *logger.Logger
	metrics  *metrics.Recorder
	handler  handleFunc
}

func newStreamProcessor(
	stream string,
	cfg StreamConfig,
	rdb *redis.Client,
	notifier telegram.Notifier,
	log *logger.Logger,
	rec *metrics.Recorder,
	handle handleFunc,
) *streamProcessor {
	if cfg.Consumer == "" {
		cfg.Consumer = common.RedisStreamConsumer
	}
	if cfg.ReadBlock <= 0 {
		cfg.ReadBlock = 2 * time.Second
	}
	if notifier == nil {
		notifier = telegram.NopNotifier{}
	}
	return &streamProcessor{
		stream:   stream,
		cfg:      cfg,
		rdb:      rdb,
		notifier: notifier,
		log:      log,
		metrics:  rec,
		handler:  handle,
	}
}

// ProcessTask reads and handles a single new entry. An empty consumer falls
// back to the configured one.
func (p *streamProcessor) ProcessTask(ctx context.Context, consumer string) {
	if consumer == "" {
		consumer = p.cfg.Consumer
	}
	streams, err := p.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: consumer,
		Streams:  []string{p.stream, ">"},
		Count:    1,
		Block:    p.cfg.ReadBlock,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		p.log.Error("Failed to read from stream", logger.StringField("stream", p.stream), logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	p.run(ctx, streams[0].Messages[0], false)
}

// ProcessRetries claims one entry idle for longer than MaxIdleDuration and
// retries it, or dead-letters it once MaxRetry deliveries have been made.
func (p *streamProcessor) ProcessRetries(ctx context.Context) {
	msgs, _, err := p.rdb.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   p.stream,
		Group:    common.RedisStreamGroup,
		Consumer: p.cfg.Consumer + "-retry",
		MinIdle:  p.cfg.MaxIdleDuration,
		Start:    "0",
		Count:    1,
	}).Result()
	if err != nil {
		p.log.Error("Failed to claim pending task", logger.StringField("stream", p.stream), logger.ErrorField(err))
		return
	}

	if len(msgs) == 0 {
		p.log.Debug("Retry no pending messages found", logger.StringField("stream", p.stream))
		return
	}

	msg := msgs[0]
	pendingInfo, err := p.rdb.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: p.stream,
		Group:  common.RedisStreamGroup,
		Start:  msg.ID,
		End:    msg.ID,
		Count:  1,
	}).Result()
	if err != nil {
		p.log.Error("Failed to get pending info", logger.StringField("stream", p.stream), logger.ErrorField(err))
		return
	}
	if len(pendingInfo) == 0 {
		p.log.Warn("Pending message not found after claim",
			logger.StringField("stream", p.stream),
			logger.StringField("message_id", msg.ID))
		return
	}

	if pendingInfo[0].RetryCount > int64(p.cfg.MaxRetry) {
		p.deadLetter(ctx, msg, int(pendingInfo[0].RetryCount))
		return
	}

	p.run(ctx, msg, true)
}

func (p *streamProcessor) run(ctx context.Context, msg redis.XMessage, retry bool) {
	start := time.Now()
	desc, err := p.handler(ctx, msg.Values)
	p.metrics.RecordLatency(p.stream, time.Since(start).Seconds())

	switch {
	case err == nil:
		p.metrics.RecordTask(p.stream, "ok")
		p.log.Debug("Task processed",
			logger.StringField("stream", p.stream),
			logger.StringField("message_id", msg.ID),
			logger.StringField("task", desc),
			logger.Field("retry", retry))
	case !apperror.IsRetryable(err):
		p.metrics.RecordTask(p.stream, "dropped")
		p.log.Error("Task failed permanently",
			logger.StringField("stream", p.stream),
			logger.StringField("message_id", msg.ID),
			logger.StringField("task", desc),
			logger.ErrorField(err))
	default:
		p.metrics.RecordTask(p.stream, "failed")
		p.log.Error("Task failed, leaving it pending for retry",
			logger.StringField("stream", p.stream),
			logger.StringField("message_id", msg.ID),
			logger.StringField("task", desc),
			logger.ErrorField(err))
		return
	}

	if err := p.AckNDel(ctx, msg.ID); err != nil {
		p.log.Error("Failed to acknowledge and delete task", logger.StringField("message_id", msg.ID), logger.ErrorField(err))
	}
}

func (p *streamProcessor) deadLetter(ctx context.Context, msg redis.XMessage, retryCount int) {
	p.metrics.RecordTask(p.stream, "dead_letter")
	p.log.Error("Pending message retry count exceeded",
		logger.StringField("stream", p.stream),
		logger.StringField("message_id", msg.ID),
		logger.Field("values", msg.Values),
		logger.IntField("retry_count", retryCount),
		logger.IntField("max_retry", p.cfg.MaxRetry))

	alert := telegram.FormatErrorAlertMessage(
		utils.TimeNowUTC(),
		"Retry count exceeded",
		fmt.Sprintf("Task on %s was dropped after %d deliveries", p.stream, retryCount),
		fmt.Sprintf("%v", msg.Values),
	)
	if err := p.notifier.SendMessage(alert); err != nil {
		p.log.Error("Failed to send telegram message retry exceeded", logger.ErrorField(err))
	}

	if err := p.AckNDel(ctx, msg.ID); err != nil {
		p.log.Error("Failed to acknowledge and delete task", logger.StringField("message_id", msg.ID), logger.ErrorField(err))
	}
}

// AckNDel acknowledges the entry for the group and removes it from the stream.
func (p *streamProcessor) AckNDel(ctx context.Context, messageID string) error {
	if err := p.rdb.XAck(ctx, p.stream, common.RedisStreamGroup, messageID).Err(); err != nil {
		return fmt.Errorf("failed to ack %s: %w", messageID, err)
	}
	if err := p.rdb.XDel(ctx, p.stream, messageID).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", messageID, err)
	}
	return nil
}
