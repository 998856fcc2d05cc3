package consumer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-bias-heatmap/internal/worker/config"
	"golang-bias-heatmap/internal/worker/service"
	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/logger"
	"golang-bias-heatmap/pkg/utils"

	"github.com/robfig/cron/v3"
)

const defaultTickerInterval = 10 * time.Second

// RedisConsumer manages the consumption of pipeline tasks from Redis streams.
type RedisConsumer struct {
	cfg              *config.Config
	normalizeService service.NormalizeService
	scoringService   service.ScoringService
	logger           *logger.Logger
	cron             *cron.Cron
	stopChan         chan struct{}
	stopOnce         sync.Once
	wg               sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(
	cfg *config.Config,
	normalizeService service.NormalizeService,
	scoringService service.ScoringService,
	log *logger.Logger,
) *RedisConsumer {
	return &RedisConsumer{
		cfg:              cfg,
		normalizeService: normalizeService,
		scoringService:   scoringService,
		logger:           log.Named("consumer"),
		cron:             cron.New(),
		stopChan:         make(chan struct{}),
	}
}

// Start begins the consumer's task processing loops.
func (c *RedisConsumer) Start(ctx context.Context) error {
	c.logger.Info("Redis consumer started", logger.IntField("concurrency", c.cfg.Worker.Concurrency))

	workers := c.cfg.Worker.Concurrency
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		name := c.consumerName(i)
		c.RegisterStreamHandler(ctx, func(ctx context.Context) {
			c.normalizeService.ProcessTask(ctx, name)
		}, common.RedisStreamEventNormalize, c.cfg.Worker.TaskTimeout)
		c.RegisterStreamHandler(ctx, func(ctx context.Context) {
			c.scoringService.ProcessTask(ctx, name)
		}, common.RedisStreamScoreRecompute, c.cfg.Worker.TaskTimeout)
	}

	c.RegisterTickerHandler(ctx, c.normalizeService.ProcessRetries, c.cfg.Worker.RetryInterval, c.cfg.Worker.TaskTimeout, common.RedisStreamEventNormalize+"-retry")
	c.RegisterTickerHandler(ctx, c.scoringService.ProcessRetries, c.cfg.Worker.RetryInterval, c.cfg.Worker.TaskTimeout, common.RedisStreamScoreRecompute+"-retry")

	if spec := c.cfg.Worker.RecomputeCron; spec != "" {
		if err := c.RegisterCronHandler(ctx, spec, c.recomputeAll, "recompute-all"); err != nil {
			return err
		}
	}
	return nil
}

// consumerName names the i-th reading loop inside the consumer group.
func (c *RedisConsumer) consumerName(i int) string {
	base := c.cfg.Worker.ConsumerName
	if base == "" {
		base = common.RedisStreamConsumer
	}
	return fmt.Sprintf("%s-%d", base, i)
}

func (c *RedisConsumer) recomputeAll(ctx context.Context) {
	if _, err := c.scoringService.RecomputeAll(ctx); err != nil {
		c.logger.Error("Scheduled recompute failed", logger.ErrorField(err))
	}
}

// RegisterStreamHandler runs fn in a loop until the consumer stops. Each call gets its own timeout.
func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Stream handler stopping due to context cancellation", logger.Field("stream", streamName))
				return
			case <-c.stopChan:
				c.logger.Info("Stream handler stopping", logger.Field("stream", streamName))
				return
			default:
				c.runWithTimeout(ctx, fn, timeout)
			}
		}
	})
}

// RegisterTickerHandler runs fn on every tick of interval until the consumer stops.
func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	if interval <= 0 {
		interval = defaultTickerInterval
	}
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.runWithTimeout(ctx, fn, timeout)
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// RegisterCronHandler runs fn on the given cron schedule (standard five-field syntax).
func (c *RedisConsumer) RegisterCronHandler(ctx context.Context, spec string, fn func(ctx context.Context), name string) error {
	if _, err := c.cron.AddFunc(spec, func() {
		c.logger.Info("Running cron handler", logger.Field("name", name))
		c.runWithTimeout(ctx, fn, c.cfg.Worker.TaskTimeout)
	}); err != nil {
		return err
	}
	c.logger.Info("Registering cron handler", logger.Field("name", name), logger.Field("spec", spec))
	c.cron.Start()
	return nil
}

func (c *RedisConsumer) runWithTimeout(ctx context.Context, fn func(ctx context.Context), timeout time.Duration) {
	if timeout <= 0 {
		fn(ctx)
		return
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	fn(ctxTimeout)
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
		<-c.cron.Stop().Done()
		c.wg.Wait()
		c.logger.Info("Redis consumer stopped")
	})
}
