package consumer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang-bias-heatmap/internal/dispatch"
	"golang-bias-heatmap/internal/entity"
	"golang-bias-heatmap/internal/worker/config"
	"golang-bias-heatmap/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	tasks     atomic.Int64
	retries   atomic.Int64
	recompute atomic.Int64
	consumers sync.Map
}

func (s *countingService) ProcessTask(ctx context.Context, consumer string) {
	s.tasks.Add(1)
	s.consumers.Store(consumer, true)
	select {
	case <-ctx.Done():
	case <-time.After(time.Millisecond):
	}
}

func (s *countingService) ProcessRetries(context.Context) { s.retries.Add(1) }

func (s *countingService) Execute(context.Context, dispatch.NormalizeTask) (*entity.Indicator, error) {
	return nil, nil
}

type countingScoring struct {
	countingService
}

func (s *countingScoring) Execute(context.Context, dispatch.ScoreTask) (*entity.Score, error) {
	return nil, nil
}

func (s *countingScoring) RecomputeAll(context.Context) (int, error) {
	s.recompute.Add(1)
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{Worker: config.Worker{
		Concurrency:   2,
		TaskTimeout:   time.Second,
		RetryInterval: 10 * time.Millisecond,
	}}
}

func TestRedisConsumer_RunsHandlersUntilStopped(t *testing.T) {
	normalize := &countingService{}
	scoring := &countingScoring{}
	c := NewRedisConsumer(testConfig(), normalize, scoring, logger.NewNop())

	require.NoError(t, c.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return normalize.tasks.Load() > 2 && scoring.tasks.Load() > 2 &&
			normalize.retries.Load() > 0 && scoring.retries.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)

	c.Stop()
	c.Stop()

	stopped := normalize.tasks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, normalize.tasks.Load())
}

func TestRedisConsumer_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewRedisConsumer(testConfig(), &countingService{}, &countingScoring{}, logger.NewNop())
	require.NoError(t, c.Start(ctx))

	cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not stop after cancellation")
	}
}

func TestRedisConsumer_CronHandler(t *testing.T) {
	cfg := testConfig()
	cfg.Worker.RecomputeCron = "not a cron"
	c := NewRedisConsumer(cfg, &countingService{}, &countingScoring{}, logger.NewNop())
	assert.Error(t, c.Start(context.Background()))
	c.Stop()

	scoring := &countingScoring{}
	c = NewRedisConsumer(testConfig(), &countingService{}, scoring, logger.NewNop())
	c.recomputeAll(context.Background())
	assert.Equal(t, int64(1), scoring.recompute.Load())
	c.Stop()
}

func TestRedisConsumer_DistinctConsumerPerLoop(t *testing.T) {
	cfg := testConfig()
	cfg.Worker.ConsumerName = "worker-a"
	normalize := &countingService{}
	scoring := &countingScoring{}
	c := NewRedisConsumer(cfg, normalize, scoring, logger.NewNop())

	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	names := func(s *countingService) map[string]bool {
		out := map[string]bool{}
		s.consumers.Range(func(k, _ interface{}) bool {
			out[k.(string)] = true
			return true
		})
		return out
	}
	want := map[string]bool{"worker-a-0": true, "worker-a-1": true}
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, names(normalize)) && assert.ObjectsAreEqual(want, names(&scoring.countingService))
	}, 2*time.Second, 10*time.Millisecond)
}
