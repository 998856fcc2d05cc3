package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/logger"
	"golang-bias-heatmap/pkg/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisDispatcher_PublishesTasks(t *testing.T) {
	rdb := newTestRedis(t)
	d := NewRedisDispatcher(rdb, 0, logger.NewNop(), metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	require.NoError(t, d.DispatchNormalize(ctx, NormalizeTask{TraceID: "0b7e1c9a-3f2d-4c55-9a8e-5d4f3b2a1c00"}))
	require.NoError(t, d.DispatchScore(ctx, ScoreTask{AssetID: 7, Reason: ReasonIndicator}))

	entries, err := rdb.XRange(ctx, common.RedisStreamEventNormalize, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	task, err := DecodeNormalizeTask(entries[0].Values)
	require.NoError(t, err)
	assert.Equal(t, "0b7e1c9a-3f2d-4c55-9a8e-5d4f3b2a1c00", task.TraceID)

	entries, err = rdb.XRange(ctx, common.RedisStreamScoreRecompute, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	score, err := DecodeScoreTask(entries[0].Values)
	require.NoError(t, err)
	assert.Equal(t, ScoreTask{AssetID: 7, Reason: ReasonIndicator}, score)
}

func TestRedisDispatcher_ReportsFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	d := NewRedisDispatcher(rdb, 100, logger.NewNop(), nil)
	err := d.DispatchScore(context.Background(), ScoreTask{AssetID: 1})
	assert.Error(t, err)
}

func TestRedisDispatcher_RefusesWhenBacklogFull(t *testing.T) {
	rdb := newTestRedis(t)
	d := NewRedisDispatcher(rdb, 2, logger.NewNop(), nil)
	ctx := context.Background()

	require.NoError(t, d.DispatchScore(ctx, ScoreTask{AssetID: 1}))
	require.NoError(t, d.DispatchScore(ctx, ScoreTask{AssetID: 2}))

	err := d.DispatchScore(ctx, ScoreTask{AssetID: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueueFull))

	// unread entries are kept
	entries, err := rdb.XRange(ctx, common.RedisStreamScoreRecompute, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	first, err := DecodeScoreTask(entries[0].Values)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.AssetID)

	// deleting a handled entry frees room
	require.NoError(t, rdb.XDel(ctx, common.RedisStreamScoreRecompute, entries[0].ID).Err())
	assert.NoError(t, d.DispatchScore(ctx, ScoreTask{AssetID: 3}))
}

func TestDecodeTasks_RejectInvalidEntries(t *testing.T) {
	_, err := DecodeNormalizeTask(map[string]interface{}{})
	assert.Error(t, err)

	_, err = DecodeNormalizeTask(map[string]interface{}{common.RedisStreamPayloadField: "{}"})
	assert.Error(t, err)

	_, err = DecodeScoreTask(map[string]interface{}{common.RedisStreamPayloadField: "not json"})
	assert.Error(t, err)

	_, err = DecodeScoreTask(map[string]interface{}{common.RedisStreamPayloadField: 42})
	assert.Error(t, err)

	task, err := DecodeScoreTask(map[string]interface{}{common.RedisStreamPayloadField: []byte(`{"asset_id":3}`)})
	require.NoError(t, err)
	assert.Equal(t, uint(3), task.AssetID)
}

func TestMemoryDispatcher_QueueAndClose(t *testing.T) {
	d := NewMemoryDispatcher(1)
	ctx := context.Background()

	require.NoError(t, d.DispatchNormalize(ctx, NormalizeTask{TraceID: "a"}))
	assert.ErrorIs(t, d.DispatchNormalize(ctx, NormalizeTask{TraceID: "b"}), ErrQueueFull)
	require.NoError(t, d.DispatchScore(ctx, ScoreTask{AssetID: 1}))

	normalize, score := d.Pending()
	assert.Equal(t, 1, normalize)
	assert.Equal(t, 1, score)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.ErrorIs(t, d.DispatchScore(ctx, ScoreTask{AssetID: 2}), ErrClosed)
}

func TestMemoryDispatcher_Run(t *testing.T) {
	d := NewMemoryDispatcher(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu     sync.Mutex
		seen   []string
		failed []error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx,
			func(ctx context.Context, task NormalizeTask) error {
				mu.Lock()
				seen = append(seen, "normalize:"+task.TraceID)
				mu.Unlock()
				return d.DispatchScore(ctx, ScoreTask{AssetID: 1})
			},
			func(_ context.Context, task ScoreTask) error {
				mu.Lock()
				seen = append(seen, "score")
				mu.Unlock()
				return errors.New("boom")
			},
			func(err error) {
				mu.Lock()
				failed = append(failed, err)
				mu.Unlock()
			},
		)
	}()

	require.NoError(t, d.DispatchNormalize(ctx, NormalizeTask{TraceID: "t1"}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2 && len(failed) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, []string{"normalize:t1", "score"}, seen)
}
