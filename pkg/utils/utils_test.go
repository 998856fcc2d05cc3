package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoSafeRecovers(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	GoSafe(func() {
		defer wg.Done()
		panic("boom")
	})
	ran := false
	GoSafe(func() {
		defer wg.Done()
		ran = true
	})
	wg.Wait()
	assert.True(t, ran)
}

func TestPrettyDate(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "02 Jan 2024 03:04:05 UTC", PrettyDate(ts))
	assert.Equal(t, time.UTC, TimeNowUTC().Location())
}

func TestConsumerName(t *testing.T) {
	name := ConsumerName("bias-worker-consumer")
	assert.Regexp(t, `^bias-worker-consumer-.+-\d+$`, name)
	assert.Equal(t, name, ConsumerName("bias-worker-consumer"))
}
