package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordEvent("accepted")
	r.RecordEvent("accepted")
	r.RecordEvent("duplicate")
	r.RecordTask("bias.score.recompute", "success")
	r.RecordDispatch("bias.event.normalize", "ok")
	r.RecordScore("7", 24)
	r.RecordLatency("score", 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.eventsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.eventsTotal.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.tasksTotal.WithLabelValues("bias.score.recompute", "success")))
	assert.Equal(t, 24.0, testutil.ToFloat64(r.scoreTotal.WithLabelValues("7")))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordEvent("accepted")
		r.RecordTask("s", "failed")
		r.RecordDispatch("s", "error")
		r.RecordScore("1", 0)
		r.RecordLatency("op", 1)
	})
}
