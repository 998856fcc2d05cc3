package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l, err := New("debug", "json")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.True(t, l.Core().Enabled(-1))

	l, err = New("INFO", "console")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)
}

func TestFields(t *testing.T) {
	assert.Equal(t, "asset", StringField("asset", "USD").Key)
	assert.Equal(t, int64(3), IntField("count", 3).Integer)
	assert.Equal(t, "error", ErrorField(errors.New("boom")).Key)
	assert.Equal(t, "any", Field("any", struct{}{}).Key)
}

func TestNopNamed(t *testing.T) {
	l := NewNop().Named("worker")
	assert.NotPanics(t, func() {
		l.Info("hello", StringField("k", "v"))
		l.DebugContext(context.Background(), "debug")
	})
}
