package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := New(level)
		require.NoError(t, err, level)
		assert.NoError(t, log.Close())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty")
	assert.Error(t, err)
}

func TestWithFieldReturnsIndependentLogger(t *testing.T) {
	log := NewNop()

	child := log.WithField("component", "test")
	require.NotNil(t, child)
	assert.NotSame(t, log, child)

	// Both remain usable.
	log.Info("parent")
	child.Info("child")
}
