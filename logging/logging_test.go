package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewParsesLevel(t *testing.T) {
	logger, err := New("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud")
	require.Error(t, err)
}

func TestWriterEmitsInfoEntries(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := Writer(zap.New(core))

	_, err := w.Write([]byte("GET /api/projectassignments 200\n"))
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "GET /api/projectassignments 200", logs.All()[0].Message)
}
