package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "court", Value: "Delhi High Court"}, String("court", "Delhi High Court"))
	assert.Equal(t, Field{Key: "top_k", Value: 5}, Int("top_k", 5))
	assert.Equal(t, Field{Key: "score", Value: 0.42}, Float64("score", 0.42))
	assert.Equal(t, Field{Key: "flagged", Value: true}, Bool("flagged", true))
	assert.Equal(t, Field{Key: "took", Value: time.Second}, Duration("took", time.Second))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestZapLogger_EmitsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core)

	log.Info("retrieval complete", Int("candidates", 10), Float64("top_score", 0.81))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "retrieval complete", entry.Message)
	fields := entry.ContextMap()
	assert.EqualValues(t, 10, fields["candidates"])
	assert.EqualValues(t, 0.81, fields["top_score"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core).Named("retrieval").With(String("query_id", "q-1"))

	log.Warn("candidate dropped")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "retrieval", entry.LoggerName)
	assert.Equal(t, "q-1", entry.ContextMap()["query_id"])
}

func TestNewLogger_DefaultsAndBuild(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
	// Console format builds as well.
	log, err = NewLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNopLoggerAndDefault(t *testing.T) {
	n := NewNopLogger()
	// Must not panic and must be chainable.
	n.With(String("k", "v")).Named("x").Info("ignored")

	SetDefault(n)
	assert.NotNil(t, Default())
	SetDefault(nil) // no-op
	assert.NotNil(t, Default())
}
