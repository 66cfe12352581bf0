package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel checks known level names and the fallback for unknown input.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	level, ok := ParseLogLevel("debug")
	require.True(t, ok)
	require.Equal(t, zapcore.DebugLevel, level)

	level, ok = ParseLogLevel("  WARN ")
	require.True(t, ok)
	require.Equal(t, zapcore.WarnLevel, level)

	level, ok = ParseLogLevel("verbose")
	require.False(t, ok)
	require.Equal(t, zapcore.InfoLevel, level)
}

// TestFromContextFallsBackToGlobal ensures a bare context still yields a usable logger.
func TestFromContextFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(context.Background()))
	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithNameStoresLoggerInContext verifies the context round trip.
func TestWithNameStoresLoggerInContext(t *testing.T) {
	t.Parallel()

	ctx := WithName(context.Background(), "turret")
	require.NotSame(t, Logger(), FromContext(ctx))

	// Nested values keep working.
	ctx = WithKV(ctx, "component", "engine")
	require.NotNil(t, FromContext(ctx))
}
