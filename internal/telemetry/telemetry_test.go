package telemetry

import (
	"context"
	"ctchen222/Power-Tic-Tac-Toe/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitOtelDisabled(t *testing.T) {
	shutdown, err := InitOtel(context.Background(), config.Telemetry{Enabled: false})

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitOtelEnabled(t *testing.T) {
	// Exporters connect lazily, so start-up succeeds without a collector.
	shutdown, err := InitOtel(context.Background(), config.Telemetry{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		ServiceName: "power-tic-tac-toe-test",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	// Flushing to an absent collector may fail; shutdown must still return.
	_ = shutdown(ctx)
}
