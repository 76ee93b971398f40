package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"budzet/internal/log"

	"github.com/stretchr/testify/require"
)

func TestRunReturnsFirstTaskError(t *testing.T) {
	logger := log.New(log.Config{Output: io.Discard})
	boom := errors.New("boom")

	stopped := make(chan struct{})
	err := Run(logger,
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error {
			<-ctx.Done()
			close(stopped)
			return ctx.Err()
		},
	)

	require.ErrorIs(t, err, boom)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("sibling task was not cancelled")
	}
}

func TestRunTreatsCancellationAsCleanExit(t *testing.T) {
	logger := log.New(log.Config{Output: io.Discard})
	err := Run(logger, func(ctx context.Context) error { return context.Canceled })
	require.NoError(t, err)
}

func TestSetupLoggerFallsBackToInfo(t *testing.T) {
	logger := SetupLogger("chatty", log.ComponentApp)
	require.Equal(t, log.ComponentApp, logger.Component())
	require.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
