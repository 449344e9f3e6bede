package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppetru/igsync/pkg/logger"
	"github.com/ppetru/igsync/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialInterval = time.Millisecond
	cfg.MaxInterval = time.Millisecond
	return cfg
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := retry.Do(context.Background(), logger.NewNop(), "op", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastConfig())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoExhaustsRetries(t *testing.T) {
	boom := errors.New("still broken")
	cfg := fastConfig()
	cfg.MaxRetries = 2

	attempts := 0
	err := retry.Do(context.Background(), logger.NewNop(), "op", func() error {
		attempts++
		return boom
	}, cfg)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, attempts)
}

func TestDoPermanentStopsImmediately(t *testing.T) {
	boom := errors.New("rejected")

	attempts := 0
	err := retry.Do(context.Background(), logger.NewNop(), "op", func() error {
		attempts++
		return retry.Permanent(boom)
	}, fastConfig())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestDoStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := retry.Do(ctx, logger.NewNop(), "op", func() error {
		attempts++
		cancel()
		return errors.New("transient")
	}, fastConfig())

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
