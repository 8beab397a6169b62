package research

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds immediately", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		sentinel := errors.New("still broken")
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return sentinel
		}, 3, time.Millisecond)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 3, calls)
	})

	t.Run("invalid attempt count", func(t *testing.T) {
		err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			cancel()
			return errors.New("transient")
		}, 10, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
