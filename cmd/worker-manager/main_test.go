package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPingOrClose(t *testing.T) {
	var closed int
	closeFn := func() error {
		closed++
		return nil
	}

	err := pingOrClose(context.Background(), func(context.Context) error {
		return errors.New("connection refused")
	}, closeFn)
	require.Error(t, err)
	assert.Equal(t, 1, closed)

	err = pingOrClose(context.Background(), func(context.Context) error { return nil }, closeFn)
	require.NoError(t, err)
	assert.Equal(t, 1, closed, "a healthy client stays open")
}

func TestRetryWithBackoff_ClosesEveryFailedAttempt(t *testing.T) {
	var opened, closed int
	attempt := func() error {
		opened++
		return pingOrClose(context.Background(), func(context.Context) error {
			if opened < 3 {
				return errors.New("not ready")
			}
			return nil
		}, func() error {
			closed++
			return nil
		})
	}

	require.NoError(t, retryWithBackoff(attempt, 5, 0, zap.NewNop(), "test connection"))
	assert.Equal(t, 3, opened)
	assert.Equal(t, 2, closed)
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	var calls int
	err := retryWithBackoff(func() error {
		calls++
		return errors.New("down")
	}, 3, 0, zap.NewNop(), "test connection")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "test connection failed after 3 attempts")
}
