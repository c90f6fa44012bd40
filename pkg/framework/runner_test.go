package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunnerWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errFailed := errors.New("failed")
	r := NewRunner(ctx).Go(
		RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
		NamedRun("fail", RunFunc(func(context.Context) error {
			return errFailed
		})),
	)
	cancel()
	err := r.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, errFailed))
}

func TestRunWithContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	block := make(chan struct{})
	defer close(block)
	var canceled bool
	err := RunWithContextCancel(ctx, func() { canceled = true }, func() error {
		<-block
		return nil
	})
	require.Equal(t, context.DeadlineExceeded, err)
	require.True(t, canceled)

	err = RunWithContextCancel(context.Background(), nil, func() error { return nil })
	require.NoError(t, err)
}
