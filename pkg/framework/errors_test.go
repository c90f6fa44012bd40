package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())

	errA, errB := errors.New("a"), errors.New("b")
	err := errs.Add(errA).Aggregate()
	require.EqualError(t, err, "a")
	require.True(t, errors.Is(err, errA))

	err = errs.Add(nil, errB).Aggregate()
	require.EqualError(t, err, "Multiple errors:\na\nb")
	require.True(t, errors.Is(err, errB))
}
