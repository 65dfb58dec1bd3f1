package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/portfolio/backend/internal/domain"
)

type countingRefresher struct {
	calls atomic.Int32
	last  atomic.Value
}

func (r *countingRefresher) Refresh(_ context.Context, at domain.Coordinates) (domain.Weather, error) {
	r.calls.Add(1)
	r.last.Store(at)
	return domain.Weather{Location: "Test", Latitude: at.Latitude, Longitude: at.Longitude}, nil
}

func TestWeatherRefreshRunsImmediately(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := New(nil)
	require.NoError(t, err)

	ref := &countingRefresher{}
	point := domain.Coordinates{Latitude: 6.5, Longitude: 3.4}
	id, err := s.ScheduleWeatherRefresh(time.Hour, ref, point)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start()
	require.Eventually(t, func() bool { return ref.calls.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())

	assert.Equal(t, point, ref.last.Load())
}
