package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardAggregatesWidgets(t *testing.T) {
	u := newUpstream(t, http.StatusOK, lagosAddress)
	dash := NewDashboardService(DashboardConfig{
		DefaultLocation: lagos,
		WeekStart:       time.Sunday,
		Timezone:        time.UTC,
	}, u.service(), NewStatsService(threeStats, 0, nil), nil)
	dash.now = func() time.Time { return time.Date(2024, time.February, 14, 8, 5, 0, 0, time.UTC) }

	data, err := dash.GetDashboardData(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "08:05", data.Clock.Time)
	assert.Equal(t, "Feb 14", data.Clock.Date)
	assert.Equal(t, "Wednesday, February 14", data.Clock.Long)

	assert.Equal(t, "FEBRUARY", data.Calendar.Label)
	assert.Equal(t, 14, data.Calendar.Today)
	assert.Equal(t, 4, data.Calendar.Grid.Leading)
	assert.Equal(t, 29, data.Calendar.Grid.DaysInMonth)
	assert.Len(t, data.Calendar.Weeks, 5)

	assert.Equal(t, "Lagos", data.Weather.Location)
	assert.Equal(t, "Projects", data.Stats.Stat.Label)
}

func TestDashboardCalendarMondayStart(t *testing.T) {
	dash := NewDashboardService(DashboardConfig{Timezone: time.UTC}, nil, nil, nil)
	ref := time.Date(2024, time.September, 3, 0, 0, 0, 0, time.UTC)

	cal := dash.Calendar(ref, ref, time.Monday)
	assert.Equal(t, 6, cal.Grid.Leading)
	assert.Equal(t, "M", cal.Weekdays[0])
	assert.Equal(t, 3, cal.Today)
}
