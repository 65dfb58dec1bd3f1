package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/widget"
)

type staticStats []domain.Stat

func (s staticStats) Stats() []domain.Stat { return s }

var threeStats = staticStats{
	{Label: "Projects", Value: "15+"},
	{Label: "Commits", Value: "800+"},
	{Label: "Experience", Value: "5+"},
}

func TestStatsSlide(t *testing.T) {
	svc := NewStatsService(threeStats, 3*time.Second, nil)

	slide, err := svc.Slide(0)
	require.NoError(t, err)
	assert.Equal(t, "Projects", slide.Stat.Label)
	assert.Equal(t, widget.State{CurrentIndex: 0, ItemCount: 3}, slide.State)
	assert.EqualValues(t, 3000, slide.IntervalMS)

	slide, err = svc.Slide(2)
	require.NoError(t, err)
	assert.Equal(t, "Experience", slide.Stat.Label)

	_, err = svc.Slide(3)
	assert.ErrorIs(t, err, widget.ErrOutOfRange)
}

func TestStatsAdvanceWraps(t *testing.T) {
	svc := NewStatsService(threeStats, 0, nil)

	slide, err := svc.Advance(widget.State{CurrentIndex: 2, ItemCount: 3})
	require.NoError(t, err)
	assert.Equal(t, widget.State{CurrentIndex: 0, ItemCount: 3}, slide.State)
	assert.Equal(t, "Projects", slide.Stat.Label)
}

func TestStatsResetsWhenListChanges(t *testing.T) {
	svc := NewStatsService(threeStats, 0, nil)

	// A client still cycling a five-item list restarts from the top.
	slide, err := svc.Advance(widget.State{CurrentIndex: 4, ItemCount: 5})
	require.NoError(t, err)
	assert.Equal(t, widget.State{CurrentIndex: 1, ItemCount: 3}, slide.State)
}

func TestStatsSelect(t *testing.T) {
	svc := NewStatsService(threeStats, 0, nil)
	state := widget.State{CurrentIndex: 0, ItemCount: 3}

	slide, err := svc.Select(state, 1)
	require.NoError(t, err)
	assert.Equal(t, "Commits", slide.Stat.Label)

	_, err = svc.Select(state, -1)
	assert.ErrorIs(t, err, widget.ErrOutOfRange)
	_, err = svc.Select(state, 3)
	assert.ErrorIs(t, err, widget.ErrOutOfRange)
}

func TestStatsEmptyList(t *testing.T) {
	svc := NewStatsService(staticStats{}, 0, nil)

	_, err := svc.Slide(0)
	assert.ErrorIs(t, err, widget.ErrEmptyCarousel)
	_, err = svc.Advance(widget.State{})
	assert.ErrorIs(t, err, widget.ErrEmptyCarousel)
}

func TestCycleReturnsToStart(t *testing.T) {
	states, err := Cycle(widget.State{ItemCount: 4}, 4)
	require.NoError(t, err)
	require.Len(t, states, 4)
	assert.Equal(t, []int{1, 2, 3, 0}, []int{
		states[0].CurrentIndex, states[1].CurrentIndex, states[2].CurrentIndex, states[3].CurrentIndex,
	})

	_, err = Cycle(widget.State{}, 1)
	assert.ErrorIs(t, err, widget.ErrEmptyCarousel)
}

func TestCycleRejectsNegativeSteps(t *testing.T) {
	states, err := Cycle(widget.State{ItemCount: 3}, -1)
	assert.Error(t, err)
	assert.Empty(t, states)

	states, err = Cycle(widget.State{ItemCount: 3}, 0)
	require.NoError(t, err)
	assert.Empty(t, states)
}
