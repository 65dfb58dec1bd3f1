package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/widget"
)

// StatsSource supplies the current stats list
type StatsSource interface {
	Stats() []domain.Stat
}

// StatsService drives the rotating stats widget. It keeps no position of
// its own: every call takes the caller's carousel state.
type StatsService struct {
	source   StatsSource
	interval time.Duration
	recorder metrics.Recorder
}

// NewStatsService creates a new stats service
func NewStatsService(source StatsSource, interval time.Duration, recorder metrics.Recorder) *StatsService {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &StatsService{source: source, interval: interval, recorder: recorder}
}

// Slide returns the stat shown at index. The state is rebuilt against the
// current list, so a list that changed length starts over at 0.
func (s *StatsService) Slide(index int) (domain.StatsSlide, error) {
	stats := s.source.Stats()
	state, err := widget.NewState(len(stats))
	if err != nil {
		return domain.StatsSlide{}, err
	}
	if index != 0 {
		state, err = widget.SetIndex(state, index)
		if err != nil {
			return domain.StatsSlide{}, err
		}
	}
	return s.slide(stats, state), nil
}

// Advance moves the caller's carousel forward one slide.
func (s *StatsService) Advance(state widget.State) (domain.StatsSlide, error) {
	stats, state, err := s.reconcile(state)
	if err == nil {
		state, err = widget.Advance(state)
	}
	s.record("advance", err)
	if err != nil {
		return domain.StatsSlide{}, err
	}
	return s.slide(stats, state), nil
}

// Select jumps the caller's carousel to target, as a pagination dot does.
func (s *StatsService) Select(state widget.State, target int) (domain.StatsSlide, error) {
	stats, state, err := s.reconcile(state)
	if err == nil {
		state, err = widget.SetIndex(state, target)
	}
	s.record("select", err)
	if err != nil {
		return domain.StatsSlide{}, err
	}
	return s.slide(stats, state), nil
}

// reconcile resets a state whose item count no longer matches the list.
func (s *StatsService) reconcile(state widget.State) ([]domain.Stat, widget.State, error) {
	stats := s.source.Stats()
	if len(stats) == 0 {
		return nil, state, widget.ErrEmptyCarousel
	}
	if state.ItemCount != len(stats) || !state.Valid() {
		fresh, err := widget.NewState(len(stats))
		return stats, fresh, err
	}
	return stats, state, nil
}

func (s *StatsService) slide(stats []domain.Stat, state widget.State) domain.StatsSlide {
	return domain.StatsSlide{
		Stat:       stats[state.CurrentIndex],
		State:      state,
		IntervalMS: s.interval.Milliseconds(),
	}
}

func (s *StatsService) record(op string, err error) {
	switch {
	case err == nil:
		s.recorder.IncCarouselOp(op, metrics.ResultSuccess)
	case errors.Is(err, widget.ErrOutOfRange), errors.Is(err, widget.ErrEmptyCarousel):
		s.recorder.IncCarouselOp(op, metrics.ResultInvalid)
	default:
		s.recorder.IncCarouselOp(op, metrics.ResultFailed)
	}
}

// Cycle applies Advance n times, starting from state. Used by the CLI preview.
func Cycle(state widget.State, n int) ([]widget.State, error) {
	if n < 0 {
		return nil, fmt.Errorf("cycle: negative step count %d", n)
	}
	out := make([]widget.State, 0, n)
	for i := 0; i < n; i++ {
		next, err := widget.Advance(state)
		if err != nil {
			return out, fmt.Errorf("cycle step %d: %w", i, err)
		}
		out = append(out, next)
		state = next
	}
	return out, nil
}
