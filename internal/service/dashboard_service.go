package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/widget"
)

// DashboardConfig holds the home screen defaults
type DashboardConfig struct {
	DefaultLocation domain.Coordinates
	WeekStart       time.Weekday
	Timezone        *time.Location
}

// DashboardService aggregates all home screen widgets
type DashboardService struct {
	cfg        DashboardConfig
	weatherSvc *WeatherService
	statsSvc   *StatsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	cfg DashboardConfig,
	weatherSvc *WeatherService,
	statsSvc *StatsService,
	logger *zap.Logger,
) *DashboardService {
	if cfg.Timezone == nil {
		cfg.Timezone = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		cfg:        cfg,
		weatherSvc: weatherSvc,
		statsSvc:   statsSvc,
		logger:     logger,
		now:        time.Now,
	}
}

// DefaultLocation is where weather is reported when the visitor shares none
func (s *DashboardService) DefaultLocation() domain.Coordinates {
	return s.cfg.DefaultLocation
}

// WeekStart is the configured first column of the calendar
func (s *DashboardService) WeekStart() time.Weekday {
	return s.cfg.WeekStart
}

// GetDashboardData fetches all widget data concurrently using goroutines
func (s *DashboardService) GetDashboardData(ctx context.Context, at *domain.Coordinates) (domain.DashboardData, error) {
	now := s.now().In(s.cfg.Timezone)
	loc := s.cfg.DefaultLocation
	if at != nil {
		loc = *at
	}

	var (
		weather domain.Weather
		stats   domain.StatsSlide
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
	)

	// Fetch weather concurrently
	wg.Add(1)
	go func() {
		defer wg.Done()
		w, err := s.weatherSvc.GetWeather(ctx, loc)
		mu.Lock()
		if err != nil {
			errs = append(errs, err)
		} else {
			weather = w
		}
		mu.Unlock()
	}()

	// Read stats concurrently
	wg.Add(1)
	go func() {
		defer wg.Done()
		slide, err := s.statsSvc.Slide(0)
		mu.Lock()
		if err != nil {
			errs = append(errs, err)
		} else {
			stats = slide
		}
		mu.Unlock()
	}()

	clock := s.Clock(now)
	calendar := s.Calendar(now, now, s.cfg.WeekStart)

	wg.Wait()

	// Log any errors that occurred
	for _, err := range errs {
		s.logger.Warn("Dashboard widget error", zap.Error(err))
	}

	// Even with errors, return what we have
	return domain.DashboardData{
		Clock:     clock,
		Calendar:  calendar,
		Weather:   weather,
		Stats:     stats,
		Timestamp: now,
	}, nil
}

// GetWeather returns current weather at a point
func (s *DashboardService) GetWeather(ctx context.Context, at domain.Coordinates) (domain.Weather, error) {
	return s.weatherSvc.GetWeather(ctx, at)
}

// Now returns the current time in the dashboard timezone
func (s *DashboardService) Now() time.Time {
	return s.now().In(s.cfg.Timezone)
}

// Clock formats the time widget: 24h time and a short date
func (s *DashboardService) Clock(now time.Time) domain.Clock {
	return domain.Clock{
		Time:     now.Format("15:04"),
		Date:     now.Format("Jan 2"),
		Long:     now.Format("Monday, January 2"),
		Timezone: now.Location().String(),
		Now:      now,
	}
}

// Calendar lays out the month containing ref and marks today's day number.
// Casers are stateful, so one is built per call.
func (s *DashboardService) Calendar(ref, today time.Time, weekStart time.Weekday) domain.Calendar {
	grid := widget.BuildMonthGridFrom(ref, weekStart)
	return domain.Calendar{
		Label:    cases.Upper(language.English).String(grid.Month.String()),
		Weekdays: grid.WeekdayLabels(),
		Today:    widget.HighlightDay(grid, today),
		Grid:     grid,
		Weeks:    grid.Weeks(),
	}
}
