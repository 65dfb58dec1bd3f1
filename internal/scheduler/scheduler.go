// Package scheduler keeps server-side widget data warm between visits.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/portfolio/backend/internal/domain"
)

// WeatherRefresher re-fetches weather for a point, bypassing any cache.
type WeatherRefresher interface {
	Refresh(ctx context.Context, at domain.Coordinates) (domain.Weather, error)
}

// Scheduler wraps a gocron scheduler for periodic refresh jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *zap.Logger
	timeout   time.Duration
}

// New creates a scheduler. Jobs start once Start is called.
func New(logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler: failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, logger: logger, timeout: 15 * time.Second}, nil
}

// ScheduleWeatherRefresh refreshes the weather at point every interval,
// starting immediately. Returns the job ID.
func (s *Scheduler) ScheduleWeatherRefresh(interval time.Duration, refresher WeatherRefresher, point domain.Coordinates) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.refreshWeather, refresher, point),
		gocron.WithName("weather-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return "", fmt.Errorf("scheduler: failed to create weather refresh job: %w", err)
	}
	s.logger.Info("Scheduled weather refresh",
		zap.Duration("interval", interval),
		zap.Float64("lat", point.Latitude),
		zap.Float64("lon", point.Longitude))
	return job.ID().String(), nil
}

func (s *Scheduler) refreshWeather(refresher WeatherRefresher, point domain.Coordinates) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	w, err := refresher.Refresh(ctx, point)
	if err != nil {
		s.logger.Error("Weather refresh failed", zap.Error(err))
		return
	}
	s.logger.Debug("Weather refreshed",
		zap.String("location", w.Location),
		zap.String("condition", w.Condition),
		zap.Bool("mock", w.IsMock))
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}
