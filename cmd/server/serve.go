package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/portfolio/backend/internal/content"
	"github.com/portfolio/backend/internal/delivery/http"
	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/notify"
	"github.com/portfolio/backend/internal/repository/postgres"
	"github.com/portfolio/backend/internal/repository/sqlite"
	"github.com/portfolio/backend/internal/scheduler"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/widget"
)

// ServeCmd runs the HTTP server
type ServeCmd struct {
	Port           string        `env:"PORT" default:"8080" help:"Listen port"`
	DatabaseURL    string        `name:"database-url" env:"DATABASE_URL" help:"PostgreSQL connection string for contact messages"`
	SQLitePath     string        `name:"sqlite-path" env:"SQLITE_PATH" help:"SQLite file used when no PostgreSQL URL is set"`
	AdminToken     string        `name:"admin-token" env:"ADMIN_TOKEN" help:"Bearer token for reading contact messages (inbox route disabled when empty)"`
	NATSURL        string        `name:"nats-url" env:"NATS_URL" help:"NATS server for contact notifications"`
	ContentFile    string        `name:"content-file" env:"CONTENT_FILE" type:"path" help:"Portfolio YAML document (embedded default when empty)"`
	WeatherAPIURL  string        `name:"weather-api-url" env:"WEATHER_API_URL" default:"https://api.open-meteo.com/v1/forecast" help:"Open-Meteo forecast endpoint"`
	GeocodeAPIURL  string        `name:"geocode-api-url" env:"GEOCODE_API_URL" default:"https://nominatim.openstreetmap.org/reverse" help:"Reverse geocoding endpoint"`
	DefaultLat     float64       `name:"default-lat" env:"DEFAULT_LAT" default:"40.7128" help:"Latitude used when the visitor shares no location"`
	DefaultLon     float64       `name:"default-lon" env:"DEFAULT_LON" default:"-74.0060" help:"Longitude used when the visitor shares no location"`
	Timezone       string        `env:"TIMEZONE" default:"Local" help:"IANA timezone for the clock and calendar widgets"`
	WeatherRefresh time.Duration `name:"weather-refresh" env:"WEATHER_REFRESH" default:"15m" help:"Weather cache lifetime and background refresh interval"`
	WeekStart      string        `name:"week-start" env:"WEEK_START" default:"sunday" enum:"sunday,monday" help:"First calendar column"`
	StatsInterval  time.Duration `name:"stats-interval" env:"STATS_INTERVAL" default:"3s" help:"Stats carousel auto-advance interval"`
}

// Run wires the repositories, services and routes, then serves until a signal arrives.
func (s *ServeCmd) Run(g *Globals) error {
	log := g.logger

	weekStart, err := widget.ParseWeekStart(s.WeekStart)
	if err != nil {
		return err
	}
	tz, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics
	reg := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	// Dependency Injection: Repositories
	repo, err := s.openRepository(ctx, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	// Contact notifications
	var publisher notify.Publisher = notify.NoopPublisher{}
	if s.NATSURL != "" {
		p, err := notify.NewNATSPublisher(s.NATSURL, log)
		if err != nil {
			log.Warn("Could not connect to NATS, notifications disabled", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	// Content
	store, err := content.NewStore(s.ContentFile, log, recorder)
	if err != nil {
		return err
	}
	if store.Path() != "" {
		watcher, err := content.NewWatcher(store, 500*time.Millisecond, log)
		if err != nil {
			log.Warn("Content hot reload disabled", zap.Error(err))
		} else {
			go watcher.Run(ctx)
			defer watcher.Close()
		}
	}

	// Dependency Injection: Services
	home := domain.Coordinates{Latitude: s.DefaultLat, Longitude: s.DefaultLon}
	weatherSvc := service.NewWeatherService(service.WeatherConfig{
		APIURL:     s.WeatherAPIURL,
		GeocodeURL: s.GeocodeAPIURL,
		MaxAge:     s.WeatherRefresh,
	}, log, recorder)
	statsSvc := service.NewStatsService(store, s.StatsInterval, recorder)
	contactSvc := service.NewContactService(repo, publisher, log, recorder)
	dashboardSvc := service.NewDashboardService(service.DashboardConfig{
		DefaultLocation: home,
		WeekStart:       weekStart,
		Timezone:        tz,
	}, weatherSvc, statsSvc, log)

	// Background refresh keeps the default location warm
	sched, err := scheduler.New(log)
	if err != nil {
		return err
	}
	if _, err := sched.ScheduleWeatherRefresh(s.WeatherRefresh, weatherSvc, home); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Warn("Scheduler shutdown error", zap.Error(err))
		}
	}()

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Portfolio API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	handler := http.NewHandler(dashboardSvc, statsSvc, contactSvc, store, repo, log)
	http.SetupRoutes(app, handler, recorder.Handler(), s.AdminToken)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("port", s.Port), zap.String("env", g.Env))
		errCh <- app.Listen(":" + s.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	return nil
}

// openRepository prefers PostgreSQL, then SQLite, then the in-memory store.
func (s *ServeCmd) openRepository(ctx context.Context, log *zap.Logger) (domain.ContactRepository, error) {
	if s.DatabaseURL != "" {
		repo, err := connectPostgres(ctx, s.DatabaseURL)
		if err == nil {
			log.Info("Connected to PostgreSQL")
			return repo, nil
		}
		log.Warn("Could not connect to database", zap.Error(err))
	}
	if s.SQLitePath != "" {
		repo, err := sqlite.New(s.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		log.Info("Using SQLite contact store", zap.String("path", s.SQLitePath))
		return repo, nil
	}
	log.Info("Running with in-memory contact store only")
	return postgres.NewMockRepository(), nil
}

func connectPostgres(ctx context.Context, url string) (*postgres.PostgresRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	repo := postgres.NewPostgresRepository(pool)
	if err := repo.Health(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}
