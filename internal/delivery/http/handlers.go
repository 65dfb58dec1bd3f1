package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/portfolio/backend/internal/content"
	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/widget"
)

// Handler contains all HTTP handlers
type Handler struct {
	dashboardSvc *service.DashboardService
	statsSvc     *service.StatsService
	contactSvc   *service.ContactService
	content      *content.Store
	repo         service.ContactRepository
	page         *pageRenderer
	logger       *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(
	dashboardSvc *service.DashboardService,
	statsSvc *service.StatsService,
	contactSvc *service.ContactService,
	store *content.Store,
	repo service.ContactRepository,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		dashboardSvc: dashboardSvc,
		statsSvc:     statsSvc,
		contactSvc:   contactSvc,
		content:      store,
		repo:         repo,
		page:         newPageRenderer(),
		logger:       logger,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	storage := "ok"
	if err := h.repo.Health(c.UserContext()); err != nil {
		h.logger.Warn("Storage health check failed", zap.Error(err))
		status = "degraded"
		storage = "unavailable"
	}
	return c.JSON(fiber.Map{
		"status":  status,
		"storage": storage,
		"service": "portfolio-backend",
		"version": "1.0.0",
	})
}

// Index renders the single-page portfolio
func (h *Handler) Index(c *fiber.Ctx) error {
	data, err := h.dashboardSvc.GetDashboardData(c.UserContext(), nil)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build page")
	}
	body, err := h.page.render(h.content.Get(), data)
	if err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(body)
}

// GetDashboard returns every home screen widget
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	at, err := coordinatesFromQuery(c)
	if err != nil {
		return err
	}

	data, err := h.dashboardSvc.GetDashboardData(c.UserContext(), at)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// GetContent returns the whole portfolio document
func (h *Handler) GetContent(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.content.Get(),
	})
}

// GetSection returns a single section with its items
func (h *Handler) GetSection(c *fiber.Ctx) error {
	doc := h.content.Get()
	section, err := doc.Section(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Section not found")
	}

	payload := fiber.Map{"section": section}
	switch section.ID {
	case "projects":
		payload["projects"] = doc.Projects
	case "about":
		payload["profile"] = doc.Profile
	case "skills":
		payload["skills"] = doc.Skills
	case "resume":
		payload["experience"] = doc.Experience
		payload["education"] = doc.Education
	case "contact":
		payload["email"] = doc.Profile.Email
		payload["resume_url"] = doc.Profile.ResumeURL
		payload["tagline"] = doc.Profile.Tagline
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payload,
	})
}

// GetClock returns the time widget
func (h *Handler) GetClock(c *fiber.Ctx) error {
	now := h.dashboardSvc.Now()
	if tz := c.Query("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unknown timezone")
		}
		now = now.In(loc)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.dashboardSvc.Clock(now),
	})
}

// GetCalendar returns the month grid for ?date=YYYY-MM-DD (default today)
func (h *Handler) GetCalendar(c *fiber.Ctx) error {
	today := h.dashboardSvc.Now()
	ref := today
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, today.Location())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		}
		ref = parsed
	}

	weekStart := h.dashboardSvc.WeekStart()
	if raw := c.Query("week_start"); raw != "" {
		ws, err := widget.ParseWeekStart(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "week_start must be sunday or monday")
		}
		weekStart = ws
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.dashboardSvc.Calendar(ref, today, weekStart),
	})
}

// GetWeather returns current weather for ?lat=&lon= (default location otherwise)
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	at, err := coordinatesFromQuery(c)
	if err != nil {
		return err
	}
	loc := h.dashboardSvc.DefaultLocation()
	if at != nil {
		loc = *at
	}

	weather, err := h.dashboardSvc.GetWeather(c.UserContext(), loc)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) {
			return fiber.NewError(fiber.StatusBadRequest, "Coordinates out of range")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data")
	}

	return c.JSON(domain.WeatherResponse{
		Data:    weather,
		Success: true,
	})
}

// ClassifyWeatherCode returns the condition and icon for a WMO code
func (h *Handler) ClassifyWeatherCode(c *fiber.Ctx) error {
	code, err := strconv.Atoi(c.Params("code"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Weather code must be an integer")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"code":           code,
			"classification": widget.Classify(code),
		},
	})
}

// GetStats returns the stat shown at ?index= (default 0)
func (h *Handler) GetStats(c *fiber.Ctx) error {
	slide, err := h.statsSvc.Slide(c.QueryInt("index", 0))
	if err != nil {
		return carouselError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    slide,
	})
}

type carouselRequest struct {
	CurrentIndex int  `json:"current_index"`
	ItemCount    int  `json:"item_count"`
	Target       *int `json:"target,omitempty"`
}

func (r carouselRequest) state() widget.State {
	return widget.State{CurrentIndex: r.CurrentIndex, ItemCount: r.ItemCount}
}

// AdvanceCarousel moves the caller's stats carousel forward one slide
func (h *Handler) AdvanceCarousel(c *fiber.Ctx) error {
	var req carouselRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	slide, err := h.statsSvc.Advance(req.state())
	if err != nil {
		return carouselError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    slide,
	})
}

// SelectCarousel jumps the caller's stats carousel to target
func (h *Handler) SelectCarousel(c *fiber.Ctx) error {
	var req carouselRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Target == nil {
		return fiber.NewError(fiber.StatusBadRequest, "target is required")
	}

	slide, err := h.statsSvc.Select(req.state(), *req.Target)
	if err != nil {
		return carouselError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    slide,
	})
}

// SubmitContact stores a message from the contact section
func (h *Handler) SubmitContact(c *fiber.Ctx) error {
	var req domain.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	msg, err := h.contactSvc.Submit(c.UserContext(), req, c.IP())
	if err != nil {
		if errors.Is(err, service.ErrInvalidContact) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, strings.TrimPrefix(err.Error(), service.ErrInvalidContact.Error()+": "))
		}
		h.logger.Error("Failed to submit contact message", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send message")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":         msg.ID,
			"created_at": msg.CreatedAt,
		},
	})
}

// ListContacts returns recent contact messages
func (h *Handler) ListContacts(c *fiber.Ctx) error {
	msgs, err := h.contactSvc.Recent(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		h.logger.Error("Failed to list contact messages", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    msgs,
		"count":   len(msgs),
	})
}

func carouselError(err error) error {
	switch {
	case errors.Is(err, widget.ErrOutOfRange):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Carousel index out of range")
	case errors.Is(err, widget.ErrEmptyCarousel):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Carousel has no items")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Carousel error")
}

// coordinatesFromQuery reads ?lat=&lon=. Both or neither must be given.
func coordinatesFromQuery(c *fiber.Ctx) (*domain.Coordinates, error) {
	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw == "" && lonRaw == "" {
		return nil, nil
	}
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lon, errLon := strconv.ParseFloat(lonRaw, 64)
	if errLat != nil || errLon != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "lat and lon must both be numbers")
	}
	at := domain.Coordinates{Latitude: lat, Longitude: lon}
	if !at.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Coordinates out of range")
	}
	return &at, nil
}
