package service

import (
	"errors"

	"github.com/portfolio/backend/internal/domain"
)

// ContactRepository is re-exported from domain for convenience
type ContactRepository = domain.ContactRepository

var (
	// ErrInvalidCoordinates is returned for points outside WGS84 bounds
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrInvalidContact is returned when a contact request fails validation
	ErrInvalidContact = errors.New("invalid contact request")
)
