package domain

import "time"

// ContactRequest is what a visitor submits from the contact section
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactMessage is a stored contact submission
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	RemoteAddr string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
