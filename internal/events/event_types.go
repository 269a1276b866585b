package events

import (
	"time"

	"github.com/spec-kit/materials-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventMaterialCreated EventType = "material_created"
	EventWishlistChanged EventType = "wishlist_changed"
	EventAdviceRequested EventType = "advice_requested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email    string          `json:"email"`
	Username string          `json:"username"`
	UserType domain.UserType `json:"user_type,omitempty"`
}

// MaterialCreatedPayload payload.
type MaterialCreatedPayload struct {
	Name     string                  `json:"name"`
	Category domain.MaterialCategory `json:"category"`
	Price    float64                 `json:"price"`
}

// WishlistChangedPayload payload.
type WishlistChangedPayload struct {
	Action     string `json:"action"`
	MaterialID string `json:"material_id,omitempty"`
	Size       int    `json:"size"`
}

// AdviceRequestedPayload payload.
type AdviceRequestedPayload struct {
	MaterialID string `json:"material_id"`
	Answered   bool   `json:"answered"`
}
