package domain

import (
	"time"

	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// ChatRole labels who wrote a chat message.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage is one entry in the append-only advisory log.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks field constraints ahead of a persistence write.
func (m *ChatMessage) Validate() error {
	if m.Role != ChatRoleUser && m.Role != ChatRoleBot {
		return apperrors.NewValidationError("Unknown chat role.", map[string]any{"role": m.Role})
	}
	if m.Content == "" {
		return apperrors.NewValidationError("Content is required.", nil)
	}
	return nil
}
