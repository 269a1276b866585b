package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/materials-service/internal/domain"
)

// ChatMessageRepository appends to the advisory chat log.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
}

type chatMessageRepository struct {
	pool *pgxpool.Pool
}

// NewChatMessageRepository instantiates the repository.
func NewChatMessageRepository(pool *pgxpool.Pool) ChatMessageRepository {
	return &chatMessageRepository{pool: pool}
}

func (r *chatMessageRepository) Create(ctx context.Context, message *domain.ChatMessage) error {
	if err := message.Validate(); err != nil {
		return err
	}

	const query = `
        INSERT INTO chat_messages (role, content)
        VALUES ($1,$2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, message.Role, message.Content).
		Scan(&message.ID, &message.CreatedAt)
}
