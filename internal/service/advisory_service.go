package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/materials-service/internal/advisory"
	"github.com/spec-kit/materials-service/internal/domain"
	"github.com/spec-kit/materials-service/internal/events"
	"github.com/spec-kit/materials-service/internal/repository"
	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// AdvisoryService logs pros-and-cons questions and relays them to an
// external generator. The generator is optional; without one the question
// is still logged and the caller gets a 503.
type AdvisoryService struct {
	messages   repository.ChatMessageRepository
	materials  repository.MaterialRepository
	generator  advisory.Generator
	dispatcher events.Dispatcher
}

// NewAdvisoryService builds the service. generator may be nil.
func NewAdvisoryService(messages repository.ChatMessageRepository, materials repository.MaterialRepository, generator advisory.Generator, dispatcher events.Dispatcher) *AdvisoryService {
	return &AdvisoryService{
		messages:   messages,
		materials:  materials,
		generator:  generator,
		dispatcher: dispatcher,
	}
}

// ProsAndCons asks the generator for the pros and cons of a material and
// appends both sides of the exchange to the chat log.
func (s *AdvisoryService) ProsAndCons(ctx context.Context, materialID string) (string, error) {
	if _, err := uuid.Parse(materialID); err != nil {
		return "", apperrors.NewValidationError("Invalid material id.", map[string]any{"materialId": materialID})
	}

	material, err := s.materials.GetByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("Material", nil)
		}
		return "", err
	}

	prompt := fmt.Sprintf("Give me the pros and cons for %s", material.Name)
	question := &domain.ChatMessage{Role: domain.ChatRoleUser, Content: prompt}
	if err := s.messages.Create(ctx, question); err != nil {
		return "", err
	}

	if s.generator == nil {
		s.publish(ctx, materialID, false)
		return "", apperrors.NewUnavailable("advisory service not configured")
	}

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.publish(ctx, materialID, false)
		return "", err
	}

	reply := &domain.ChatMessage{Role: domain.ChatRoleBot, Content: answer}
	if err := s.messages.Create(ctx, reply); err != nil {
		return "", err
	}

	s.publish(ctx, materialID, true)
	return answer, nil
}

func (s *AdvisoryService) publish(ctx context.Context, materialID string, answered bool) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAdviceRequested,
		SubjectID: materialID,
		Timestamp: time.Now(),
		Payload: events.AdviceRequestedPayload{
			MaterialID: materialID,
			Answered:   answered,
		},
	})
}
