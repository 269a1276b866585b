package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/materials-service/internal/domain"
	"github.com/spec-kit/materials-service/internal/events"
	"github.com/spec-kit/materials-service/internal/repository"
	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// Profile is the curated view of a user returned by the profile endpoint.
// The wishlist is expanded into full material records.
type Profile struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Username string            `json:"username"`
	UserType domain.UserType   `json:"userType,omitempty"`
	Company  string            `json:"company,omitempty"`
	Interest domain.Interest   `json:"interest,omitempty"`
	WishList []domain.Material `json:"wishList"`
}

// ProfileService serves profile reads and wishlist mutations.
type ProfileService struct {
	users      repository.UserRepository
	materials  repository.MaterialRepository
	dispatcher events.Dispatcher
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository, materials repository.MaterialRepository, dispatcher events.Dispatcher) *ProfileService {
	return &ProfileService{users: users, materials: materials, dispatcher: dispatcher}
}

// GetProfile loads a user and expands the wishlist references into material
// records, preserving order and duplicates. References to materials that no
// longer exist are skipped.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}

	materials, err := s.materials.GetByIDs(ctx, user.WishList)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Material, len(materials))
	for _, material := range materials {
		byID[material.ID] = material
	}

	wishList := make([]domain.Material, 0, len(user.WishList))
	for _, id := range user.WishList {
		if material, ok := byID[id]; ok {
			wishList = append(wishList, material)
		}
	}

	return &Profile{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		UserType: user.UserType,
		Company:  user.Company,
		Interest: user.Interest,
		WishList: wishList,
	}, nil
}

// ReplaceWishList overwrites the stored wishlist in a single update.
func (s *ProfileService) ReplaceWishList(ctx context.Context, userID string, wishList []string) error {
	for _, id := range wishList {
		if _, err := uuid.Parse(id); err != nil {
			return apperrors.NewValidationError("Invalid material id.", map[string]any{"materialId": id})
		}
	}

	if err := s.users.ReplaceWishList(ctx, userID, wishList); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User", nil)
		}
		return err
	}

	s.publishWishlistChanged(ctx, userID, "replace", "", len(wishList))
	return nil
}

// AddToWishList appends a material reference. Duplicates are tolerated and
// the material's existence in the catalog is not checked.
func (s *ProfileService) AddToWishList(ctx context.Context, userID, materialID string) error {
	if _, err := uuid.Parse(materialID); err != nil {
		return apperrors.NewValidationError("Invalid material id.", map[string]any{"materialId": materialID})
	}

	if err := s.users.AppendWishList(ctx, userID, materialID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User", nil)
		}
		return err
	}

	s.publishWishlistChanged(ctx, userID, "add", materialID, -1)
	return nil
}

// RemoveFromWishList drops every occurrence of the material reference and
// returns the remaining list.
func (s *ProfileService) RemoveFromWishList(ctx context.Context, userID, materialID string) ([]string, error) {
	if _, err := uuid.Parse(materialID); err != nil {
		return nil, apperrors.NewValidationError("Invalid material id.", map[string]any{"materialId": materialID})
	}

	wishList, err := s.users.RemoveFromWishList(ctx, userID, materialID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}

	s.publishWishlistChanged(ctx, userID, "remove", materialID, len(wishList))
	return wishList, nil
}

func (s *ProfileService) publishWishlistChanged(ctx context.Context, userID, action, materialID string, size int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventWishlistChanged,
		SubjectID: userID,
		Timestamp: time.Now(),
		Payload: events.WishlistChangedPayload{
			Action:     action,
			MaterialID: materialID,
			Size:       size,
		},
	})
}
