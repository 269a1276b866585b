package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/materials-service/internal/api/dto"
	"github.com/spec-kit/materials-service/internal/auth"
	"github.com/spec-kit/materials-service/internal/service"
	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// ProfileHandler exposes the profile and wishlist endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get handles GET /auth/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing identity")
	}

	profile, err := h.profiles.GetProfile(c.Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// Update handles PUT /auth/profile, replacing the wishlist wholesale.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing identity")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.profiles.ReplaceWishList(c.Context(), identity.ID, req.WishList); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Profile updated successfully."})
}

// WishlistAdd handles POST /auth/wishlist/add.
func (h *ProfileHandler) WishlistAdd(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing identity")
	}

	var req dto.WishlistAddRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.profiles.AddToWishList(c.Context(), identity.ID, req.MaterialID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Material added successfully."})
}

// WishlistRemove handles DELETE /auth/wishlist/remove/:materialId.
func (h *ProfileHandler) WishlistRemove(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing identity")
	}

	wishList, err := h.profiles.RemoveFromWishList(c.Context(), identity.ID, c.Params("materialId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"wishList": wishList})
}
