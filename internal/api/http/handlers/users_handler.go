package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/materials-service/internal/api/dto"
	"github.com/spec-kit/materials-service/internal/auth"
	"github.com/spec-kit/materials-service/internal/service"
	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// UsersHandler exposes signup, login and token verification.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Signup(c.Context(), service.SignupInput{
		Email:        req.Email,
		Password:     req.Password,
		Username:     req.Username,
		AgreeToTerms: req.AgreeToTerms,
		UserType:     req.UserType,
		Company:      req.Company,
		Interest:     req.IAmInterestedIn,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user": dto.NewUserResponse(user),
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{AuthToken: token})
}

// Verify handles GET /auth/verify. The middleware already validated the
// token; this just echoes the decoded payload.
func (h *UsersHandler) Verify(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing identity")
	}
	return c.JSON(identity)
}
