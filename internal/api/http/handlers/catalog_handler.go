package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/materials-service/internal/api/dto"
	"github.com/spec-kit/materials-service/internal/auth"
	"github.com/spec-kit/materials-service/internal/service"
	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// CatalogHandler exposes material search, creation and the advisory
// endpoint.
type CatalogHandler struct {
	catalog  *service.CatalogService
	advisory *service.AdvisoryService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService, advisoryService *service.AdvisoryService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, advisory: advisoryService}
}

// Search handles GET /auth/search?query=...&sortBy=name|price.
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	results, err := h.catalog.Search(c.Context(), c.Query("query"), c.Query("sortBy"))
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// CreateMaterial handles POST /auth/materials.
func (h *CatalogHandler) CreateMaterial(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing identity")
	}

	var req dto.CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	material := req.ToDomain()
	if err := h.catalog.CreateMaterial(c.Context(), identity.ID, material); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"material": material})
}

// ProsAndCons handles POST /auth/advice.
func (h *CatalogHandler) ProsAndCons(c *fiber.Ctx) error {
	var req dto.AdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	answer, err := h.advisory.ProsAndCons(c.Context(), req.MaterialID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": answer})
}
