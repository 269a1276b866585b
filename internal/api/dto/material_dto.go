package dto

import "github.com/spec-kit/materials-service/internal/domain"

// CreateMaterialRequest payload for new catalog items.
type CreateMaterialRequest struct {
	Name           string                  `json:"name"`
	Description    string                  `json:"description"`
	Category       domain.MaterialCategory `json:"category"`
	ImageURL       string                  `json:"imageUrl"`
	Manufacturer   string                  `json:"manufacturer"`
	Price          float64                 `json:"price"`
	Sustainability domain.Sustainability   `json:"sustainability"`
}

// ToDomain maps the request to a domain material.
func (r CreateMaterialRequest) ToDomain() *domain.Material {
	return &domain.Material{
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		ImageURL:       r.ImageURL,
		Manufacturer:   r.Manufacturer,
		Price:          r.Price,
		Sustainability: r.Sustainability,
	}
}

// AdviceRequest asks for the pros and cons of a material.
type AdviceRequest struct {
	MaterialID string `json:"materialId"`
}
