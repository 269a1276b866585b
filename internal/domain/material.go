package domain

import (
	"time"

	apperrors "github.com/spec-kit/materials-service/pkg/util"
)

// MaterialCategory is the fixed set of catalog categories.
type MaterialCategory string

const (
	CategoryKitchen    MaterialCategory = "Kitchen"
	CategoryBathroom   MaterialCategory = "Bathroom"
	CategoryWall       MaterialCategory = "Wall"
	CategoryCeiling    MaterialCategory = "Ceiling"
	CategoryFlooring   MaterialCategory = "Flooring"
	CategoryRoofing    MaterialCategory = "Roofing"
	CategoryInsulation MaterialCategory = "Insulation"
	CategoryOther      MaterialCategory = "Other"
)

// Sustainability classifies a material's environmental profile, following the
// LEED-derived buckets the catalog was seeded with.
type Sustainability string

const (
	SustainabilityRenewable      Sustainability = "Renewable Materials"
	SustainabilityRecyclable     Sustainability = "Recyclable Materials"
	SustainabilityLowImpact      Sustainability = "Low-Impact Materials"
	SustainabilityCertified      Sustainability = "Certified Sustainable Materials"
	SustainabilityNotSustainable Sustainability = "Not Sustainable"
)

// Material is a catalog item.
type Material struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Category       MaterialCategory `json:"category"`
	ImageURL       string           `json:"imageUrl"`
	Manufacturer   string           `json:"manufacturer"`
	Price          float64          `json:"price"`
	Sustainability Sustainability   `json:"sustainability"`
	CreatedBy      *string          `json:"createdBy,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Valid reports whether the value is one of the known categories.
func (c MaterialCategory) Valid() bool {
	switch c {
	case CategoryKitchen, CategoryBathroom, CategoryWall, CategoryCeiling,
		CategoryFlooring, CategoryRoofing, CategoryInsulation, CategoryOther:
		return true
	}
	return false
}

// Valid reports whether the value is one of the known ratings.
func (s Sustainability) Valid() bool {
	switch s {
	case SustainabilityRenewable, SustainabilityRecyclable, SustainabilityLowImpact,
		SustainabilityCertified, SustainabilityNotSustainable:
		return true
	}
	return false
}

// Validate checks field constraints ahead of a persistence write. An unset
// sustainability rating defaults to Not Sustainable.
func (m *Material) Validate() error {
	if m.Name == "" {
		return apperrors.NewValidationError("Name is required.", nil)
	}
	if m.Description == "" {
		return apperrors.NewValidationError("Description is required.", nil)
	}
	if !m.Category.Valid() {
		return apperrors.NewValidationError("Unknown category.", map[string]any{"category": m.Category})
	}
	if m.ImageURL == "" {
		return apperrors.NewValidationError("Image URL is required.", nil)
	}
	if m.Manufacturer == "" {
		return apperrors.NewValidationError("Manufacturer is required.", nil)
	}
	if m.Price < 0 {
		return apperrors.NewValidationError("Price must not be negative.", map[string]any{"price": m.Price})
	}
	if m.Sustainability == "" {
		m.Sustainability = SustainabilityNotSustainable
	}
	if !m.Sustainability.Valid() {
		return apperrors.NewValidationError("Unknown sustainability rating.", map[string]any{"sustainability": m.Sustainability})
	}
	return nil
}
