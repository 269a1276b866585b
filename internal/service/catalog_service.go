package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/materials-service/internal/domain"
	"github.com/spec-kit/materials-service/internal/events"
	"github.com/spec-kit/materials-service/internal/repository"
)

// SearchCache is the cache the catalog reads through. Satisfied by
// persistence.SearchCache.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	Invalidate(ctx context.Context)
}

// CatalogService serves material creation and search.
type CatalogService struct {
	materials  repository.MaterialRepository
	cache      SearchCache
	dispatcher events.Dispatcher
}

// NewCatalogService builds the service. The cache may be nil.
func NewCatalogService(materials repository.MaterialRepository, cache SearchCache, dispatcher events.Dispatcher) *CatalogService {
	return &CatalogService{materials: materials, cache: cache, dispatcher: dispatcher}
}

// CreateMaterial validates and persists a new catalog item owned by the
// authenticated user, then drops stale search results.
func (s *CatalogService) CreateMaterial(ctx context.Context, creatorID string, material *domain.Material) error {
	if creatorID != "" {
		material.CreatedBy = &creatorID
	}
	if err := s.materials.Create(ctx, material); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMaterialCreated,
			SubjectID: material.ID,
			Timestamp: time.Now(),
			Payload: events.MaterialCreatedPayload{
				Name:     material.Name,
				Category: material.Category,
				Price:    material.Price,
			},
		})
	}
	return nil
}

// Search runs a case-insensitive substring match on material names. sortBy
// values other than name or price fall back to the store's insertion order.
// Results are cached per (query, sortBy) pair.
func (s *CatalogService) Search(ctx context.Context, query, sortBy string) ([]domain.Material, error) {
	sort := repository.MaterialSort("")
	switch sortBy {
	case string(repository.SortByName):
		sort = repository.SortByName
	case string(repository.SortByPrice):
		sort = repository.SortByPrice
	}

	cacheKey := query + "|" + string(sort)
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached []domain.Material
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	results, err := s.materials.SearchByName(ctx, query, sort)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(results); err == nil {
			s.cache.Set(ctx, cacheKey, payload)
		}
	}
	return results, nil
}
