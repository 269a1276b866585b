package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/materials-service/internal/domain"
	"github.com/spec-kit/materials-service/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository mirroring the
// array semantics of the real one: append keeps duplicates, remove drops
// every occurrence.
type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, user := range users {
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	user.ID = uuid.NewString()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ReplaceWishList(_ context.Context, userID string, wishList []string) error {
	user, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.WishList = append([]string{}, wishList...)
	return nil
}

func (f *fakeUserRepo) AppendWishList(_ context.Context, userID, materialID string) error {
	user, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.WishList = append(user.WishList, materialID)
	return nil
}

func (f *fakeUserRepo) RemoveFromWishList(_ context.Context, userID, materialID string) ([]string, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	remaining := []string{}
	for _, id := range user.WishList {
		if id != materialID {
			remaining = append(remaining, id)
		}
	}
	user.WishList = remaining
	return remaining, nil
}

// fakeMaterialRepo is an in-memory repository.MaterialRepository.
type fakeMaterialRepo struct {
	materials   []*domain.Material
	searchCalls int
}

func newFakeMaterialRepo(materials ...*domain.Material) *fakeMaterialRepo {
	repo := &fakeMaterialRepo{}
	for _, material := range materials {
		if material.ID == "" {
			material.ID = uuid.NewString()
		}
		repo.materials = append(repo.materials, material)
	}
	return repo
}

func (f *fakeMaterialRepo) Create(_ context.Context, material *domain.Material) error {
	if err := material.Validate(); err != nil {
		return err
	}
	material.ID = uuid.NewString()
	f.materials = append(f.materials, material)
	return nil
}

func (f *fakeMaterialRepo) GetByID(_ context.Context, id string) (*domain.Material, error) {
	for _, material := range f.materials {
		if material.ID == id {
			return material, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMaterialRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Material, error) {
	found := []domain.Material{}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, material := range f.materials {
			if material.ID == id {
				found = append(found, *material)
			}
		}
	}
	return found, nil
}

func (f *fakeMaterialRepo) SearchByName(_ context.Context, query string, sortBy repository.MaterialSort) ([]domain.Material, error) {
	f.searchCalls++
	results := []domain.Material{}
	for _, material := range f.materials {
		if strings.Contains(strings.ToLower(material.Name), strings.ToLower(query)) {
			results = append(results, *material)
		}
	}
	switch sortBy {
	case repository.SortByName:
		sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	case repository.SortByPrice:
		sort.Slice(results, func(i, j int) bool { return results[i].Price < results[j].Price })
	}
	return results, nil
}

// fakeChatRepo records appended chat messages.
type fakeChatRepo struct {
	messages []domain.ChatMessage
}

func (f *fakeChatRepo) Create(_ context.Context, message *domain.ChatMessage) error {
	if err := message.Validate(); err != nil {
		return err
	}
	message.ID = uuid.NewString()
	f.messages = append(f.messages, *message)
	return nil
}

// fakeCache is a map-backed SearchCache.
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	payload, ok := f.entries[key]
	return payload, ok
}

func (f *fakeCache) Set(_ context.Context, key string, payload []byte) {
	f.entries[key] = payload
}

func (f *fakeCache) Invalidate(_ context.Context) {
	f.entries = map[string][]byte{}
}
