package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/materials-service/internal/api/http/handlers"
	"github.com/spec-kit/materials-service/internal/auth"
	"github.com/spec-kit/materials-service/internal/config"
	"github.com/spec-kit/materials-service/internal/domain"
	"github.com/spec-kit/materials-service/internal/observability"
	"github.com/spec-kit/materials-service/internal/repository"
	"github.com/spec-kit/materials-service/internal/service"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	user.ID = uuid.NewString()
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) ReplaceWishList(_ context.Context, userID string, wishList []string) error {
	user, ok := m.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.WishList = append([]string{}, wishList...)
	return nil
}

func (m *memUserRepo) AppendWishList(_ context.Context, userID, materialID string) error {
	user, ok := m.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.WishList = append(user.WishList, materialID)
	return nil
}

func (m *memUserRepo) RemoveFromWishList(_ context.Context, userID, materialID string) ([]string, error) {
	user, ok := m.users[userID]
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

type memMaterialRepo struct {
	materials []*domain.Material
}

func (m *memMaterialRepo) Create(_ context.Context, material *domain.Material) error {
	if err := material.Validate(); err != nil {
		return err
	}
	material.ID = uuid.NewString()
	m.materials = append(m.materials, material)
	return nil
}

func (m *memMaterialRepo) GetByID(_ context.Context, id string) (*domain.Material, error) {
	for _, material := range m.materials {
		if material.ID == id {
			return material, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memMaterialRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Material, error) {
	found := []domain.Material{}
	for _, id := range ids {
		for _, material := range m.materials {
			if material.ID == id {
				found = append(found, *material)
				break
			}
		}
	}
	return found, nil
}

func (m *memMaterialRepo) SearchByName(_ context.Context, _ string, _ repository.MaterialSort) ([]domain.Material, error) {
	results := []domain.Material{}
	for _, material := range m.materials {
		results = append(results, *material)
	}
	return results, nil
}

type memChatRepo struct{}

func (memChatRepo) Create(_ context.Context, message *domain.ChatMessage) error {
	if err := message.Validate(); err != nil {
		return err
	}
	message.ID = uuid.NewString()
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *service.AuthService) {
	t.Helper()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 6,
		BcryptCost:    bcrypt.MinCost,
	}}

	users := &memUserRepo{users: map[string]*domain.User{}}
	materials := &memMaterialRepo{}

	authService := service.NewAuthService(cfg, users, nil)
	profileService := service.NewProfileService(users, materials, nil)
	catalogService := service.NewCatalogService(materials, nil, nil)
	advisoryService := service.NewAdvisoryService(memChatRepo{}, materials, nil, nil)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService),
		Profile:        handlers.NewProfileHandler(profileService),
		Catalog:        handlers.NewCatalogHandler(catalogService, advisoryService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})
	return app, authService
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func signupBody() map[string]any {
	return map[string]any{
		"email":           "user@example.com",
		"password":        "Abcdef1",
		"username":        "builder",
		"agreeToTerms":    true,
		"userType":        "Professional",
		"company":         "Oakworks",
		"iAmInterestedIn": "Both",
	}
}

func TestSignupEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/signup", "", signupBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "response should contain user")
	assert.Equal(t, "user@example.com", user["email"])
	assert.Equal(t, "builder", user["username"])
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	t.Run("duplicate email rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/auth/signup", "", signupBody())
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		weak := signupBody()
		weak["email"] = "other@example.com"
		weak["password"] = "abcdef"
		resp, _ := doJSON(t, app, http.MethodPost, "/auth/signup", "", weak)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginAndVerifyEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	_, signup := doJSON(t, app, http.MethodPost, "/auth/signup", "", signupBody())
	userID := signup["user"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "user@example.com",
		"password": "Abcdef1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["authToken"].(string)
	require.NotEmpty(t, token)

	t.Run("verify echoes token payload", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/auth/verify", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, userID, body["id"])
		assert.Equal(t, "user@example.com", body["email"])
		assert.Equal(t, "builder", body["username"])
	})

	t.Run("verify without token", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/auth/verify", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("verify with tampered token", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/auth/verify", token[:len(token)-2]+"xx", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
			"email":    "user@example.com",
			"password": "Wrong1pw",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestWishlistAndProfileEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/auth/signup", "", signupBody())
	_, login := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "user@example.com",
		"password": "Abcdef1",
	})
	token := login["authToken"].(string)

	materialID := uuid.NewString()
	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/auth/wishlist/add", token, map[string]any{
			"materialId": materialID,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	t.Run("remove drops all occurrences", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodDelete, "/auth/wishlist/remove/"+materialID, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		wishList, ok := body["wishList"].([]any)
		require.True(t, ok)
		assert.Empty(t, wishList)
	})

	t.Run("replace with empty array clears", func(t *testing.T) {
		doJSON(t, app, http.MethodPost, "/auth/wishlist/add", token, map[string]any{"materialId": materialID})

		resp, _ := doJSON(t, app, http.MethodPut, "/auth/profile", token, map[string]any{"wishList": []string{}})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, app, http.MethodGet, "/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		profile := body["profile"].(map[string]any)
		assert.Empty(t, profile["wishList"])
	})

	t.Run("profile hides password hash", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		profile := body["profile"].(map[string]any)
		assert.NotContains(t, profile, "password")
		assert.NotContains(t, profile, "passwordHash")
	})
}

func TestProfileMissingUser(t *testing.T) {
	app, authService := newTestApp(t)

	// token for a user the store has never seen
	token, _, err := authService.TokenManager().Issue(auth.Identity{
		ID: uuid.NewString(), Email: "ghost@example.com", Username: "ghost",
	})
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodGet, "/auth/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchEndpointPublic(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/search?query=oak&sortBy=price", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var results []any
	require.NoError(t, json.Unmarshal(raw, &results))
	assert.Empty(t, results)
}

func TestCreateMaterialEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/auth/signup", "", signupBody())
	_, login := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "user@example.com",
		"password": "Abcdef1",
	})
	token := login["authToken"].(string)

	payload := map[string]any{
		"name":         "Oak Plank",
		"description":  "Solid oak flooring plank",
		"category":     "Flooring",
		"imageUrl":     "https://example.com/oak.jpg",
		"manufacturer": "Oakworks",
		"price":        42.5,
	}

	t.Run("requires auth", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/auth/materials", "", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	resp, body := doJSON(t, app, http.MethodPost, "/auth/materials", token, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	material := body["material"].(map[string]any)
	assert.Equal(t, "Oak Plank", material["name"])
	assert.Equal(t, "Not Sustainable", material["sustainability"])
	assert.NotEmpty(t, material["createdBy"])
}

func TestAdviceEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("unknown material", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/auth/advice", "", map[string]any{
			"materialId": uuid.NewString(),
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("no generator configured", func(t *testing.T) {
		doJSON(t, app, http.MethodPost, "/auth/signup", "", signupBody())
		_, login := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
			"email":    "user@example.com",
			"password": "Abcdef1",
		})
		token := login["authToken"].(string)

		_, created := doJSON(t, app, http.MethodPost, "/auth/materials", token, map[string]any{
			"name":         "Oak Plank",
			"description":  "Solid oak flooring plank",
			"category":     "Flooring",
			"imageUrl":     "https://example.com/oak.jpg",
			"manufacturer": "Oakworks",
			"price":        42.5,
		})
		materialID := created["material"].(map[string]any)["id"].(string)

		resp, _ := doJSON(t, app, http.MethodPost, "/auth/advice", "", map[string]any{
			"materialId": materialID,
		})
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
