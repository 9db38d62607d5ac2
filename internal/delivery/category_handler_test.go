package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"catalog_service/internal/domain"
	"catalog_service/internal/repository"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// --- Helpers ---

type envelope struct {
	Status  string          `json:"status"`
	Results *int            `json:"results"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Stack   string          `json:"stack"`
}

func newTestRouter(categories []domain.Category, products []domain.Product) *gin.Engine {
	logger, _ := test.NewNullLogger()
	uc := usecase.NewCategoryUseCase(
		repository.NewMemoryCategoryRepository(categories, logger),
		repository.NewMemoryProductRepository(products, logger),
		"",
		logger,
	)
	return NewRouter(NewCategoryHandler(uc, logger), logger, false)
}

func newStubRouter(uc usecase.CategoryUseCase, development bool) *gin.Engine {
	logger, _ := test.NewNullLogger()
	return NewRouter(NewCategoryHandler(uc, logger), logger, development)
}

func performRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func decodeCategory(t *testing.T, env envelope) domain.Category {
	t.Helper()
	var c domain.Category
	require.NoError(t, json.Unmarshal(env.Data, &c))
	return c
}

func decodeCategories(t *testing.T, env envelope) []domain.Category {
	t.Helper()
	var list []domain.Category
	require.NoError(t, json.Unmarshal(env.Data, &list))
	return list
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Denim Jacket", Slug: "denim-jacket", Price: decimal.NewFromInt(80), CategoryID: 1, Images: []string{}},
		{ID: 2, Title: "Running Shoes", Slug: "running-shoes", Price: decimal.NewFromInt(120), CategoryID: 2, Images: []string{}},
		{ID: 3, Title: "Sandals", Slug: "sandals", Price: decimal.RequireFromString("19.99"), CategoryID: 2, Images: []string{}},
	}
}

// --- Stub UseCase ---

type stubUseCase struct {
	err      error
	panicVal interface{}
}

func (s *stubUseCase) result() error {
	if s.panicVal != nil {
		panic(s.panicVal)
	}
	return s.err
}

func (s *stubUseCase) ListCategories(ctx context.Context, nameFilter string) ([]domain.Category, error) {
	return nil, s.result()
}

func (s *stubUseCase) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	return nil, s.result()
}

func (s *stubUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return nil, s.result()
}

func (s *stubUseCase) ListProductsByCategory(ctx context.Context, id int) ([]domain.Product, error) {
	return nil, s.result()
}

func (s *stubUseCase) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	return nil, s.result()
}

func (s *stubUseCase) UpdateCategory(ctx context.Context, id int, input domain.CategoryInput) (*domain.Category, error) {
	return nil, s.result()
}

func (s *stubUseCase) DeleteCategory(ctx context.Context, id int) error {
	return s.result()
}

// --- Tests: GET /api/v1/categories ---

func TestHandleListCategories(t *testing.T) {
	testCases := []struct {
		name          string
		url           string
		expectedNames []string
	}{
		{name: "All categories", url: "/api/v1/categories", expectedNames: []string{"Clothes", "Electronics", "Furniture", "Miscellaneous"}},
		{name: "Filter by name", url: "/api/v1/categories?name=FURN", expectedNames: []string{"Furniture"}},
		{name: "Empty filter is ignored", url: "/api/v1/categories?name=", expectedNames: []string{"Clothes", "Electronics", "Furniture", "Miscellaneous"}},
		{name: "No match", url: "/api/v1/categories?name=garden", expectedNames: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(repository.SeedCategories(), nil)

			rec := performRequest(router, http.MethodGet, tc.url, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, "success", env.Status)
			require.NotNil(t, env.Results)
			assert.Equal(t, len(tc.expectedNames), *env.Results)
			assert.Equal(t, "[", string(env.Data[:1]), "data must be an array")

			names := []string{}
			for _, c := range decodeCategories(t, env) {
				names = append(names, c.Name)
			}
			assert.Equal(t, tc.expectedNames, names)
		})
	}
}

// --- Tests: GET /api/v1/categories/:id and /slug/:slug ---

func TestHandleGetCategory(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		expectedStatusCode int
		expectedMessage    string
		expectedSlug       string
	}{
		{name: "By id", url: "/api/v1/categories/2", expectedStatusCode: http.StatusOK, expectedSlug: "electronics"},
		{name: "By slug", url: "/api/v1/categories/slug/furniture", expectedStatusCode: http.StatusOK, expectedSlug: "furniture"},
		{name: "Unknown id", url: "/api/v1/categories/99", expectedStatusCode: http.StatusNotFound, expectedMessage: "Category with ID 99 not found"},
		{name: "Non-numeric id", url: "/api/v1/categories/abc", expectedStatusCode: http.StatusNotFound, expectedMessage: "Category with ID abc not found"},
		{name: "Unknown slug", url: "/api/v1/categories/slug/garden", expectedStatusCode: http.StatusNotFound, expectedMessage: `Category with slug "garden" not found`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(repository.SeedCategories(), nil)

			rec := performRequest(router, http.MethodGet, tc.url, "")

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			env := decodeEnvelope(t, rec)
			if tc.expectedStatusCode == http.StatusOK {
				assert.Equal(t, "success", env.Status)
				assert.Nil(t, env.Results)
				assert.Equal(t, tc.expectedSlug, decodeCategory(t, env).Slug)
				return
			}
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tc.expectedMessage, env.Message)
			assert.Empty(t, env.Stack)
		})
	}
}

// --- Tests: GET /api/v1/categories/:id/products ---

func TestHandleListProductsByCategory(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		expectedStatusCode int
		expectedIDs        []int
	}{
		{name: "Category with products", url: "/api/v1/categories/2/products", expectedStatusCode: http.StatusOK, expectedIDs: []int{2, 3}},
		{name: "Category without products", url: "/api/v1/categories/3/products", expectedStatusCode: http.StatusOK, expectedIDs: []int{}},
		{name: "Unknown category", url: "/api/v1/categories/42/products", expectedStatusCode: http.StatusNotFound},
		{name: "Non-numeric category", url: "/api/v1/categories/shoes/products", expectedStatusCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(repository.SeedCategories(), testProducts())

			rec := performRequest(router, http.MethodGet, tc.url, "")

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			env := decodeEnvelope(t, rec)
			if tc.expectedStatusCode != http.StatusOK {
				assert.Equal(t, "error", env.Status)
				return
			}

			var products []domain.Product
			require.NoError(t, json.Unmarshal(env.Data, &products))
			require.NotNil(t, env.Results)
			assert.Equal(t, len(tc.expectedIDs), *env.Results)
			ids := []int{}
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

// --- Tests: POST /api/v1/categories ---

func TestHandleCreateCategory(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		expectedStatusCode int
		checkResponse      func(t *testing.T, env envelope)
	}{
		{
			name:               "Success",
			requestBody:        `{"name":"Shoes"}`,
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, env envelope) {
				c := decodeCategory(t, env)
				assert.Equal(t, 2, c.ID)
				assert.Equal(t, "Shoes", c.Name)
				assert.Equal(t, "shoes", c.Slug)
				assert.Equal(t, usecase.DefaultPlaceholderImage, c.Image)
				assert.False(t, c.CreationAt.IsZero())
				assert.Equal(t, c.CreationAt, c.UpdatedAt)
			},
		},
		{
			name:               "Success with image",
			requestBody:        `{"name":"  Garden & Patio ","image":"https://example.com/garden.png"}`,
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, env envelope) {
				c := decodeCategory(t, env)
				assert.Equal(t, "Garden & Patio", c.Name)
				assert.Equal(t, "garden-patio", c.Slug)
				assert.Equal(t, "https://example.com/garden.png", c.Image)
			},
		},
		{
			name:               "Non-string image falls back to placeholder",
			requestBody:        `{"name":"Toys","image":42}`,
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, env envelope) {
				assert.Equal(t, usecase.DefaultPlaceholderImage, decodeCategory(t, env).Image)
			},
		},
		{
			name:               "Missing name",
			requestBody:        `{"image":"https://example.com/x.png"}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, env envelope) {
				assert.Equal(t, "Name is required and must be a non-empty string", env.Message)
			},
		},
		{
			name:               "Name is not a string",
			requestBody:        `{"name":123}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, env envelope) {
				assert.Equal(t, "Name is required and must be a non-empty string", env.Message)
			},
		},
		{
			name:               "Blank name",
			requestBody:        `{"name":"   "}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Empty body",
			requestBody:        "",
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, env envelope) {
				assert.Equal(t, "Name is required and must be a non-empty string", env.Message)
			},
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{invalid json`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, env envelope) {
				assert.True(t, strings.HasPrefix(env.Message, "Invalid request body"))
			},
		},
		{
			name:               "Duplicate slug",
			requestBody:        `{"name":"CLOTHES"}`,
			expectedStatusCode: http.StatusConflict,
			checkResponse: func(t *testing.T, env envelope) {
				assert.Equal(t, `Category with slug "clothes" already exists`, env.Message)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			router := newTestRouter([]domain.Category{{ID: 1, Name: "Clothes", Slug: "clothes"}}, nil)

			// Act
			rec := performRequest(router, http.MethodPost, "/api/v1/categories", tc.requestBody)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			env := decodeEnvelope(t, rec)
			if tc.expectedStatusCode < 300 {
				assert.Equal(t, "success", env.Status)
			} else {
				assert.Equal(t, "error", env.Status)
			}
			if tc.checkResponse != nil {
				tc.checkResponse(t, env)
			}
		})
	}
}

// --- Tests: PATCH /api/v1/categories/:id ---

func TestHandleUpdateCategory(t *testing.T) {
	seed := func() []domain.Category {
		return []domain.Category{
			{ID: 1, Name: "Clothes", Slug: "clothes", Image: "https://example.com/clothes.png"},
			{ID: 2, Name: "Shoes", Slug: "shoes", Image: "https://example.com/shoes.png"},
		}
	}

	testCases := []struct {
		name               string
		url                string
		requestBody        string
		expectedStatusCode int
		checkResponse      func(t *testing.T, env envelope)
	}{
		{
			name:               "Rename",
			url:                "/api/v1/categories/2",
			requestBody:        `{"name":"Sneakers"}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, env envelope) {
				c := decodeCategory(t, env)
				assert.Equal(t, "Sneakers", c.Name)
				assert.Equal(t, "sneakers", c.Slug)
				assert.Equal(t, "https://example.com/shoes.png", c.Image)
			},
		},
		{
			name:               "Image only",
			url:                "/api/v1/categories/1",
			requestBody:        `{"image":"https://example.com/new.png"}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, env envelope) {
				c := decodeCategory(t, env)
				assert.Equal(t, "Clothes", c.Name)
				assert.Equal(t, "clothes", c.Slug)
				assert.Equal(t, "https://example.com/new.png", c.Image)
				assert.True(t, c.UpdatedAt.After(c.CreationAt))
			},
		},
		{
			name:               "Nothing applicable",
			url:                "/api/v1/categories/1",
			requestBody:        `{"name":"  ","image":7}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, env envelope) {
				c := decodeCategory(t, env)
				assert.Equal(t, "Clothes", c.Name)
				assert.True(t, c.UpdatedAt.IsZero())
			},
		},
		{
			name:               "Empty body",
			url:                "/api/v1/categories/1",
			requestBody:        "",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Slug taken by another category",
			url:                "/api/v1/categories/2",
			requestBody:        `{"name":"clothes"}`,
			expectedStatusCode: http.StatusConflict,
			checkResponse: func(t *testing.T, env envelope) {
				assert.Equal(t, `Slug "clothes" is already in use by another category`, env.Message)
			},
		},
		{
			name:               "Unknown id",
			url:                "/api/v1/categories/9",
			requestBody:        `{"name":"Toys"}`,
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, env envelope) {
				assert.Equal(t, "Category with ID 9 not found", env.Message)
			},
		},
		{
			name:               "Invalid JSON body",
			url:                "/api/v1/categories/1",
			requestBody:        `{"name":`,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(seed(), nil)

			rec := performRequest(router, http.MethodPatch, tc.url, tc.requestBody)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			env := decodeEnvelope(t, rec)
			if tc.checkResponse != nil {
				tc.checkResponse(t, env)
			}
		})
	}
}

// --- Tests: DELETE /api/v1/categories/:id ---

func TestHandleDeleteCategory(t *testing.T) {
	router := newTestRouter(repository.SeedCategories(), nil)

	rec := performRequest(router, http.MethodDelete, "/api/v1/categories/3", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = performRequest(router, http.MethodDelete, "/api/v1/categories/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category with ID 3 not found", decodeEnvelope(t, rec).Message)

	rec = performRequest(router, http.MethodGet, "/api/v1/categories", "")
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Results)
	assert.Equal(t, 3, *env.Results)
}

// --- Tests: full lifecycle ---

func TestCategoryLifecycle(t *testing.T) {
	router := newTestRouter([]domain.Category{{ID: 1, Name: "Clothes", Slug: "clothes"}}, testProducts())

	rec := performRequest(router, http.MethodPost, "/api/v1/categories", `{"name":"Shoes"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeCategory(t, decodeEnvelope(t, rec))
	assert.Equal(t, 2, created.ID)
	assert.Equal(t, "shoes", created.Slug)
	assert.Equal(t, usecase.DefaultPlaceholderImage, created.Image)

	rec = performRequest(router, http.MethodGet, "/api/v1/categories/slug/shoes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decodeCategory(t, decodeEnvelope(t, rec)).ID)

	rec = performRequest(router, http.MethodGet, "/api/v1/categories/2/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Results)
	assert.Equal(t, 2, *env.Results)

	rec = performRequest(router, http.MethodDelete, "/api/v1/categories/2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = performRequest(router, http.MethodGet, "/api/v1/categories/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAfterDeleteReusesHighestID(t *testing.T) {
	router := newTestRouter(repository.SeedCategories(), nil)

	rec := performRequest(router, http.MethodPost, "/api/v1/categories", `{"name":"Shoes"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 5, decodeCategory(t, decodeEnvelope(t, rec)).ID)

	rec = performRequest(router, http.MethodDelete, "/api/v1/categories/5", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = performRequest(router, http.MethodPost, "/api/v1/categories", `{"name":"Hats"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 5, decodeCategory(t, decodeEnvelope(t, rec)).ID)
}

func TestTrailingSlashRoutes(t *testing.T) {
	router := newTestRouter(repository.SeedCategories(), testProducts())

	testCases := []struct {
		method   string
		url      string
		body     string
		expected int
	}{
		{method: http.MethodGet, url: "/api/v1/categories/", expected: http.StatusOK},
		{method: http.MethodGet, url: "/api/v1/categories/1/", expected: http.StatusOK},
		{method: http.MethodGet, url: "/api/v1/categories/slug/clothes/", expected: http.StatusOK},
		{method: http.MethodGet, url: "/api/v1/categories/1/products/", expected: http.StatusOK},
		{method: http.MethodPost, url: "/api/v1/categories/", body: `{"name":"Shoes"}`, expected: http.StatusCreated},
		{method: http.MethodPatch, url: "/api/v1/categories/2/", body: `{"image":"https://img.example/e.png"}`, expected: http.StatusOK},
		{method: http.MethodDelete, url: "/api/v1/categories/3/", expected: http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.url, func(t *testing.T) {
			rec := performRequest(router, tc.method, tc.url, tc.body)

			assert.Equal(t, tc.expected, rec.Code)
			assert.Empty(t, rec.Header().Get("Location"))
			if tc.expected != http.StatusNoContent {
				assert.Equal(t, "success", decodeEnvelope(t, rec).Status)
			}
		})
	}
}

// --- Tests: failures outside the domain ---

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(nil, nil)

	for _, url := range []string{"/", "/api/v1/products", "/api/v1/categories/1/products/2"} {
		rec := performRequest(router, http.MethodGet, url, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, url)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, "Not Found", env.Message)
		assert.Empty(t, env.Stack)
	}
}

func TestUnknownRouteStackInDevelopment(t *testing.T) {
	router := newStubRouter(&stubUseCase{}, true)

	rec := performRequest(router, http.MethodGet, "/api/v1/products", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Not Found", env.Message)
	assert.Contains(t, env.Stack, "goroutine")
}

func TestInternalErrors(t *testing.T) {
	testCases := []struct {
		name        string
		useCase     *stubUseCase
		development bool
		method      string
		url         string
		message     string
		expectStack bool
	}{
		{
			name:    "Repository error in production",
			useCase: &stubUseCase{err: errors.New("db down")},
			method:  http.MethodGet, url: "/api/v1/categories",
			message: "db down",
		},
		{
			name:        "Repository error in development",
			useCase:     &stubUseCase{err: errors.New("db down")},
			development: true,
			method:      http.MethodDelete, url: "/api/v1/categories/1",
			message:     "db down",
			expectStack: true,
		},
		{
			name:    "Panic in production",
			useCase: &stubUseCase{panicVal: "boom"},
			method:  http.MethodGet, url: "/api/v1/categories/slug/x",
			message: "boom",
		},
		{
			name:        "Panic with error value in development",
			useCase:     &stubUseCase{panicVal: errors.New("nil map write")},
			development: true,
			method:      http.MethodPost, url: "/api/v1/categories",
			message:     "nil map write",
			expectStack: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newStubRouter(tc.useCase, tc.development)

			rec := performRequest(router, tc.method, tc.url, `{"name":"x"}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tc.message, env.Message)
			if tc.expectStack {
				assert.Contains(t, env.Stack, "goroutine")
			} else {
				assert.Empty(t, env.Stack)
			}
		})
	}
}

func TestClientErrorsNeverCarryStack(t *testing.T) {
	router := newStubRouter(&stubUseCase{err: domain.CategoryNotFound(5)}, true)

	rec := performRequest(router, http.MethodGet, "/api/v1/categories/5", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, decodeEnvelope(t, rec).Stack)
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec = performRequest(router, http.MethodGet, "/health", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestRequestLoggerFields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	uc := usecase.NewCategoryUseCase(
		repository.NewMemoryCategoryRepository(repository.SeedCategories(), logger),
		repository.NewMemoryProductRepository(nil, logger),
		"",
		logger,
	)
	router := NewRouter(NewCategoryHandler(uc, logger), logger, false)

	testCases := []struct {
		url    string
		status int
		route  string
		level  logrus.Level
	}{
		{url: "/api/v1/categories/1", status: http.StatusOK, route: "/api/v1/categories/:id", level: logrus.InfoLevel},
		{url: "/api/v1/categories/999", status: http.StatusNotFound, route: "/api/v1/categories/:id", level: logrus.WarnLevel},
		{url: "/nowhere", status: http.StatusNotFound, route: "", level: logrus.WarnLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			hook.Reset()
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			req.Header.Set(RequestIDHeader, "req-42")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tc.level, entry.Level)
			assert.Equal(t, "req-42", entry.Data["request_id"])
			assert.Equal(t, tc.status, entry.Data["status"])
			assert.Equal(t, tc.route, entry.Data["route"])
			assert.Equal(t, http.MethodGet, entry.Data["method"])
		})
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := performRequest(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":{"status":"ok"}}`, rec.Body.String())
}

func TestMapErrorToStatus(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{err: domain.CategoryNotFound(1), expected: http.StatusNotFound},
		{err: domain.NewError(domain.ErrConflict, "taken"), expected: http.StatusConflict},
		{err: domain.NewError(domain.ErrInvalidInput, "bad"), expected: http.StatusBadRequest},
		{err: errors.New("category not found"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, mapErrorToStatus(tc.err))
		})
	}
}
