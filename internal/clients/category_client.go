package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
)

const categoriesPath = "/api/v1/categories"

type CategoryClient interface {
	List(ctx context.Context, name string) ([]domain.Category, error)
	Get(ctx context.Context, id int) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Products(ctx context.Context, id int) ([]domain.Product, error)
	Create(ctx context.Context, name string, image *string) (*domain.Category, error)
	Update(ctx context.Context, id int, name, image *string) (*domain.Category, error)
	Delete(ctx context.Context, id int) error
}

type categoryHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewCategoryHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) CategoryClient {
	return &categoryHTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Results *int            `json:"results"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type categoryPayload struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
}

// do sends the request and decodes the envelope's data into out. Error
// envelopes come back as errors that unwrap to the matching domain kind.
func (c *categoryHTTPClient) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create catalog request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debugf("CategoryClient: %s %s", method, req.URL.String())
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CategoryClient: %s %s failed: %v", method, path, err)
		return fmt.Errorf("failed to communicate with catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Errorf("CategoryClient: Failed to decode %s %s response (status %d): %v", method, path, resp.StatusCode, err)
		return fmt.Errorf("failed to decode catalog response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Debugf("CategoryClient: %s %s returned status %d: %s", method, path, resp.StatusCode, env.Message)
		return statusError(resp.StatusCode, env.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode catalog data: %w", err)
	}
	return nil
}

func statusError(statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	switch statusCode {
	case http.StatusBadRequest:
		return domain.NewError(domain.ErrInvalidInput, "%s", message)
	case http.StatusNotFound:
		return domain.NewError(domain.ErrNotFound, "%s", message)
	case http.StatusConflict:
		return domain.NewError(domain.ErrConflict, "%s", message)
	default:
		return fmt.Errorf("catalog service returned status %d: %s", statusCode, message)
	}
}

func (c *categoryHTTPClient) List(ctx context.Context, name string) ([]domain.Category, error) {
	path := categoriesPath
	if name != "" {
		path += "?" + url.Values{"name": []string{name}}.Encode()
	}
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, path, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *categoryHTTPClient) Get(ctx context.Context, id int) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodGet, categoriesPath+"/"+strconv.Itoa(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *categoryHTTPClient) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodGet, categoriesPath+"/slug/"+url.PathEscape(slug), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *categoryHTTPClient) Products(ctx context.Context, id int) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, categoriesPath+"/"+strconv.Itoa(id)+"/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *categoryHTTPClient) Create(ctx context.Context, name string, image *string) (*domain.Category, error) {
	var category domain.Category
	payload := categoryPayload{Name: &name, Image: image}
	if err := c.do(ctx, http.MethodPost, categoriesPath, payload, &category); err != nil {
		return nil, err
	}
	c.log.Infof("CategoryClient: Created category ID %d (%s)", category.ID, category.Slug)
	return &category, nil
}

func (c *categoryHTTPClient) Update(ctx context.Context, id int, name, image *string) (*domain.Category, error) {
	var category domain.Category
	payload := categoryPayload{Name: name, Image: image}
	if err := c.do(ctx, http.MethodPatch, categoriesPath+"/"+strconv.Itoa(id), payload, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *categoryHTTPClient) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, categoriesPath+"/"+strconv.Itoa(id), nil, nil)
}
