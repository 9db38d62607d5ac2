package delivery

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"catalog_service/internal/domain"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const CategoriesBasePath = "/api/v1/categories"

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes binds every route both with and without a trailing slash.
func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group(CategoriesBasePath)
	{
		handle(categories, http.MethodGet, "", h.ListCategories)
		handle(categories, http.MethodPost, "", h.CreateCategory)
		handle(categories, http.MethodGet, "/slug/:slug", h.GetCategoryBySlug)
		handle(categories, http.MethodGet, "/:id", h.GetCategoryByID)
		handle(categories, http.MethodGet, "/:id/products", h.ListProductsByCategory)
		handle(categories, http.MethodPatch, "/:id", h.UpdateCategory)
		handle(categories, http.MethodDelete, "/:id", h.DeleteCategory)
	}
}

func handle(group *gin.RouterGroup, method, path string, handler gin.HandlerFunc) {
	group.Handle(method, path, handler)
	group.Handle(method, path+"/", handler)
}

// categoryRequest accepts any JSON type so that a present but non-string
// field can be told apart from a malformed body.
type categoryRequest struct {
	Name  interface{} `json:"name"`
	Image interface{} `json:"image"`
}

func (r categoryRequest) input() domain.CategoryInput {
	return domain.CategoryInput{
		Name:  stringField(r.Name),
		Image: stringField(r.Image),
	}
}

func stringField(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// bindCategoryRequest treats an empty body as an empty object.
func bindCategoryRequest(c *gin.Context) (categoryRequest, error) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

// parseID reports false for anything strconv.Atoi rejects; such ids can never
// match a stored category.
func (h *CategoryHandler) parseID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		h.log.Debugf("Non-numeric category ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusNotFound, "Category with ID "+idStr+" not found")
		return 0, false
	}
	return id, true
}

func (h *CategoryHandler) fail(c *gin.Context, err error, action string) {
	statusCode := mapErrorToStatus(err)
	if statusCode >= http.StatusInternalServerError {
		h.log.Errorf("Failed to %s: %v", action, err)
	} else {
		h.log.Debugf("Rejected %s: %v", action, err)
	}
	ErrorResponse(c, statusCode, err.Error())
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.fail(c, err, "list categories")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	h.log.Debugf("Retrieved %d categories", len(categories))
	ListResponse(c, http.StatusOK, len(categories), categories)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	category, err := h.useCase.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get category by ID")
		return
	}
	SuccessResponse(c, http.StatusOK, category)
}

func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.useCase.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "get category by slug")
		return
	}
	SuccessResponse(c, http.StatusOK, category)
}

func (h *CategoryHandler) ListProductsByCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	products, err := h.useCase.ListProductsByCategory(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "list products by category")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	ListResponse(c, http.StatusOK, len(products), products)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	req, err := bindCategoryRequest(c)
	if err != nil {
		h.log.Debugf("Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.CreateCategory(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err, "create category")
		return
	}

	h.log.Infof("Category created successfully: ID %d, Slug %s", created.ID, created.Slug)
	SuccessResponse(c, http.StatusCreated, created)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	req, err := bindCategoryRequest(c)
	if err != nil {
		h.log.Debugf("Failed to bind JSON for update category ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.useCase.UpdateCategory(c.Request.Context(), id, req.input())
	if err != nil {
		h.fail(c, err, "update category")
		return
	}
	SuccessResponse(c, http.StatusOK, updated)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.useCase.DeleteCategory(c.Request.Context(), id); err != nil {
		h.fail(c, err, "delete category")
		return
	}

	h.log.Infof("Category deleted successfully: ID %d", id)
	c.Status(http.StatusNoContent)
}
