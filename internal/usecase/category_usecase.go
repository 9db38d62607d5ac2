package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"catalog_service/internal/domain"
	"catalog_service/internal/slug"

	"github.com/sirupsen/logrus"
)

const DefaultPlaceholderImage = "https://placehold.co/600x400?text=No+Image"

type CategoryUseCase interface {
	ListCategories(ctx context.Context, nameFilter string) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, categorySlug string) (*domain.Category, error)
	ListProductsByCategory(ctx context.Context, id int) ([]domain.Product, error)
	CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int, input domain.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type categoryUseCase struct {
	categoryRepo     domain.CategoryRepository
	productRepo      domain.ProductRepository
	placeholderImage string
	log              *logrus.Logger

	// mu serializes check-then-write sequences so slug uniqueness holds
	// across concurrent requests.
	mu  sync.Mutex
	now func() time.Time
}

func NewCategoryUseCase(categoryRepo domain.CategoryRepository, productRepo domain.ProductRepository, placeholderImage string, logger *logrus.Logger) CategoryUseCase {
	if placeholderImage == "" {
		placeholderImage = DefaultPlaceholderImage
	}
	return &categoryUseCase{
		categoryRepo:     categoryRepo,
		productRepo:      productRepo,
		placeholderImage: placeholderImage,
		log:              logger,
		now:              time.Now,
	}
}

func (uc *categoryUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Millisecond)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, nameFilter string) ([]domain.Category, error) {
	uc.log.Debugf("Use Case: Attempting to list categories (name filter '%s')", nameFilter)

	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}

	if nameFilter == "" {
		return categories, nil
	}

	needle := strings.ToLower(nameFilter)
	filtered := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			filtered = append(filtered, c)
		}
	}
	uc.log.Debugf("Use Case: %d of %d categories match '%s'", len(filtered), len(categories), nameFilter)
	return filtered, nil
}

func (uc *categoryUseCase) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Debugf("Use Case: Repository failed to get category ID %d: %v", id, err)
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) GetCategoryBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		uc.log.Debugf("Use Case: Repository failed to get category slug '%s': %v", categorySlug, err)
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) ListProductsByCategory(ctx context.Context, id int) ([]domain.Product, error) {
	if _, err := uc.categoryRepo.GetCategoryByID(ctx, id); err != nil {
		uc.log.Debugf("Use Case: Cannot list products, category ID %d unavailable: %v", id, err)
		return nil, err
	}

	products, err := uc.productRepo.ListProductsByCategory(ctx, id)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products for category %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve products for category %d: %w", id, err)
	}
	return products, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		uc.log.Warn("Use Case: Attempted to create category without a usable name")
		return nil, domain.NewError(domain.ErrInvalidInput, "Name is required and must be a non-empty string")
	}

	name := strings.TrimSpace(*input.Name)
	newSlug := slug.Make(name)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ensureSlugFree(ctx, newSlug, 0); err != nil {
		return nil, err
	}

	image := uc.placeholderImage
	if input.Image != nil && *input.Image != "" {
		image = *input.Image
	}

	now := uc.timestamp()
	created, err := uc.categoryRepo.CreateCategory(ctx, &domain.Category{
		Name:       name,
		Slug:       newSlug,
		Image:      image,
		CreationAt: now,
		UpdatedAt:  now,
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id int, input domain.CategoryInput) (*domain.Category, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Debugf("Use Case: Update rejected, category ID %d unavailable: %v", id, err)
		return nil, err
	}

	updated := false

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		name := strings.TrimSpace(*input.Name)
		newSlug := slug.Make(name)
		if err := uc.ensureSlugFree(ctx, newSlug, id); err != nil {
			return nil, err
		}
		category.Name = name
		category.Slug = newSlug
		updated = true
	}

	if input.Image != nil && *input.Image != "" {
		category.Image = *input.Image
		updated = true
	}

	if !updated {
		uc.log.Debugf("Use Case: Update for category ID %d carried no applicable fields", id)
		return category, nil
	}

	category.UpdatedAt = uc.timestamp()
	saved, err := uc.categoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update category ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %d", saved.ID)
	return saved, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		uc.log.Debugf("Use Case: Repository failed to delete category ID %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Category deleted successfully for ID %d", id)
	return nil
}

// ensureSlugFree reports a conflict when a category other than ownerID
// already uses candidate. ownerID 0 means a new category.
func (uc *categoryUseCase) ensureSlugFree(ctx context.Context, candidate string, ownerID int) error {
	existing, err := uc.categoryRepo.GetCategoryBySlug(ctx, candidate)
	switch {
	case err == nil && existing.ID != ownerID:
		uc.log.Warnf("Use Case: Slug '%s' already used by category ID %d", candidate, existing.ID)
		if ownerID == 0 {
			return domain.NewError(domain.ErrConflict, "Category with slug \"%s\" already exists", candidate)
		}
		return domain.NewError(domain.ErrConflict, "Slug \"%s\" is already in use by another category", candidate)
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		uc.log.Errorf("Use Case: Repository failed to check slug '%s': %v", candidate, err)
		return fmt.Errorf("could not check slug availability: %w", err)
	}
}
