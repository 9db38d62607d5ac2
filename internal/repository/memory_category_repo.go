package repository

import (
	"context"
	"sync"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type memoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []domain.Category
	log        *logrus.Logger
}

// NewMemoryCategoryRepository keeps categories in insertion order. A new
// category gets the highest live id plus one, or 1 when the store is empty.
func NewMemoryCategoryRepository(seed []domain.Category, logger *logrus.Logger) domain.CategoryRepository {
	repo := &memoryCategoryRepository{
		categories: make([]domain.Category, 0, len(seed)),
		log:        logger,
	}
	repo.categories = append(repo.categories, seed...)
	return repo
}

func (r *memoryCategoryRepository) nextID() int {
	maxID := 0
	for _, c := range r.categories {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}

func (r *memoryCategoryRepository) indexByID(id int) int {
	for i := range r.categories {
		if r.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryCategoryRepository) slugTaken(slug string, exceptID int) bool {
	for i := range r.categories {
		if r.categories[i].Slug == slug && r.categories[i].ID != exceptID {
			return true
		}
	}
	return false
}

func (r *memoryCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]domain.Category, len(r.categories))
	copy(categories, r.categories)
	r.log.Debugf("Retrieved %d categories", len(categories))
	return categories, nil
}

func (r *memoryCategoryRepository) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexByID(id)
	if i < 0 {
		r.log.Debugf("Category with ID %d not found", id)
		return nil, domain.CategoryNotFound(id)
	}
	category := r.categories[i]
	return &category, nil
}

func (r *memoryCategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.categories {
		if r.categories[i].Slug == slug {
			category := r.categories[i]
			return &category, nil
		}
	}
	r.log.Debugf("Category with slug '%s' not found", slug)
	return nil, domain.CategorySlugNotFound(slug)
}

func (r *memoryCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(category.Slug, 0) {
		r.log.Warnf("Attempted to create category with duplicate slug: %s", category.Slug)
		return nil, domain.NewError(domain.ErrConflict, "Category with slug \"%s\" already exists", category.Slug)
	}

	created := *category
	created.ID = r.nextID()
	r.categories = append(r.categories, created)

	r.log.Debugf("Category stored with ID: %d, Slug: %s", created.ID, created.Slug)
	return &created, nil
}

func (r *memoryCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(category.ID)
	if i < 0 {
		return nil, domain.CategoryNotFound(category.ID)
	}
	if r.slugTaken(category.Slug, category.ID) {
		r.log.Warnf("Attempted to update category ID %d with duplicate slug: %s", category.ID, category.Slug)
		return nil, domain.NewError(domain.ErrConflict, "Slug \"%s\" is already in use by another category", category.Slug)
	}

	r.categories[i] = *category
	updated := r.categories[i]
	return &updated, nil
}

func (r *memoryCategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(id)
	if i < 0 {
		r.log.Debugf("Attempted to delete non-existent category ID %d", id)
		return domain.CategoryNotFound(id)
	}
	r.categories = append(r.categories[:i], r.categories[i+1:]...)
	return nil
}
