package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

const categoryColumns = `id, name, slug, image, creation_at, updated_at`

func scanCategory(scan func(...interface{}) error) (*domain.Category, error) {
	category := &domain.Category{}
	err := scan(&category.ID, &category.Name, &category.Slug, &category.Image, &category.CreationAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	category.CreationAt = category.CreationAt.UTC()
	category.UpdatedAt = category.UpdatedAt.UTC()
	return category, nil
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows.Scan)
		if err != nil {
			r.log.Errorf("Failed to scan category row: %v", err)
			return nil, fmt.Errorf("error scanning category data: %w", err)
		}
		categories = append(categories, *category)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during categories list iteration: %v", err)
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	r.log.Debugf("Retrieved %d categories", len(categories))
	return categories, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Category with ID %d not found", id)
			return nil, domain.CategoryNotFound(id)
		}
		r.log.Errorf("Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, slug).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Category with slug '%s' not found", slug)
			return nil, domain.CategorySlugNotFound(slug)
		}
		r.log.Errorf("Failed to get category by slug '%s': %v", slug, err)
		return nil, fmt.Errorf("could not get category by slug: %w", err)
	}
	return category, nil
}

// CreateCategory assigns the highest existing id plus one. The table lock
// keeps two writers from computing the same id.
func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Failed to begin transaction for category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not begin category transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `LOCK TABLE categories IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		r.log.Errorf("Failed to lock categories table: %v", err)
		return nil, fmt.Errorf("could not lock categories: %w", err)
	}

	query := `
        INSERT INTO categories (id, name, slug, image, creation_at, updated_at)
        SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5 FROM categories
        RETURNING ` + categoryColumns
	var created *domain.Category
	created, err = scanCategory(tx.QueryRowContext(ctx, query,
		category.Name, category.Slug, category.Image, category.CreationAt, category.UpdatedAt).Scan)
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warnf("Attempted to create category with duplicate slug: %s", category.Slug)
			return nil, domain.NewError(domain.ErrConflict, "Category with slug \"%s\" already exists", category.Slug)
		}
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}

	if err = tx.Commit(); err != nil {
		r.log.Errorf("Failed to commit category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not commit category: %w", err)
	}

	r.log.Debugf("Category stored with ID: %d, Slug: %s", created.ID, created.Slug)
	return created, nil
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
        UPDATE categories
        SET name = $1, slug = $2, image = $3, updated_at = $4
        WHERE id = $5
        RETURNING ` + categoryColumns
	updated, err := scanCategory(r.db.QueryRowContext(ctx, query,
		category.Name, category.Slug, category.Image, category.UpdatedAt, category.ID).Scan)
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warnf("Attempted to update category ID %d with duplicate slug: %s", category.ID, category.Slug)
			return nil, domain.NewError(domain.ErrConflict, "Slug \"%s\" is already in use by another category", category.Slug)
		}
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Category with ID %d not found for update", category.ID)
			return nil, domain.CategoryNotFound(category.ID)
		}
		r.log.Errorf("Failed to update category ID %d: %v", category.ID, err)
		return nil, fmt.Errorf("could not update category: %w", err)
	}
	return updated, nil
}

func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete category ID %d: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting category ID %d: %v", id, err)
		return fmt.Errorf("could not confirm category deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Debugf("Attempted to delete non-existent category ID %d", id)
		return domain.CategoryNotFound(id)
	}
	return nil
}
