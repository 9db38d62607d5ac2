package repository

import (
	"context"
	"database/sql"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) ListProductsByCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	query := `
        SELECT id, title, slug, price, description, category_id, images, creation_at, updated_at
        FROM products
        WHERE category_id = $1
        ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		r.log.Errorf("Failed to list products for category %d: %v", categoryID, err)
		return nil, fmt.Errorf("could not list products by category: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		var images []string
		if err := rows.Scan(&product.ID, &product.Title, &product.Slug, &product.Price, &product.Description,
			&product.CategoryID, pq.Array(&images), &product.CreationAt, &product.UpdatedAt); err != nil {
			r.log.Errorf("Failed to scan product row for category %d: %v", categoryID, err)
			return nil, fmt.Errorf("error scanning product data for category: %w", err)
		}
		if images == nil {
			images = []string{}
		}
		product.Images = images
		product.CreationAt = product.CreationAt.UTC()
		product.UpdatedAt = product.UpdatedAt.UTC()
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products by category list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products by category: %w", err)
	}

	r.log.Debugf("Retrieved %d products for category %d", len(products), categoryID)
	return products, nil
}
