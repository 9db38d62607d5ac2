package repository

import (
	"context"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// memoryProductRepository is read-only after construction, so it needs no
// locking.
type memoryProductRepository struct {
	products []domain.Product
	log      *logrus.Logger
}

func NewMemoryProductRepository(seed []domain.Product, logger *logrus.Logger) domain.ProductRepository {
	products := make([]domain.Product, len(seed))
	copy(products, seed)
	return &memoryProductRepository{products: products, log: logger}
}

func (r *memoryProductRepository) ListProductsByCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	products := []domain.Product{}
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			p.Images = append([]string(nil), p.Images...)
			products = append(products, p)
		}
	}
	r.log.Debugf("Retrieved %d products for category %d", len(products), categoryID)
	return products, nil
}
