package domain

import "context"

type ProductRepository interface {
	ListProductsByCategory(ctx context.Context, categoryID int) ([]Product, error)
}
