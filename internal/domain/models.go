package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Image      string    `json:"image"`
	CreationAt time.Time `json:"creationAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryID  int             `json:"categoryId"`
	Images      []string        `json:"images"`
	CreationAt  time.Time       `json:"creationAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CategoryInput carries the optional fields of a create or update request.
// A nil field was either absent from the body or not a string.
type CategoryInput struct {
	Name  *string
	Image *string
}
