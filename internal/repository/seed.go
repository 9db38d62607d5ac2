package repository

import (
	"time"

	"catalog_service/internal/domain"

	"github.com/shopspring/decimal"
)

var seedTime = time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)

// SeedCategories returns the initial category set. Every call returns a
// fresh slice.
func SeedCategories() []domain.Category {
	categories := []domain.Category{
		{ID: 1, Name: "Clothes", Slug: "clothes", Image: "https://i.imgur.com/QkIa5tT.jpeg"},
		{ID: 2, Name: "Electronics", Slug: "electronics", Image: "https://i.imgur.com/ZANVnHE.jpeg"},
		{ID: 3, Name: "Furniture", Slug: "furniture", Image: "https://i.imgur.com/Qphac99.jpeg"},
		{ID: 4, Name: "Miscellaneous", Slug: "miscellaneous", Image: "https://i.imgur.com/BG8J0Fj.jpg"},
	}
	for i := range categories {
		categories[i].CreationAt = seedTime
		categories[i].UpdatedAt = seedTime
	}
	return categories
}

func SeedProducts() []domain.Product {
	products := []domain.Product{
		{
			ID: 1, Title: "Classic Heather Gray Hoodie", Slug: "classic-heather-gray-hoodie",
			Price: decimal.NewFromInt(69), CategoryID: 1,
			Description: "Soft cotton-blend hoodie with a roomy front pocket and adjustable drawstring hood.",
			Images:      []string{"https://i.imgur.com/cHddUCu.jpeg"},
		},
		{
			ID: 2, Title: "Classic Black T-Shirt", Slug: "classic-black-t-shirt",
			Price: decimal.NewFromInt(35), CategoryID: 1,
			Description: "Everyday crew-neck tee made from breathable cotton.",
			Images:      []string{"https://i.imgur.com/9DqEOV5.jpeg"},
		},
		{
			ID: 3, Title: "Sleek Wireless Headphones", Slug: "sleek-wireless-headphones",
			Price: decimal.RequireFromString("99.90"), CategoryID: 2,
			Description: "Over-ear headphones with active noise cancellation and 30 hours of battery.",
			Images:      []string{"https://i.imgur.com/yVeIeDa.jpeg"},
		},
		{
			ID: 4, Title: "Modern Wireless Mouse", Slug: "modern-wireless-mouse",
			Price: decimal.NewFromInt(25), CategoryID: 2,
			Description: "Ergonomic mouse with silent clicks and a USB-C receiver.",
			Images:      []string{"https://i.imgur.com/w3Y8NwQ.jpeg"},
		},
		{
			ID: 5, Title: "Mid-Century Modern Armchair", Slug: "mid-century-modern-armchair",
			Price: decimal.NewFromInt(349), CategoryID: 3,
			Description: "Walnut-frame armchair upholstered in durable woven fabric.",
			Images:      []string{"https://i.imgur.com/6wkyyIN.jpeg"},
		},
		{
			ID: 6, Title: "Leather Travel Wallet", Slug: "leather-travel-wallet",
			Price: decimal.RequireFromString("42.50"), CategoryID: 4,
			Description: "Full-grain leather wallet with passport sleeve and card slots.",
			Images:      []string{"https://i.imgur.com/3dU0m72.jpeg"},
		},
	}
	for i := range products {
		products[i].CreationAt = seedTime
		products[i].UpdatedAt = seedTime
	}
	return products
}
