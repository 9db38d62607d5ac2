package repository

import (
	"context"
	"database/sql"
	"fmt"

	"catalog_service/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id          INTEGER PRIMARY KEY,
    name        TEXT        NOT NULL,
    slug        TEXT        NOT NULL UNIQUE,
    image       TEXT        NOT NULL,
    creation_at TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    id          SERIAL PRIMARY KEY,
    title       TEXT          NOT NULL,
    slug        TEXT          NOT NULL UNIQUE,
    price       NUMERIC(10,2) NOT NULL,
    description TEXT          NOT NULL DEFAULT '',
    category_id INTEGER       NOT NULL,
    images      TEXT[]        NOT NULL DEFAULT '{}',
    creation_at TIMESTAMPTZ   NOT NULL,
    updated_at  TIMESTAMPTZ   NOT NULL
);

CREATE INDEX IF NOT EXISTS products_category_id_idx ON products (category_id);
`

// EnsureSchema creates the tables when they are missing. With seed set, empty
// tables are filled with SeedCategories and SeedProducts in one transaction.
func EnsureSchema(ctx context.Context, db *sql.DB, seed bool, logger *logrus.Logger) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}
	if !seed {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("could not count categories: %w", err)
	}
	if count > 0 {
		logger.Infof("Schema ready, %d categories present; skipping seed", count)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if err := seedCategories(ctx, tx, SeedCategories()); err != nil {
		return err
	}
	if err := seedProducts(ctx, tx, SeedProducts()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit seed data: %w", err)
	}

	logger.Info("Schema ready, seed data inserted")
	return nil
}

func seedCategories(ctx context.Context, tx *sql.Tx, categories []domain.Category) error {
	for _, c := range categories {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO categories (id, name, slug, image, creation_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT DO NOTHING`,
			c.ID, c.Name, c.Slug, c.Image, c.CreationAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("could not seed category %q: %w", c.Slug, err)
		}
	}
	return nil
}

func seedProducts(ctx context.Context, tx *sql.Tx, products []domain.Product) error {
	for _, p := range products {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO products (id, title, slug, price, description, category_id, images, creation_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            ON CONFLICT DO NOTHING`,
			p.ID, p.Title, p.Slug, p.Price, p.Description, p.CategoryID, pq.Array(p.Images), p.CreationAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("could not seed product %q: %w", p.Slug, err)
		}
	}
	_, err := tx.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('products', 'id'), COALESCE((SELECT MAX(id) FROM products), 1))`)
	if err != nil {
		return fmt.Errorf("could not advance product id sequence: %w", err)
	}
	return nil
}
