package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apsara-ai/apsara-server/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a SQLite database seeded from the CSV.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the catalog database and imports the
// products CSV. A missing CSV is tolerated: the catalog is then empty and
// every lookup returns no products.
func NewSQLite(dbPath, csvPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode so lookups don't contend with the startup import.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	if err := store.importCSV(csvPath); err != nil {
		return nil, fmt.Errorf("import products csv: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		brand TEXT NOT NULL,
		category TEXT NOT NULL,
		url TEXT,
		image_url TEXT
	);
	CREATE TABLE IF NOT EXISTS product_concerns (
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		concern TEXT NOT NULL,
		PRIMARY KEY (product_id, concern)
	);
	CREATE INDEX IF NOT EXISTS idx_product_concerns_concern ON product_concerns(lower(concern));
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// importCSV replaces the catalog contents with the rows from the CSV.
func (s *SQLiteStore) importCSV(csvPath string) error {
	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		slog.Warn("products csv not found, catalog will be empty", "path", csvPath)
		return nil
	}

	products, err := readCSV(csvPath)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM product_concerns`); err != nil {
		return fmt.Errorf("clear product concerns: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	for _, p := range products {
		if p.ID == "" {
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO products (id, name, brand, category, url, image_url) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Brand, p.Category, p.URL, p.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
		for _, c := range p.Concerns {
			_, err := tx.Exec(
				`INSERT OR IGNORE INTO product_concerns (product_id, concern) VALUES (?, ?)`,
				p.ID, c,
			)
			if err != nil {
				return fmt.Errorf("insert concern for %s: %w", p.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	slog.Info("product catalog imported", "products", len(products))
	return nil
}

// Recommend returns up to limit products ranked by concern overlap, falling
// back to the top products overall when nothing matches.
func (s *SQLiteStore) Recommend(ctx context.Context, concerns []string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		return []domain.Product{}, nil
	}

	var ids []string
	if len(concerns) > 0 {
		placeholders := strings.TrimRight(strings.Repeat("?,", len(concerns)), ",")
		query := fmt.Sprintf(`
			SELECT p.id
			FROM products p
			JOIN product_concerns pc ON pc.product_id = p.id
			WHERE lower(pc.concern) IN (%s)
			GROUP BY p.id
			ORDER BY COUNT(pc.concern) DESC, p.id
			LIMIT ?`, placeholders)

		args := make([]any, 0, len(concerns)+1)
		for _, c := range concerns {
			args = append(args, strings.ToLower(strings.TrimSpace(c)))
		}
		args = append(args, limit)

		var err error
		ids, err = s.queryIDs(ctx, query, args...)
		if err != nil {
			return nil, err
		}
	}

	// No overlap with the user's concerns: fall back to top products.
	if len(ids) == 0 {
		var err error
		ids, err = s.queryIDs(ctx, `SELECT id FROM products ORDER BY id LIMIT ?`, limit)
		if err != nil {
			return nil, err
		}
	}

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.getProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

func (s *SQLiteStore) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) getProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, brand, category, url, image_url FROM products WHERE id = ?`, id)

	var p domain.Product
	var url, imageURL sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &url, &imageURL); err != nil {
		return nil, fmt.Errorf("scan product row: %w", err)
	}
	p.URL = url.String
	p.ImageURL = imageURL.String

	rows, err := s.db.QueryContext(ctx,
		`SELECT concern FROM product_concerns WHERE product_id = ? ORDER BY concern`, id)
	if err != nil {
		return nil, fmt.Errorf("query product concerns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan concern row: %w", err)
		}
		p.Concerns = append(p.Concerns, c)
	}
	return &p, rows.Err()
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
