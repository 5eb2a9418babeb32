// Package catalog provides the product catalog and concern-ranked lookups.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

// Store answers product recommendation queries against the catalog.
type Store interface {
	// Recommend returns up to limit products ranked by how many of the
	// given concern labels they address (case-insensitive exact match).
	// When nothing overlaps, it falls back to the top products overall.
	Recommend(ctx context.Context, concerns []string, limit int) ([]domain.Product, error)

	// Ping verifies the catalog is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying database.
	Close() error
}

// readCSV parses the products CSV. Expected header columns: id, name, brand,
// category, concerns (pipe-separated), url, image_url. Unknown columns are
// ignored.
func readCSV(path string) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open products csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var products []domain.Product
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		var concerns []string
		for _, c := range strings.Split(field(row, "concerns"), "|") {
			if c = strings.TrimSpace(c); c != "" {
				concerns = append(concerns, c)
			}
		}
		products = append(products, domain.Product{
			ID:       field(row, "id"),
			Name:     field(row, "name"),
			Brand:    field(row, "brand"),
			Category: field(row, "category"),
			Concerns: concerns,
			URL:      field(row, "url"),
			ImageURL: field(row, "image_url"),
		})
	}
	return products, nil
}
