package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testCSV = `id,name,brand,category,concerns,url,image_url
p1,BHA Liquid,DeciemX,treatment,acne|pores,https://example.com/p1,
p2,Calming Serum,DermaCo,serum,redness,https://example.com/p2,
p3,Glow Tonic,PixiLike,exfoliant,dullness|texture,https://example.com/p3,
p4,Barrier Cream,CeraLike,moisturizer,dryness|redness,,
`

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "products.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0644); err != nil {
		t.Fatalf("Failed to write test csv: %v", err)
	}

	store, err := NewSQLite(filepath.Join(dir, "catalog.db"), csvPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RecommendRanksByOverlap(t *testing.T) {
	store := newTestStore(t)

	products, err := store.Recommend(context.Background(), []string{"acne", "pores"}, 5)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if len(products) == 0 || products[0].ID != "p1" {
		t.Fatalf("products = %+v, want p1 ranked first with two matching concerns", products)
	}
	for _, p := range products {
		if p.ID == "p2" || p.ID == "p4" {
			t.Errorf("Product %s matched none of the concerns but was returned in the ranked set", p.ID)
		}
	}
}

func TestSQLiteStore_RecommendCaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	products, err := store.Recommend(context.Background(), []string{"ACNE"}, 5)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("products = %+v, want only p1 for ACNE", products)
	}
}

func TestSQLiteStore_RecommendFallsBackToTopProducts(t *testing.T) {
	store := newTestStore(t)

	products, err := store.Recommend(context.Background(), []string{"sandpaper"}, 3)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("len(products) = %d, want the fallback capped at 3", len(products))
	}
	if products[0].ID != "p1" {
		t.Errorf("Fallback first product = %s, want p1", products[0].ID)
	}
}

func TestSQLiteStore_RecommendRespectsLimit(t *testing.T) {
	store := newTestStore(t)

	products, err := store.Recommend(context.Background(), []string{"redness"}, 1)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("len(products) = %d, want 1", len(products))
	}
}

func TestSQLiteStore_ProductFieldsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	products, err := store.Recommend(context.Background(), []string{"acne"}, 1)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("len(products) = %d, want 1", len(products))
	}

	p := products[0]
	if p.Name != "BHA Liquid" || p.Brand != "DeciemX" || p.Category != "treatment" {
		t.Errorf("Product fields = %+v", p)
	}
	if len(p.Concerns) != 2 {
		t.Errorf("Concerns = %v, want both labels", p.Concerns)
	}
	if p.URL != "https://example.com/p1" {
		t.Errorf("URL = %q", p.URL)
	}
}

func TestSQLiteStore_MissingCSVMeansEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLite(filepath.Join(dir, "catalog.db"), filepath.Join(dir, "missing.csv"))
	if err != nil {
		t.Fatalf("NewSQLite should tolerate a missing csv: %v", err)
	}
	defer store.Close()

	products, err := store.Recommend(context.Background(), []string{"acne"}, 5)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("products = %+v, want none from an empty catalog", products)
	}
}
