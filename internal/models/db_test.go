package models

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestWithSQLitePragmas(t *testing.T) {
	got := withSQLitePragmas("db/shop.db")
	if !strings.HasPrefix(got, "db/shop.db?_pragma=busy_timeout(5000)") {
		t.Fatalf("unexpected dsn: %s", got)
	}
	if !strings.Contains(got, "_pragma=journal_mode(WAL)") || !strings.Contains(got, "_pragma=foreign_keys(1)") {
		t.Fatalf("missing pragmas: %s", got)
	}

	got = withSQLitePragmas("file:shop?mode=memory&cache=shared")
	if !strings.HasPrefix(got, "file:shop?mode=memory&cache=shared&_pragma=") {
		t.Fatalf("unexpected memory dsn: %s", got)
	}

	custom := "shop.db?_pragma=busy_timeout(100)"
	if got := withSQLitePragmas(custom); got != custom {
		t.Fatalf("custom pragmas should be kept, got %s", got)
	}
}

func TestNormalizeDriver(t *testing.T) {
	cases := map[string]string{
		"":           "sqlite",
		"SQLite3":    "sqlite",
		" postgres ": "postgres",
		"postgresql": "postgres",
		"mysql":      "mysql",
	}
	for input, want := range cases {
		if got := normalizeDriver(input); got != want {
			t.Fatalf("normalizeDriver(%q) want %q got %q", input, want, got)
		}
	}
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenDB(DBOptions{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
	if _, err := OpenDB(DBOptions{Driver: "sqlite", DSN: "  "}); err == nil {
		t.Fatalf("expected empty dsn error")
	}
}

func TestSeedProductsOnlyWhenEmpty(t *testing.T) {
	dsn := fmt.Sprintf("file:models_seed_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := OpenDB(DBOptions{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	defer CloseDB(db)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	created, err := SeedProducts(context.Background(), db)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if created != len(SampleProducts) {
		t.Fatalf("seed count want %d got %d", len(SampleProducts), created)
	}

	again, err := SeedProducts(context.Background(), db)
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("second seed should skip, got %d", again)
	}

	var product Product
	if err := db.Where("name = ?", "Gaming Laptop").First(&product).Error; err != nil {
		t.Fatalf("load seeded product failed: %v", err)
	}
	if product.ID == "" || product.Stock != 8 || product.Price.String() != "1299.50" {
		t.Fatalf("unexpected seeded product: %+v", product)
	}
}
