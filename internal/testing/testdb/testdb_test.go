package testdb

import (
	"strings"
	"testing"
)

func TestUniqueNamespace(t *testing.T) {
	t.Parallel()

	a, b := uniqueNamespace(), uniqueNamespace()
	if a == b {
		t.Errorf("expected distinct namespaces, got %q twice", a)
	}
	if !strings.HasPrefix(a, "test_") {
		t.Errorf("unexpected namespace %q", a)
	}
}

func TestLoadMigrations_FindsSchema(t *testing.T) {
	migs, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(migs) < 2 {
		t.Fatalf("expected at least 2 migrations, got %d", len(migs))
	}
	if !strings.Contains(migs[0], "DEFINE TABLE IF NOT EXISTS user") {
		t.Error("expected the user migration first")
	}
	for _, m := range migs {
		if strings.Contains(m, "Not applied by tests") {
			t.Error("seed file should not be loaded")
		}
	}
}
