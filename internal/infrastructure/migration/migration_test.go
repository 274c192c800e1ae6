package migration

import (
	"strings"
	"testing"
)

func TestMigrationsAreIdempotent(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Migrations {
		if seen[m.Name] {
			t.Errorf("Duplicate migration name %s", m.Name)
		}
		seen[m.Name] = true
		if !strings.Contains(m.SQL, "IF NOT EXISTS") {
			t.Errorf("Migration %s must be safe to re-run", m.Name)
		}
	}
	if !strings.Contains(Migrations[0].SQL, "generated_resumes") {
		t.Error("Expected first migration to create generated_resumes")
	}
}
