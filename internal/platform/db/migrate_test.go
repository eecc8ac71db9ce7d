package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
}

func TestLoadMigrations_SortedByVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_alerts.sql", "CREATE TABLE b (id int)")
	writeMigration(t, dir, "001_core.sql", "CREATE TABLE a (id int)")
	writeMigration(t, dir, "010_reports.sql", "CREATE TABLE c (id int)")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	for i, want := range []int{1, 2, 10} {
		if migrations[i].Version != want {
			t.Errorf("position %d: expected version %d, got %d", i, want, migrations[i].Version)
		}
	}
}

func TestLoadMigrations_SkipsNonNumericAndNonSQL(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_core.sql", "CREATE TABLE a (id int)")
	writeMigration(t, dir, "README.md", "not a migration")
	writeMigration(t, dir, "notes_001.sql", "SELECT 1")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(migrations))
	}
	if migrations[0].Name != "001_core.sql" {
		t.Errorf("unexpected migration: %s", migrations[0].Name)
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	m := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := m.LoadMigrations(); err == nil {
		t.Error("expected error for missing directory")
	}
}
