package postgres

import (
	"context"
	"strings"
	"testing"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(context.Background(), db); err != nil {
			t.Fatalf("Migrate run %d returned error: %v", i+1, err)
		}
	}

	var tables []string
	if err := db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`); err != nil {
		t.Fatalf("list tables: %v", err)
	}
	if strings.Join(tables, ",") != "chat_turns,consultations" {
		t.Errorf("unexpected tables %v", tables)
	}
}

func TestFormatDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "advisory")
	t.Setenv("DB_SSLMODE", "")

	want := "host=db port=5432 user=app password=pw dbname=advisory sslmode=disable"
	if got := FormatDSN(); got != want {
		t.Errorf("FormatDSN() = %q, want %q", got, want)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := New(); err == nil {
		t.Error("expected an error for an unsupported driver")
	}
}
