package repository

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func defaultTables(dir string) Tables {
	return Tables{
		Prices:       TableSpec{Name: "prices", Path: filepath.Join(dir, "prices.csv"), Table: "brent_prices", DateColumn: "Date", ValueColumn: "Price"},
		Events:       TableSpec{Name: "events", Path: filepath.Join(dir, "events.csv"), Table: "brent_events", DateColumn: "date", ValueColumn: "description"},
		ChangePoints: TableSpec{Name: "change_points", Path: filepath.Join(dir, "cp.csv"), Table: "change_points", DateColumn: "Change_dates"},
	}
}
