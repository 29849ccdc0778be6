package database

import (
	"path/filepath"
	"testing"
)

func TestEnsureUserSchema_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "test.db")

	// 1. Initialize schema (Open creates the directory and tables)
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("First Open failed: %v", err)
	}

	// 2. Insert a record
	_, err = db.Exec(`INSERT INTO saved_locations (id, name, latitude, longitude, radius_meters) VALUES ('L1', 'Home', 51.5, -0.1, 200)`)
	db.Close()
	if err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}

	// 3. Initialize schema again (should not drop table)
	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Second Open failed: %v", err)
	}
	defer db.Close()

	if err := EnsureUserSchema(db); err != nil {
		t.Fatalf("EnsureUserSchema failed: %v", err)
	}

	// 4. Verify record exists
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM saved_locations WHERE name = 'Home'"); err != nil {
		t.Fatalf("Failed to query record: %v", err)
	}

	if count != 1 {
		t.Errorf("Expected 1 record, got %d. Data was likely lost due to table drop.", count)
	}
}
