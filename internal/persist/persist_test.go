package persist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rgoodwin/housetab/internal/database"
	"github.com/rgoodwin/housetab/internal/model"
)

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Members:             []model.Member{{ID: "u1", Name: "You", Phone: "+15551234567"}},
		Categories:          []string{"Home", "Internet"},
		DefaultReminderDays: 2,
		DefaultRecipients:   []string{"u1"},
		Bills: []model.Bill{
			{ID: "b1", Title: "Internet", Amount: 60, DueISO: "2024-06-16", Category: "Internet", Recipients: []string{"u1"}},
		},
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	snap, err := m.Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if snap != nil {
		t.Fatal("empty backend should load nil")
	}

	if err := m.Save(sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := m.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, sampleSnapshot()) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, sampleSnapshot())
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f := NewFile(path)

	snap, err := f.Load()
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if snap != nil {
		t.Fatal("missing file should load nil")
	}

	if err := f.Save(sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, sampleSnapshot()) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, sampleSnapshot())
	}
}

func TestFileLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFile(path).Load()
	if err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
}

func TestFileSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f := NewFile(path)

	first := sampleSnapshot()
	if err := f.Save(first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := sampleSnapshot()
	second.Bills = nil
	if err := f.Save(second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := f.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Bills) != 0 {
		t.Errorf("bills = %d, want 0 after overwrite", len(got.Bills))
	}
}

func setupSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLite(db)
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := setupSQLite(t)

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if snap != nil {
		t.Fatal("empty table should load nil")
	}

	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, sampleSnapshot()) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, sampleSnapshot())
	}
}

func TestSQLiteSaveUpserts(t *testing.T) {
	s := setupSQLite(t)

	if err := s.Save(sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated := sampleSnapshot()
	updated.DefaultReminderDays = 7
	if err := s.Save(updated); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DefaultReminderDays != 7 {
		t.Errorf("defaultReminderDays = %d, want 7", got.DefaultReminderDays)
	}
}
