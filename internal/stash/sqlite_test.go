package stash

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"slate-cli/internal/model"
)

func TestSQLiteRoundTrip(t *testing.T) {
	st := NewSQLite(t.TempDir())
	rec := model.Record{"id": int64(101), "name": "SH010", "status": "ip"}

	if err := st.Stash(SlotSelectedShot, rec); err != nil {
		t.Fatalf("stash: %v", err)
	}
	got := st.Unstash(SlotSelectedShot)
	// JSON round-trips numbers as float64; identity goes through ID().
	if got.ID() != 101 {
		t.Fatalf("id = %d, want 101", got.ID())
	}
	if got.Str("name") != "SH010" || got.Str("status") != "ip" {
		t.Fatalf("record = %v", got)
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	if err := NewSQLite(dir).Stash(SlotProjectData, model.Record{"id": int64(12), "name": "Spring"}); err != nil {
		t.Fatalf("stash: %v", err)
	}

	// A fresh instance over the same directory sees the slot, the way a new
	// process would.
	got := NewSQLite(dir).Unstash(SlotProjectData)
	if got.ID() != 12 || got.Str("name") != "Spring" {
		t.Fatalf("record after reopen = %v", got)
	}
}

func TestSQLiteMissingSlotIsEmptySentinel(t *testing.T) {
	got := NewSQLite(t.TempDir()).Unstash(SlotSelectedAsset)
	if got == nil || len(got) != 0 {
		t.Fatalf("sentinel = %v", got)
	}
}

func TestSQLiteCorruptSlotReadsAsNoSelection(t *testing.T) {
	dir := t.TempDir()
	st := NewSQLite(dir)
	if err := st.Stash(SlotSelectedShot, model.Record{"id": int64(1)}); err != nil {
		t.Fatalf("stash: %v", err)
	}

	// Corrupt the slot's JSON directly.
	db, err := st.open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`UPDATE slots SET value_json = '{not json' WHERE name = ?`, SlotSelectedShot); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	_ = db.Close()

	got := st.Unstash(SlotSelectedShot)
	if got == nil || len(got) != 0 {
		t.Fatalf("corrupt slot read as %v, want empty sentinel", got)
	}
}

func TestSQLiteMergeOverMissingSlot(t *testing.T) {
	st := NewSQLite(t.TempDir())
	if err := st.Merge(SlotSelectedAsset, model.Record{"status": "fin"}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := st.Unstash(SlotSelectedAsset); got.Str("status") != "fin" {
		t.Fatalf("slot = %v", got)
	}
}

func TestSQLiteCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	if err := NewSQLite(dir).Stash(SlotProjectData, model.Record{"id": int64(1)}); err != nil {
		t.Fatalf("stash: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, sqliteFileName)); err != nil {
		t.Fatalf("stash file missing: %v", err)
	}
}
