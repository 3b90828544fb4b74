package stash

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"slate-cli/internal/model"

	_ "modernc.org/sqlite"
)

var errEmptySlot = errors.New("empty stash slot name")

const sqliteFileName = "stash.sqlite"

// SQLite persists slots in <dir>/stash.sqlite so handoff state survives
// process restarts, the way browser local storage survives page loads.
type SQLite struct {
	Dir string
}

func NewSQLite(dir string) *SQLite {
	return &SQLite{Dir: dir}
}

func (s *SQLite) path() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s *SQLite) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.path())
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the CLI and TUI may both touch the stash.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		value_json TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLite) Stash(slot string, record model.Record) error {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return errEmptySlot
	}
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO slots(name, value_json) VALUES(?, ?)`, slot, string(b))
	return err
}

func (s *SQLite) Unstash(slot string) model.Record {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return model.Record{}
	}
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return model.Record{}
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT value_json FROM slots WHERE name = ?`, slot).Scan(&raw)
	if err != nil {
		return model.Record{}
	}
	var rec model.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Best-effort; a corrupted slot reads as "no selection".
		return model.Record{}
	}
	if rec == nil {
		return model.Record{}
	}
	return rec
}

func (s *SQLite) Merge(slot string, fields model.Record) error {
	cur := s.Unstash(slot)
	for k, v := range fields {
		cur[k] = v
	}
	return s.Stash(slot, cur)
}

// SlotForKind maps an entity kind to the handoff slot its detail view reads.
// Kinds without a detail view have no slot.
func SlotForKind(kind model.Kind) (string, bool) {
	switch kind {
	case model.KindProject:
		return SlotProjectData, true
	case model.KindSequence:
		return SlotSequenceData, true
	case model.KindShot:
		return SlotSelectedShot, true
	case model.KindAsset:
		return SlotSelectedAsset, true
	default:
		return "", false
	}
}
