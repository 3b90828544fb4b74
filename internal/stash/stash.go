// Package stash is the selection handoff store: a small key-addressed
// persisted store that carries "the currently open entity" and its last-known
// field values across screen boundaries that do not support direct parameter
// passing (list view -> detail view are separate screens).
//
// Freshness is NOT guaranteed. The stash may be staler than the backend; last
// writer wins, both here and for the backend row it mirrors. Readers must
// treat a missing or malformed slot as "no selection".
package stash

import (
	"strings"
	"sync"

	"slate-cli/internal/model"
)

// Well-known slot names. Slots are free-form strings, but views agree on
// these to hand entities to each other.
const (
	SlotProjectData   = "projectData"
	SlotSelectedShot  = "selectedShot"
	SlotSelectedAsset = "selectedAsset"
	SlotSequenceData  = "sequenceData"
	SlotAuthUser      = "authUser"
	SlotCurrentUser   = "currentUser"
)

// Store is the injectable handoff interface. Implementations: SQLite (the
// real client) and Mem (tests).
type Store interface {
	// Stash serializes record into the named slot, replacing any prior value.
	Stash(slot string, record model.Record) error

	// Unstash reads the slot. Absent or malformed slots yield the empty
	// sentinel model.Record{} — never an error; callers degrade to "no
	// selection".
	Unstash(slot string) model.Record

	// Merge reads the slot, shallow-merges fields over it, and writes it
	// back. This is the post-edit mirror pattern: after a successful field
	// update the detail view merges the new value so a later mount sees
	// consistent data without a re-fetch.
	Merge(slot string, fields model.Record) error
}

// Mem is an in-memory Store for tests and ephemeral sessions.
type Mem struct {
	mu    sync.Mutex
	slots map[string]model.Record
}

func NewMem() *Mem {
	return &Mem{slots: map[string]model.Record{}}
}

func (m *Mem) Stash(slot string, record model.Record) error {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return errEmptySlot
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = record.Clone()
	return nil
}

func (m *Mem) Unstash(slot string) model.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.slots[strings.TrimSpace(slot)]
	if !ok || rec == nil {
		return model.Record{}
	}
	return rec.Clone()
}

func (m *Mem) Merge(slot string, fields model.Record) error {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return errEmptySlot
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.slots[slot]
	if !ok || cur == nil {
		cur = model.Record{}
	} else {
		cur = cur.Clone()
	}
	for k, v := range fields {
		cur[k] = v
	}
	m.slots[slot] = cur
	return nil
}
