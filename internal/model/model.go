package model

import (
	"encoding/json"
	"strings"
)

// Kind identifies an entity table owned by the backend.
type Kind string

const (
	KindProject  Kind = "project"
	KindSequence Kind = "sequence"
	KindShot     Kind = "shot"
	KindAsset    Kind = "asset"
	KindTask     Kind = "task"
	KindNote     Kind = "note"
	KindPerson   Kind = "person"
	KindViewer   Kind = "viewer"
)

// Record is the client-side mirror of a backend row: an identified mapping of
// named fields to scalar or small-list values. The backend is the source of
// truth; records held by views may be stale.
type Record map[string]any

// ID returns the backend-assigned row id, or 0 when absent.
//
// JSON decoding yields float64 for numbers, so we accept both int and float
// shapes here. An id of 0 means "not a persisted row".
func (r Record) ID() int64 {
	if r == nil {
		return 0
	}
	switch v := r["id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Str returns the named field as a trimmed string ("" when absent or not a string).
func (r Record) Str(field string) string {
	if r == nil {
		return ""
	}
	s, _ := r[field].(string)
	return strings.TrimSpace(s)
}

// Int returns the named field as an int64 (0 when absent or non-numeric).
func (r Record) Int(field string) int64 {
	if r == nil {
		return 0
	}
	switch v := r[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Clone returns a shallow copy. Field values are scalars or small lists, so a
// shallow copy is enough for snapshot/rollback.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindProject:
		return KindProject, true
	case KindSequence:
		return KindSequence, true
	case KindShot:
		return KindShot, true
	case KindAsset:
		return KindAsset, true
	case KindTask:
		return KindTask, true
	case KindNote:
		return KindNote, true
	case KindPerson:
		return KindPerson, true
	case KindViewer:
		return KindViewer, true
	default:
		return "", false
	}
}
