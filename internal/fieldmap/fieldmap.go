// Package fieldmap translates client-side field names to backend column
// names. An empty column marks a client-only/derived field that must never be
// sent upstream; every field exposed for inline editing must resolve to a
// non-empty column or the edit is rejected before any network call.
package fieldmap

import (
	"strings"

	"slate-cli/internal/model"
)

type entry struct {
	field  string
	column string // "" => client-only/derived
}

// Per-kind maps. Order matters: Fields() drives the detail view layout.
var maps = map[model.Kind][]entry{
	model.KindProject: {
		{"id", ""},
		{"name", "project_name"},
		{"description", "description"},
		{"status", "status"},
		{"start_date", "start_date"},
		{"end_date", "end_date"},
	},
	model.KindSequence: {
		{"id", ""},
		{"name", "sequence_name"},
		{"description", "description"},
		{"status", "status"},
	},
	model.KindShot: {
		{"id", ""},
		{"name", "shot_name"},
		{"description", "description"},
		{"status", "status"},
		{"frame_in", "frame_in"},
		{"frame_out", "frame_out"},
		{"thumbnail", "thumbnail_url"},
		{"tags", ""},
	},
	model.KindAsset: {
		{"id", ""},
		{"name", "asset_name"},
		{"type", "asset_type"},
		{"description", "description"},
		{"status", "status"},
		{"thumbnail", "thumbnail_url"},
		{"tags", ""},
	},
	model.KindTask: {
		{"id", ""},
		{"name", "task_name"},
		{"assignee", "assignee"},
		{"status", "status"},
		{"start_date", "start_date"},
		{"due_date", "due_date"},
	},
	model.KindNote: {
		{"id", ""},
		{"subject", "subject"},
		{"body", "body"},
		{"author", ""},
	},
	model.KindPerson: {
		{"id", ""},
		{"name", "person_name"},
		{"email", ""},
		{"role", "role"},
		{"permission", "permission"},
	},
	model.KindViewer: {
		{"id", ""},
		{"email", ""},
	},
}

// Column resolves a client field name to its backend column. ok is false for
// unknown fields; a (("", true)) result means the field exists but is
// client-only.
func Column(kind model.Kind, field string) (string, bool) {
	field = strings.TrimSpace(field)
	for _, e := range maps[kind] {
		if e.field == field {
			return e.column, true
		}
	}
	return "", false
}

// Editable reports whether a field may be sent upstream at all.
func Editable(kind model.Kind, field string) bool {
	col, ok := Column(kind, field)
	return ok && col != ""
}

// Fields returns the client field names for a kind in display order.
func Fields(kind model.Kind) []string {
	entries := maps[kind]
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.field)
	}
	return out
}

// Normalize renames backend columns to client field names in place and
// returns rec. Keys without a mapping pass through untouched, so extra
// server-side columns survive round trips.
func Normalize(kind model.Kind, rec model.Record) model.Record {
	if rec == nil {
		return rec
	}
	for _, e := range maps[kind] {
		if e.column == "" || e.column == e.field {
			continue
		}
		if v, ok := rec[e.column]; ok {
			if _, taken := rec[e.field]; !taken {
				rec[e.field] = v
			}
			delete(rec, e.column)
		}
	}
	return rec
}

// EditableFields returns only the fields that resolve to backend columns.
func EditableFields(kind model.Kind) []string {
	var out []string
	for _, e := range maps[kind] {
		if e.column != "" {
			out = append(out, e.field)
		}
	}
	return out
}
