package model

import "strings"

// StatusDef describes one value of a kind's closed status enumeration.
// Color is a lipgloss-compatible ANSI-256 color string used by list rows and
// the status picker.
type StatusDef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Statuses are a closed set per entity kind. The client never invents new
// status ids; the picker only offers these.
var trackedStatusDefs = []StatusDef{
	{ID: "wtg", Label: "Waiting to Start", Color: "245"},
	{ID: "ip", Label: "In Progress", Color: "39"},
	{ID: "fin", Label: "Final", Color: "35"},
}

// StatusDefs returns the status enumeration for a kind, or nil for kinds that
// carry no status (notes, viewers).
func StatusDefs(kind Kind) []StatusDef {
	switch kind {
	case KindProject, KindSequence, KindShot, KindAsset, KindTask:
		return trackedStatusDefs
	default:
		return nil
	}
}

func ValidStatus(kind Kind, statusID string) bool {
	statusID = strings.TrimSpace(statusID)
	for _, def := range StatusDefs(kind) {
		if def.ID == statusID {
			return true
		}
	}
	return false
}

// StatusLabel returns the display label for a status id, falling back to the
// raw id for values the backend knows but this client build does not.
func StatusLabel(kind Kind, statusID string) string {
	statusID = strings.TrimSpace(statusID)
	for _, def := range StatusDefs(kind) {
		if def.ID == statusID {
			return def.Label
		}
	}
	return statusID
}

func StatusColor(kind Kind, statusID string) string {
	statusID = strings.TrimSpace(statusID)
	for _, def := range StatusDefs(kind) {
		if def.ID == statusID {
			return def.Color
		}
	}
	return "245"
}
