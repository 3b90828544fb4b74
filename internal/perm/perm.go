// Package perm gates UI affordances by the signed-in user's permission
// string. This is advisory gating only: hiding a button is a courtesy, the
// real authorization boundary lives server-side.
package perm

import "strings"

// Action names a gated UI affordance.
type Action string

const (
	ActionEditFields   Action = "edit-fields"
	ActionManagePeople Action = "manage-people"
	ActionDeleteNotes  Action = "delete-notes"
	ActionAddViewers   Action = "add-viewers"
)

// Capabilities is the parsed permission set for one actor.
type Capabilities struct {
	permission string
}

// Parse maps the stored permission string to a capability set. Unknown
// strings degrade to viewer (read-only) rather than failing: a stale or
// malformed stash must not crash the UI.
func Parse(permission string) Capabilities {
	return Capabilities{permission: strings.ToLower(strings.TrimSpace(permission))}
}

func (c Capabilities) Can(a Action) bool {
	switch c.permission {
	case "admin":
		return true
	case "manager":
		return a != ActionManagePeople
	case "artist":
		return a == ActionEditFields
	default:
		// viewer / unknown: read-only
		return false
	}
}

// Permission returns the raw permission string (sent as the server-side
// authorization hint on destructive calls).
func (c Capabilities) Permission() string { return c.permission }
