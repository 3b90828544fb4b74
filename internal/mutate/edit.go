package mutate

import "strings"

// Session is the pending-edit state machine for one view. At most one inline
// edit may be open at a time; beginning a new edit implicitly commits the
// previous one (edits are serialized per view, not per field).
//
// States and transitions:
//
//	Idle       --Begin-->        Editing
//	Editing    --Commit/blur-->  Committing
//	Editing    --Cancel/esc-->   Idle
//	Committing --Resolve-->      Idle
//
// Edits to different fields issued in quick succession are not ordered
// relative to each other once in flight: the last response to arrive wins in
// local state. Same-field edits are serialized by this machine.
type Session struct {
	state    EditState
	entityID int64
	field    string
	draft    string
}

type EditState int

const (
	EditIdle EditState = iota
	EditEditing
	EditCommitting
)

// Edit is a committed pending edit, ready to hand to ApplyFieldUpdate.
type Edit struct {
	EntityID int64
	Field    string
	Value    string
}

func (s *Session) State() EditState { return s.state }
func (s *Session) Field() string    { return s.field }
func (s *Session) EntityID() int64  { return s.entityID }
func (s *Session) Draft() string    { return s.draft }

// Begin activates an editable cell. If an edit is already open, it is
// committed first and returned so the caller can dispatch it.
func (s *Session) Begin(entityID int64, field, current string) (implicit Edit, hadPrev bool) {
	if s.state == EditEditing {
		implicit, hadPrev = s.Commit()
	}
	s.state = EditEditing
	s.entityID = entityID
	s.field = strings.TrimSpace(field)
	s.draft = current
	return implicit, hadPrev
}

// SetDraft replaces the in-progress value (each keystroke).
func (s *Session) SetDraft(v string) {
	if s.state != EditEditing {
		return
	}
	s.draft = v
}

// Commit (blur/Enter) closes the edit and moves to Committing until the
// remote call resolves. ok is false when no edit was open.
func (s *Session) Commit() (Edit, bool) {
	if s.state != EditEditing {
		return Edit{}, false
	}
	s.state = EditCommitting
	return Edit{EntityID: s.entityID, Field: s.field, Value: s.draft}, true
}

// Resolve records that the in-flight commit completed (success or failure).
//
// The state guard is load-bearing: Begin may open a newer edit while a commit
// is still in flight, putting the session back in Editing. A late Resolve for
// the earlier commit must not clear that newer edit, so Resolve only acts
// from Committing.
func (s *Session) Resolve() {
	if s.state != EditCommitting {
		return
	}
	s.state = EditIdle
	s.entityID = 0
	s.field = ""
	s.draft = ""
}

// Cancel (Escape) discards the draft without any network call.
func (s *Session) Cancel() {
	if s.state != EditEditing {
		return
	}
	s.state = EditIdle
	s.entityID = 0
	s.field = ""
	s.draft = ""
}
