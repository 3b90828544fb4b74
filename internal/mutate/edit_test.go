package mutate

import "testing"

func TestSessionBeginCommitResolve(t *testing.T) {
	var s Session
	if s.State() != EditIdle {
		t.Fatalf("zero value state = %v, want EditIdle", s.State())
	}

	if _, hadPrev := s.Begin(101, "description", "old"); hadPrev {
		t.Fatal("first Begin reported an implicit commit")
	}
	if s.State() != EditEditing {
		t.Fatalf("state = %v, want EditEditing", s.State())
	}
	if s.Draft() != "old" {
		t.Fatalf("draft = %q, want old", s.Draft())
	}

	s.SetDraft("new")
	e, ok := s.Commit()
	if !ok {
		t.Fatal("Commit returned ok=false with an open edit")
	}
	if e.EntityID != 101 || e.Field != "description" || e.Value != "new" {
		t.Fatalf("edit = %+v", e)
	}
	if s.State() != EditCommitting {
		t.Fatalf("state = %v, want EditCommitting", s.State())
	}

	// Draft input is frozen while committing.
	s.SetDraft("typed-too-late")
	if s.Draft() != "new" {
		t.Fatalf("draft changed while committing: %q", s.Draft())
	}

	s.Resolve()
	if s.State() != EditIdle {
		t.Fatalf("state = %v, want EditIdle after Resolve", s.State())
	}
}

func TestSessionCancelDiscardsDraft(t *testing.T) {
	var s Session
	s.Begin(101, "description", "old")
	s.SetDraft("half-typed")
	s.Cancel()

	if s.State() != EditIdle {
		t.Fatalf("state = %v, want EditIdle", s.State())
	}
	if _, ok := s.Commit(); ok {
		t.Fatal("Commit after Cancel produced an edit")
	}
}

func TestSessionBeginCommitsOpenEditImplicitly(t *testing.T) {
	var s Session
	s.Begin(101, "description", "old")
	s.SetDraft("new desc")

	implicit, hadPrev := s.Begin(101, "name", "SH010")
	if !hadPrev {
		t.Fatal("second Begin did not commit the open edit")
	}
	if implicit.Field != "description" || implicit.Value != "new desc" {
		t.Fatalf("implicit edit = %+v", implicit)
	}
	if s.State() != EditEditing || s.Field() != "name" {
		t.Fatalf("session = state %v field %q, want editing name", s.State(), s.Field())
	}
}

func TestResolveKeepsEditBegunDuringCommit(t *testing.T) {
	var s Session
	s.Begin(101, "description", "old")
	s.SetDraft("new")
	if _, ok := s.Commit(); !ok {
		t.Fatal("Commit returned ok=false with an open edit")
	}

	// A new edit opens while the first commit is still in flight.
	s.Begin(101, "name", "SH010")

	// The late resolve for the first commit must not clear the newer edit.
	s.Resolve()
	if s.State() != EditEditing || s.Field() != "name" {
		t.Fatalf("session = state %v field %q, want editing name", s.State(), s.Field())
	}
	if s.Draft() != "SH010" {
		t.Fatalf("draft = %q, want SH010", s.Draft())
	}
}

func TestSessionCommitWithoutEditIsNoop(t *testing.T) {
	var s Session
	if _, ok := s.Commit(); ok {
		t.Fatal("Commit on idle session returned ok")
	}
	s.Resolve() // must not panic or corrupt state
	if s.State() != EditIdle {
		t.Fatalf("state = %v, want EditIdle", s.State())
	}
}
