// Package mutate implements the optimistic mutation controller: user-visible
// changes apply to local state immediately, the matching remote update runs
// underneath, and a failed remote call rolls local state back exactly. The
// same controller is shared by every view instead of being re-derived per
// component.
package mutate

import (
	"context"
	"strings"
	"sync/atomic"

	"slate-cli/internal/api"
	"slate-cli/internal/fieldmap"
	"slate-cli/internal/model"
	"slate-cli/internal/stash"
)

// Backend is the transport slice the controller needs. *api.Client satisfies
// it; tests substitute fakes.
type Backend interface {
	Query(ctx context.Context, kind model.Kind, filter api.Filter) ([]model.Record, error)
	UpdateField(ctx context.Context, kind model.Kind, id int64, column string, value any) error
	Create(ctx context.Context, kind model.Kind, payload model.Record) (model.Record, error)
	Delete(ctx context.Context, kind model.Kind, id int64, opts api.DeleteOpts) error
}

type Controller struct {
	Backend Backend
	// Stash mirrors confirmed values into the handoff slot for the entity
	// kind, so a later detail-view mount sees consistent data without a
	// re-fetch. Optional.
	Stash stash.Store
	// DeleteOpts carry the actor email/permission hint destructive endpoints
	// expect.
	DeleteOpts api.DeleteOpts

	// creating is the in-flight guard for non-optimistic creates. Atomic
	// because the TUI runs Create in a command goroutine while the event
	// loop reads the flag.
	creating atomic.Bool
}

// ApplyFieldUpdate performs a user-initiated change to one field of rec with
// zero perceived latency:
//
//  1. precondition checks (valid id; field resolves to a backend column)
//  2. snapshot the previous value
//  3. optimistic local write
//  4. remote update {id, field, value}
//  5. on success, mirror the value into the kind's stash slot
//  6. on failure, restore the snapshot and return the error (no retry)
//
// rec is mutated in place; on success local and backend state are identical,
// on failure rec equals its pre-call value. A rejected precondition is a
// no-op with no network call.
func (c *Controller) ApplyFieldUpdate(ctx context.Context, kind model.Kind, rec model.Record, field string, value any) error {
	commit, rollback, err := c.StageFieldUpdate(kind, rec, field, value)
	if err != nil {
		return err
	}
	if err := commit(ctx); err != nil {
		rollback()
		return err
	}
	return nil
}

// StageFieldUpdate is the two-phase form of ApplyFieldUpdate for event-loop
// UIs: preconditions and the optimistic local write run synchronously on the
// caller's loop, while commit (the remote update plus the stash mirror) is
// returned as a function safe to run off the loop. rollback restores the
// snapshot exactly and must be called on the loop when commit fails.
func (c *Controller) StageFieldUpdate(kind model.Kind, rec model.Record, field string, value any) (commit func(context.Context) error, rollback func(), err error) {
	if rec == nil || rec.ID() == 0 {
		return nil, nil, ErrNoEntity
	}
	field = strings.TrimSpace(field)
	column, known := fieldmap.Column(kind, field)
	if !known || column == "" {
		return nil, nil, NotEditableError{Kind: kind, Field: field}
	}
	if field == "status" {
		s, _ := value.(string)
		if !model.ValidStatus(kind, s) {
			return nil, nil, ErrInvalidStatus
		}
	}

	prev, had := rec[field]
	rec[field] = value
	id := rec.ID()

	commit = func(ctx context.Context) error {
		if err := c.Backend.UpdateField(ctx, kind, id, column, value); err != nil {
			return err
		}
		c.mirror(kind, id, model.Record{field: value})
		return nil
	}
	// Exact rollback: the system never keeps a value locally that was
	// rejected remotely.
	rollback = func() {
		if had {
			rec[field] = prev
		} else {
			delete(rec, field)
		}
	}
	return commit, rollback, nil
}

// mirror merges confirmed fields into the kind's stash slot, but only when
// the slot currently holds this entity — a list view may have re-stashed a
// different row since this edit started.
func (c *Controller) mirror(kind model.Kind, id int64, fields model.Record) {
	if c.Stash == nil {
		return
	}
	slot, ok := stash.SlotForKind(kind)
	if !ok {
		return
	}
	if c.Stash.Unstash(slot).ID() != id {
		return
	}
	_ = c.Stash.Merge(slot, fields)
}

// Create is NOT optimistic: a created record's identity is unknown until the
// backend responds, so there is nothing safe to render beyond a disabled
// submit affordance. The in-flight guard blocks duplicate submission; the
// caller re-fetches the owning collection after success.
func (c *Controller) Create(ctx context.Context, kind model.Kind, payload model.Record) (model.Record, error) {
	if !c.creating.CompareAndSwap(false, true) {
		return nil, ErrCreateInFlight
	}
	defer c.creating.Store(false)

	return c.Backend.Create(ctx, kind, payload)
}

// CreateInFlight reports whether a create call is pending (drives the
// disabled-submit affordance).
func (c *Controller) CreateInFlight() bool { return c.creating.Load() }

// Delete removes id from list only after the backend acknowledges the
// delete — destruction is never pre-applied speculatively. On failure the
// collection is re-fetched to resynchronize (local re-insertion would need a
// possibly-stale reconstruction); the returned list then reflects server
// state and the delete error is still returned so the caller can notify.
func (c *Controller) Delete(ctx context.Context, kind model.Kind, id int64, list []model.Record, filter api.Filter) ([]model.Record, error) {
	if err := c.Backend.Delete(ctx, kind, id, c.DeleteOpts); err != nil {
		fresh, qerr := c.Backend.Query(ctx, kind, filter)
		if qerr != nil {
			// Keep what we have; the delete error is the one to surface.
			return list, err
		}
		return fresh, err
	}

	out := make([]model.Record, 0, len(list))
	for _, rec := range list {
		if rec.ID() == id {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Refetch reloads a collection from the backend (post-create, or any time a
// view wants to resynchronize).
func (c *Controller) Refetch(ctx context.Context, kind model.Kind, filter api.Filter) ([]model.Record, error) {
	return c.Backend.Query(ctx, kind, filter)
}
