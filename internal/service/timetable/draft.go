package timetable

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/timetable"
)

type DraftOpKind string

const (
	OpMove             DraftOpKind = "move"
	OpAdd              DraftOpKind = "add"
	OpInsertAbove      DraftOpKind = "insert_above"
	OpInsertBelow      DraftOpKind = "insert_below"
	OpDuplicate        DraftOpKind = "duplicate"
	OpInsertChangeover DraftOpKind = "insert_changeover"
	OpEdit             DraftOpKind = "edit"
	OpSetDuration      DraftOpKind = "set_duration"
	OpCompact          DraftOpKind = "compact"
	OpRenumber         DraftOpKind = "renumber"
	OpRemove           DraftOpKind = "remove"
	OpSortRehearsal    DraftOpKind = "rehearsal_sort"
)

// DraftOp is one editor action. SlotID names the slot acted on; TargetID is
// the drop target of a move. Phase and Order drive rehearsal_sort; an empty
// Order falls back to the event's rehearsal order.
type DraftOp struct {
	Kind     DraftOpKind
	SlotID   uuid.UUID
	TargetID uuid.UUID
	Patch    timetable.SlotPatch
	Minutes  int
	Phase    domain.SlotPhase
	Order    domain.RehearsalOrder
}

type DraftResult struct {
	Slots []domain.Slot `json:"slots"`
	// Slot is the slot created by add, insert and duplicate operations.
	Slot *domain.Slot `json:"slot,omitempty"`
	// Changed counts slots moved by compact.
	Changed int `json:"changed"`
}

// ApplyDraft runs action against the caller's working copy and returns the new
// list. Nothing is stored; Save persists the result.
func (s *Service) ApplyDraft(ctx context.Context, eventID uuid.UUID, slots []domain.Slot, action DraftOp) (*DraftResult, error) {
	const op = "service.timetable.ApplyDraft"

	e, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := timetable.NewDraft(eventID, e.DefaultChangeoverMinutes, timetable.Normalize(eventID, slots))

	if action.Kind == OpSortRehearsal {
		bands, err := s.roster.ListBands(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		order := action.Order
		if order == "" {
			order = e.RehearsalOrder
		}
		if order == "" {
			order = domain.RehearsalSame
		}
		if err := d.SortRehearsal(bands, action.Phase, order); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &DraftResult{Slots: orEmpty(d.Slots())}, nil
	}

	res, err := applyOp(d, action)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res.Slots = orEmpty(d.Slots())
	return res, nil
}

func applyOp(d *timetable.Draft, op DraftOp) (*DraftResult, error) {
	res := &DraftResult{}

	created := func(sl domain.Slot, err error) (*DraftResult, error) {
		if err != nil {
			return nil, err
		}
		res.Slot = &sl
		return res, nil
	}

	switch op.Kind {
	case OpMove:
		return res, d.Move(op.SlotID, op.TargetID)
	case OpAdd:
		return created(d.Add(), nil)
	case OpInsertAbove:
		return created(d.InsertAbove(op.SlotID))
	case OpInsertBelow:
		return created(d.InsertBelow(op.SlotID))
	case OpDuplicate:
		return created(d.Duplicate(op.SlotID))
	case OpInsertChangeover:
		return created(d.InsertChangeover(op.SlotID))
	case OpEdit:
		return res, d.Edit(op.SlotID, op.Patch)
	case OpSetDuration:
		return res, d.SetDuration(op.SlotID, op.Minutes)
	case OpCompact:
		res.Changed = d.Compact()
		return res, nil
	case OpRenumber:
		d.Renumber()
		return res, nil
	case OpRemove:
		return res, d.Remove(op.SlotID)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDraftOp, op.Kind)
}
