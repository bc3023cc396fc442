package timetable

import (
	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
)

// Normalize prepares an editor's list for a batch save: it binds every slot
// to eventID, strips bands from non-band slots, turns empty strings into
// nulls, puts phaseless slots in the show and fills a missing order_in_event
// with the slot's position.
// Parseable times are rewritten as zero-padded "HH:MM" so stored values sort
// the same way they read; unparseable ones are kept for Validate to reject.
func Normalize(eventID uuid.UUID, slots []domain.Slot) []domain.Slot {
	out := make([]domain.Slot, len(slots))
	for i, s := range slots {
		s.EventID = eventID
		if s.SlotType != domain.SlotBand {
			s.BandID = nil
		}
		if s.SlotPhase == "" {
			s.SlotPhase = domain.PhaseShow
		}
		s.StartTime = canonicalClock(s.StartTime)
		s.EndTime = canonicalClock(s.EndTime)
		if s.Note != nil && *s.Note == "" {
			s.Note = nil
		}
		if s.OrderInEvent == nil {
			s.OrderInEvent = intPtr(i + 1)
		}
		out[i] = s
	}
	return out
}

func canonicalClock(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	if m, ok := ParseClock(*v); ok {
		return clockPtr(m)
	}
	return v
}

// Validate checks a list that is about to be saved. roster holds the ids of
// bands registered to the event.
func Validate(slots []domain.Slot, roster map[uuid.UUID]bool) error {
	seen := make(map[uuid.UUID]bool, len(slots))

	for _, s := range slots {
		if s.ID == uuid.Nil {
			return ValidationError{Field: "id", Reason: "required"}
		}
		if seen[s.ID] {
			return ValidationError{Field: "id", Reason: "duplicate slot id " + s.ID.String()}
		}
		seen[s.ID] = true

		if !s.SlotType.Valid() {
			return ValidationError{Field: "slot_type", Reason: "unknown slot type " + string(s.SlotType)}
		}

		if s.SlotPhase != "" && !s.SlotPhase.Valid() {
			return ValidationError{Field: "slot_phase", Reason: "unknown phase " + string(s.SlotPhase)}
		}

		if s.StartTime != nil {
			if _, ok := ParseClock(*s.StartTime); !ok {
				return ValidationError{Field: "start_time", Reason: "expected HH:MM"}
			}
		}
		if s.EndTime != nil {
			if _, ok := ParseClock(*s.EndTime); !ok {
				return ValidationError{Field: "end_time", Reason: "expected HH:MM"}
			}
		}

		if s.ChangeoverMinutes != nil && *s.ChangeoverMinutes < 0 {
			return ValidationError{Field: "changeover_minutes", Reason: "must not be negative"}
		}

		if s.OrderInEvent != nil && *s.OrderInEvent < 1 {
			return ValidationError{Field: "order_in_event", Reason: "must be 1 or greater"}
		}

		if s.BandID != nil && !roster[*s.BandID] {
			return ErrUnknownBand
		}
	}

	return nil
}
