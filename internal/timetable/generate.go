package timetable

import (
	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
)

// ChangeoverNote marks break slots that stand for a stage changeover.
const ChangeoverNote = "転換"

type GenerateInput struct {
	EventID uuid.UUID
	// Bands in running order. Generate never re-sorts them.
	Bands []domain.Band
	// DurationsByBand maps band id to total performance seconds. Missing
	// bands have no known duration.
	DurationsByBand   map[uuid.UUID]int
	ShowStartTime     *string
	ChangeoverMinutes int
	// ChangeoverSlots emits an explicit break slot between bands instead of
	// folding the changeover into the cursor.
	ChangeoverSlots bool
	NewID           func() uuid.UUID
}

// DurationsByBand totals the timed, non-MC songs of each band in seconds.
// Bands without such songs are left out.
func DurationsByBand(songs []domain.Song) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, s := range songs {
		if s.EntryType == domain.EntryMC {
			continue
		}
		if s.DurationSeconds == nil || *s.DurationSeconds <= 0 {
			continue
		}
		out[s.BandID] += *s.DurationSeconds
	}
	return out
}

// Generate builds a fresh band running order with computed times. Every
// slot belongs to the show phase.
//
// The cursor starts at the show start time. A band with a known duration
// gets an end time and moves the cursor by its duration plus the changeover;
// a band without one only gets a start time and leaves the cursor where it
// was. Without a show start time no times are set at all.
//
// With ChangeoverSlots the changeover becomes its own break slot between
// bands. That break always spans the changeover and moves the cursor past
// it, so a band of unknown length is followed by a timed break.
func Generate(in GenerateInput) ([]domain.Slot, error) {
	if len(in.Bands) == 0 {
		return nil, ErrNoBands
	}
	if in.ChangeoverMinutes < 0 {
		return nil, ValidationError{Field: "changeover_minutes", Reason: "must not be negative"}
	}

	newID := in.NewID
	if newID == nil {
		newID = uuid.New
	}

	var cursor *int
	if in.ShowStartTime != nil && *in.ShowStartTime != "" {
		start, ok := ParseClock(*in.ShowStartTime)
		if !ok {
			return nil, ValidationError{Field: "show_start_time", Reason: "expected HH:MM"}
		}
		cursor = &start
	}

	out := make([]domain.Slot, 0, len(in.Bands)*2)
	order := 0

	for i, band := range in.Bands {
		var durationMin *int
		if sec, ok := in.DurationsByBand[band.ID]; ok && sec > 0 {
			d := (sec + 59) / 60
			durationMin = &d
		}

		var start, end *string
		if cursor != nil {
			start = clockPtr(*cursor)
			if durationMin != nil {
				end = clockPtr(*cursor + *durationMin)
			}
		}

		order++
		bandID := band.ID
		out = append(out, domain.Slot{
			ID:                newID(),
			EventID:           in.EventID,
			BandID:            &bandID,
			SlotType:          domain.SlotBand,
			SlotPhase:         domain.PhaseShow,
			OrderInEvent:      intPtr(order),
			StartTime:         start,
			EndTime:           end,
			ChangeoverMinutes: intPtr(in.ChangeoverMinutes),
		})

		if !in.ChangeoverSlots {
			if cursor != nil && durationMin != nil {
				next := *cursor + *durationMin + in.ChangeoverMinutes
				cursor = &next
			}
			continue
		}

		if cursor != nil && durationMin != nil {
			next := *cursor + *durationMin
			cursor = &next
		}

		if i == len(in.Bands)-1 || in.ChangeoverMinutes <= 0 {
			continue
		}

		// The break always has the full changeover length, even after a
		// band whose own length is unknown.
		var coStart, coEnd *string
		if cursor != nil {
			coStart = clockPtr(*cursor)
			coEnd = clockPtr(*cursor + in.ChangeoverMinutes)
			next := *cursor + in.ChangeoverMinutes
			cursor = &next
		}

		order++
		note := ChangeoverNote
		out = append(out, domain.Slot{
			ID:                newID(),
			EventID:           in.EventID,
			SlotType:          domain.SlotBreak,
			SlotPhase:         domain.PhaseShow,
			OrderInEvent:      intPtr(order),
			StartTime:         coStart,
			EndTime:           coEnd,
			ChangeoverMinutes: intPtr(in.ChangeoverMinutes),
			Note:              &note,
		})
	}

	return out, nil
}

// OrderBands arranges the roster by an explicit id list. Listed bands come
// first in the given order; the rest keep their roster order.
func OrderBands(roster []domain.Band, ids []uuid.UUID) ([]domain.Band, error) {
	if len(ids) == 0 {
		return roster, nil
	}

	byID := make(map[uuid.UUID]domain.Band, len(roster))
	for _, b := range roster {
		byID[b.ID] = b
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]domain.Band, 0, len(roster))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			return nil, ErrUnknownBand
		}
		if seen[id] {
			return nil, ErrDuplicateBand
		}
		seen[id] = true
		out = append(out, b)
	}

	for _, b := range roster {
		if !seen[b.ID] {
			out = append(out, b)
		}
	}

	return out, nil
}

func intPtr(v int) *int {
	return &v
}
