package timetable

import (
	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
)

// Draft is an editor's working copy of one event's slots. Its methods only
// transform the in-memory list; saving is a separate, explicit step.
type Draft struct {
	eventID           uuid.UUID
	defaultChangeover int
	slots             []domain.Slot
	newID             func() uuid.UUID
}

func NewDraft(eventID uuid.UUID, defaultChangeover int, slots []domain.Slot) *Draft {
	return &Draft{
		eventID:           eventID,
		defaultChangeover: defaultChangeover,
		slots:             Sort(slots),
		newID:             uuid.New,
	}
}

// Slots returns the current list in canonical order.
func (d *Draft) Slots() []domain.Slot {
	return Sort(d.slots)
}

func (d *Draft) indexOf(id uuid.UUID) int {
	for i, s := range d.slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Move takes the slot with sourceID out of the list and reinserts it at the
// position held by destinationID, then renumbers every slot 1..N. Dropping a
// slot onto itself changes nothing.
func (d *Draft) Move(sourceID, destinationID uuid.UUID) error {
	if sourceID == destinationID {
		if d.indexOf(sourceID) < 0 {
			return ErrSlotNotFound
		}
		return nil
	}

	d.slots = Sort(d.slots)
	from, to := d.indexOf(sourceID), d.indexOf(destinationID)
	if from < 0 || to < 0 {
		return ErrSlotNotFound
	}

	moved := d.slots[from]
	rest := make([]domain.Slot, 0, len(d.slots))
	rest = append(rest, d.slots[:from]...)
	rest = append(rest, d.slots[from+1:]...)

	next := make([]domain.Slot, 0, len(d.slots))
	next = append(next, rest[:to]...)
	next = append(next, moved)
	next = append(next, rest[to:]...)

	d.slots = Renumber(next)
	return nil
}

// Renumber sets order_in_event to 1..N over the canonical order.
func (d *Draft) Renumber() {
	d.slots = Renumber(Sort(d.slots))
}

func (d *Draft) blank(phase domain.SlotPhase) domain.Slot {
	if phase == "" {
		phase = domain.PhaseShow
	}
	return domain.Slot{
		ID:                d.newID(),
		EventID:           d.eventID,
		SlotType:          domain.SlotBand,
		SlotPhase:         phase,
		ChangeoverMinutes: intPtr(d.defaultChangeover),
	}
}

// Add appends an empty show band slot after the highest order_in_event.
func (d *Draft) Add() domain.Slot {
	s := d.blank(domain.PhaseShow)
	s.OrderInEvent = intPtr(MaxOrder(d.slots) + 1)
	d.slots = append(d.slots, s)
	return s
}

// InsertAt places slot at index in canonical order and renumbers.
func (d *Draft) InsertAt(index int, slot domain.Slot) {
	cur := Sort(d.slots)
	if index < 0 {
		index = 0
	}
	if index > len(cur) {
		index = len(cur)
	}

	next := make([]domain.Slot, 0, len(cur)+1)
	next = append(next, cur[:index]...)
	next = append(next, slot)
	next = append(next, cur[index:]...)

	d.slots = Renumber(next)
}

func (d *Draft) insertRelative(id uuid.UUID, offset int, build func(base domain.Slot) domain.Slot) (domain.Slot, error) {
	d.slots = Sort(d.slots)
	i := d.indexOf(id)
	if i < 0 {
		return domain.Slot{}, ErrSlotNotFound
	}

	s := build(d.slots[i])
	d.InsertAt(i+offset, s)

	return d.slots[d.indexOf(s.ID)], nil
}

// InsertAbove adds an empty slot directly before id, in the same phase.
func (d *Draft) InsertAbove(id uuid.UUID) (domain.Slot, error) {
	return d.insertRelative(id, 0, func(base domain.Slot) domain.Slot { return d.blank(base.SlotPhase) })
}

// InsertBelow adds an empty slot directly after id, in the same phase.
func (d *Draft) InsertBelow(id uuid.UUID) (domain.Slot, error) {
	return d.insertRelative(id, 1, func(base domain.Slot) domain.Slot { return d.blank(base.SlotPhase) })
}

// Duplicate copies id below itself under a fresh id.
func (d *Draft) Duplicate(id uuid.UUID) (domain.Slot, error) {
	return d.insertRelative(id, 1, func(base domain.Slot) domain.Slot {
		cp := base
		cp.ID = d.newID()
		cp.OrderInEvent = nil
		return cp
	})
}

// InsertChangeover adds a changeover break after id.
func (d *Draft) InsertChangeover(id uuid.UUID) (domain.Slot, error) {
	return d.insertRelative(id, 1, func(base domain.Slot) domain.Slot {
		s := d.blank(base.SlotPhase)
		s.SlotType = domain.SlotBreak
		note := ChangeoverNote
		s.Note = &note
		return s
	})
}

// SlotPatch is a partial edit. Nil fields are left alone. An empty string
// clears a time or the note; uuid.Nil clears the band.
type SlotPatch struct {
	SlotType          *domain.SlotType
	SlotPhase         *domain.SlotPhase
	BandID            *uuid.UUID
	StartTime         *string
	EndTime           *string
	ChangeoverMinutes *int
	Note              *string
}

// Edit applies patch to slot id. A slot that ends up as anything other than
// a band slot loses its band.
func (d *Draft) Edit(id uuid.UUID, patch SlotPatch) error {
	i := d.indexOf(id)
	if i < 0 {
		return ErrSlotNotFound
	}
	s := d.slots[i]

	if patch.SlotType != nil {
		if !patch.SlotType.Valid() {
			return ValidationError{Field: "slot_type", Reason: "unknown slot type"}
		}
		s.SlotType = *patch.SlotType
	}

	if patch.SlotPhase != nil {
		if !patch.SlotPhase.Valid() {
			return ValidationError{Field: "slot_phase", Reason: "unknown phase"}
		}
		s.SlotPhase = *patch.SlotPhase
	}

	if patch.BandID != nil {
		if *patch.BandID == uuid.Nil {
			s.BandID = nil
		} else {
			b := *patch.BandID
			s.BandID = &b
		}
	}

	if patch.StartTime != nil {
		v, err := clockField("start_time", *patch.StartTime)
		if err != nil {
			return err
		}
		s.StartTime = v
	}

	if patch.EndTime != nil {
		v, err := clockField("end_time", *patch.EndTime)
		if err != nil {
			return err
		}
		s.EndTime = v
	}

	if patch.ChangeoverMinutes != nil {
		if *patch.ChangeoverMinutes < 0 {
			return ValidationError{Field: "changeover_minutes", Reason: "must not be negative"}
		}
		s.ChangeoverMinutes = intPtr(*patch.ChangeoverMinutes)
	}

	if patch.Note != nil {
		if *patch.Note == "" {
			s.Note = nil
		} else {
			n := *patch.Note
			s.Note = &n
		}
	}

	if s.SlotType != domain.SlotBand {
		s.BandID = nil
	}

	d.slots[i] = s
	return nil
}

func clockField(field, v string) (*string, error) {
	if v == "" {
		return nil, nil
	}
	m, ok := ParseClock(v)
	if !ok {
		return nil, ValidationError{Field: field, Reason: "expected HH:MM"}
	}
	return clockPtr(m), nil
}

// SetDuration fixes the slot length. With a start time the end moves; with
// only an end time the start moves; without either nothing changes.
func (d *Draft) SetDuration(id uuid.UUID, minutes int) error {
	i := d.indexOf(id)
	if i < 0 {
		return ErrSlotNotFound
	}
	if minutes <= 0 {
		return nil
	}

	s := d.slots[i]
	if start, ok := parseClockPtr(s.StartTime); ok {
		s.EndTime = clockPtr(WrapDay(start + minutes))
	} else if end, ok := parseClockPtr(s.EndTime); ok {
		s.StartTime = clockPtr(WrapDay(end - minutes))
	}

	d.slots[i] = s
	return nil
}

// Compact closes gaps between consecutive timed slots: each one starts where
// the previous timed slot ended and keeps its own length. A slot without a
// usable length breaks the chain. It reports how many slots moved.
func (d *Draft) Compact() int {
	cur := Sort(d.slots)
	changed := 0

	var cursor *int
	for i, s := range cur {
		start, okStart := parseClockPtr(s.StartTime)
		dur, okDur := SlotDuration(s)
		if !okStart || !okDur {
			cursor = nil
			continue
		}

		nextStart := start
		if cursor != nil {
			nextStart = *cursor
		}
		nextEnd := nextStart + dur
		cursor = &nextEnd

		newStart := FormatClock(WrapDay(nextStart))
		newEnd := FormatClock(WrapDay(nextEnd))
		if newStart != *s.StartTime || newEnd != *s.EndTime {
			changed++
		}
		s.StartTime = &newStart
		s.EndTime = &newEnd
		cur[i] = s
	}

	d.slots = cur
	return changed
}

// Remove drops slot id. Remaining order values are left as they are.
func (d *Draft) Remove(id uuid.UUID) error {
	i := d.indexOf(id)
	if i < 0 {
		return ErrSlotNotFound
	}
	d.slots = append(d.slots[:i:i], d.slots[i+1:]...)
	return nil
}

// SortRehearsal puts the band slots of a rehearsal phase into roster order,
// or its reverse. See SortRehearsal for what stays in place.
func (d *Draft) SortRehearsal(bands []domain.Band, phase domain.SlotPhase, order domain.RehearsalOrder) error {
	if !phase.IsRehearsal() {
		return ValidationError{Field: "slot_phase", Reason: "expected a rehearsal phase"}
	}
	if !order.Valid() {
		return ValidationError{Field: "order", Reason: "expected same or reverse"}
	}
	d.slots = SortRehearsal(d.slots, bands, phase, order)
	return nil
}
