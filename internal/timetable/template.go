package timetable

import (
	"sort"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
)

// Block lengths of the day template, in minutes.
const (
	TemplatePrepMinutes    = 60
	TemplateRestMinutes    = 10
	TemplateCleanupMinutes = 60
	DefaultBandMinutes     = 10
	MinRehearsalMinutes    = 10
)

// Notes of the fixed template blocks.
const (
	PrepNote    = "集合～準備"
	RestNote    = "休憩"
	CleanupNote = "終了～撤収"
)

type TemplateInput struct {
	EventID uuid.UUID
	// Bands in show order. The rehearsal follows it or its reverse.
	Bands           []domain.Band
	DurationsByBand map[uuid.UUID]int
	OpenTime        *string
	ShowStartTime   *string
	// ChangeoverMinutes sizes the break between consecutive bands in both
	// phases. A zero changeover still leaves an empty break in place.
	ChangeoverMinutes int
	RehearsalOrder    domain.RehearsalOrder
	NewID             func() uuid.UUID
}

type seed struct {
	slotType   domain.SlotType
	phase      domain.SlotPhase
	bandID     *uuid.UUID
	changeover *int
	note       string
	minutes    int
}

// GenerateTemplate lays out a whole day: gathering, the rehearsal round,
// a rest, the show and the teardown, each band followed by a changeover
// break except the last one of its block.
//
// Bands without timed songs get DefaultBandMinutes; rehearsal slots last at
// least MinRehearsalMinutes. The pre-show block starts at OpenTime, or ends
// at ShowStartTime when there is no OpenTime. The show starts at
// ShowStartTime, or right after the pre-show block. A block without a start
// gets no times.
func GenerateTemplate(in TemplateInput) ([]domain.Slot, error) {
	if len(in.Bands) == 0 {
		return nil, ErrNoBands
	}
	if in.ChangeoverMinutes < 0 {
		return nil, ValidationError{Field: "changeover_minutes", Reason: "must not be negative"}
	}

	open, err := optionalClock("open_time", in.OpenTime)
	if err != nil {
		return nil, err
	}
	showStart, err := optionalClock("show_start_time", in.ShowStartTime)
	if err != nil {
		return nil, err
	}

	newID := in.NewID
	if newID == nil {
		newID = uuid.New
	}

	rehearsal := make([]domain.Band, len(in.Bands))
	copy(rehearsal, in.Bands)
	if in.RehearsalOrder == domain.RehearsalReverse {
		for i, j := 0, len(rehearsal)-1; i < j; i, j = i+1, j-1 {
			rehearsal[i], rehearsal[j] = rehearsal[j], rehearsal[i]
		}
	}

	pre := []seed{{slotType: domain.SlotOther, phase: domain.PhaseRehearsalNormal, note: PrepNote, minutes: TemplatePrepMinutes}}
	pre = append(pre, in.bandSeeds(rehearsal, domain.PhaseRehearsalNormal)...)
	pre = append(pre, seed{slotType: domain.SlotOther, phase: domain.PhaseRehearsalNormal, note: RestNote, minutes: TemplateRestMinutes})

	show := in.bandSeeds(in.Bands, domain.PhaseShow)
	show = append(show, seed{slotType: domain.SlotOther, phase: domain.PhaseShow, note: CleanupNote, minutes: TemplateCleanupMinutes})

	preLen := 0
	for _, s := range pre {
		preLen += s.minutes
	}

	preStart := open
	if preStart == nil && showStart != nil && *showStart-preLen >= 0 {
		preStart = intPtr(*showStart - preLen)
	}
	if showStart == nil && preStart != nil {
		showStart = intPtr(*preStart + preLen)
	}

	out := make([]domain.Slot, 0, len(pre)+len(show))
	out = appendTimed(out, pre, preStart)
	out = appendTimed(out, show, showStart)

	for i := range out {
		out[i].ID = newID()
		out[i].EventID = in.EventID
		out[i].OrderInEvent = intPtr(i + 1)
	}

	return out, nil
}

func (in TemplateInput) bandMinutes(id uuid.UUID, phase domain.SlotPhase) int {
	d := DefaultBandMinutes
	if sec, ok := in.DurationsByBand[id]; ok && sec > 0 {
		d = (sec + 59) / 60
	}
	if phase.IsRehearsal() && d < MinRehearsalMinutes {
		d = MinRehearsalMinutes
	}
	return d
}

func (in TemplateInput) bandSeeds(bands []domain.Band, phase domain.SlotPhase) []seed {
	out := make([]seed, 0, len(bands)*2)
	for i, b := range bands {
		id := b.ID
		out = append(out, seed{
			slotType: domain.SlotBand,
			phase:    phase,
			bandID:   &id,
			minutes:  in.bandMinutes(b.ID, phase),
		})
		if i == len(bands)-1 {
			continue
		}
		out = append(out, seed{
			slotType:   domain.SlotBreak,
			phase:      phase,
			changeover: intPtr(in.ChangeoverMinutes),
			note:       ChangeoverNote,
			minutes:    in.ChangeoverMinutes,
		})
	}
	return out
}

func appendTimed(out []domain.Slot, seeds []seed, start *int) []domain.Slot {
	cursor := start
	for _, sd := range seeds {
		s := domain.Slot{
			BandID:            sd.bandID,
			SlotType:          sd.slotType,
			SlotPhase:         sd.phase,
			ChangeoverMinutes: sd.changeover,
		}
		if sd.note != "" {
			note := sd.note
			s.Note = &note
		}
		if cursor != nil {
			s.StartTime = clockPtr(*cursor)
			s.EndTime = clockPtr(*cursor + sd.minutes)
			cursor = intPtr(*cursor + sd.minutes)
		}
		out = append(out, s)
	}
	return out
}

func optionalClock(field string, v *string) (*int, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	m, ok := ParseClock(*v)
	if !ok {
		return nil, ValidationError{Field: field, Reason: "expected HH:MM"}
	}
	return &m, nil
}

// SortRehearsal reorders the band slots of one rehearsal phase to follow the
// roster, or its reverse, without moving anything else: the sorted slots
// take back the positions the phase's band slots held. Bands missing from
// the roster go last. The result is renumbered 1..N. With fewer than two
// such slots the list is returned in canonical order unchanged.
func SortRehearsal(slots []domain.Slot, bands []domain.Band, phase domain.SlotPhase, order domain.RehearsalOrder) []domain.Slot {
	cur := Sort(slots)

	inPhase := func(s domain.Slot) bool {
		return s.SlotPhase == phase && s.SlotType == domain.SlotBand && s.BandID != nil
	}

	var targets []domain.Slot
	for _, s := range cur {
		if inPhase(s) {
			targets = append(targets, s)
		}
	}
	if len(targets) <= 1 || len(bands) == 0 {
		return cur
	}

	rank := make(map[uuid.UUID]int, len(bands))
	for i, b := range bands {
		if order == domain.RehearsalReverse {
			rank[b.ID] = len(bands) - 1 - i
		} else {
			rank[b.ID] = i
		}
	}
	rankOf := func(s domain.Slot) int {
		if r, ok := rank[*s.BandID]; ok {
			return r
		}
		return len(bands)
	}

	sort.SliceStable(targets, func(i, j int) bool {
		return rankOf(targets[i]) < rankOf(targets[j])
	})

	k := 0
	for i := range cur {
		if inPhase(cur[i]) {
			cur[i] = targets[k]
			k++
		}
	}

	return Renumber(cur)
}
