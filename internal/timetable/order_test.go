package timetable

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSort(t *testing.T) {
	unordered := domain.Slot{ID: uuid.New()}
	late := slot(2, "19:00")
	early := slot(2, "18:00")
	first := slot(1, "")
	noteA := slot(3, "20:00")
	noteA.Note = strp("a")
	noteB := slot(3, "20:00")
	noteB.Note = strp("b")

	in := []domain.Slot{unordered, noteB, late, first, noteA, early}
	got := Sort(in)

	assert.Equal(t, []uuid.UUID{first.ID, early.ID, late.ID, noteA.ID, noteB.ID, unordered.ID}, ids(got))
	// input untouched
	assert.Equal(t, unordered.ID, in[0].ID)

	again := Sort([]domain.Slot{noteA, early, unordered, first, late, noteB})
	assert.Equal(t, ids(got), ids(again))
}

func TestRenumberAndMaxOrder(t *testing.T) {
	in := []domain.Slot{slot(7, ""), {ID: uuid.New()}, slot(3, "")}
	assert.Equal(t, 7, MaxOrder(in))
	assert.Equal(t, 0, MaxOrder(nil))

	got := Renumber(in)
	assert.Equal(t, []int{1, 2, 3}, orders(got))
	assert.Equal(t, 7, *in[0].OrderInEvent)
}

func TestLabel(t *testing.T) {
	mk := func(typ domain.SlotType, note string) domain.Slot {
		s := domain.Slot{SlotType: typ}
		if note != "" {
			s.Note = strp(note)
		}
		return s
	}

	tests := []struct {
		slot domain.Slot
		want string
	}{
		{mk(domain.SlotBand, "転換"), LabelBand},
		{mk(domain.SlotMC, ""), LabelMC},
		{mk(domain.SlotBreak, ""), LabelTransition},
		{mk(domain.SlotOther, "転換"), LabelTransition},
		{mk(domain.SlotOther, "Changeover"), LabelTransition},
		{mk(domain.SlotOther, "集合～準備"), LabelSetup},
		{mk(domain.SlotOther, "終了～撤収"), LabelTeardown},
		{mk(domain.SlotOther, "終了～解散"), LabelTeardown},
		{mk(domain.SlotBreak, "休憩"), LabelBreak},
		{mk(domain.SlotOther, "photo session"), LabelOther},
		{mk(domain.SlotOther, ""), LabelOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.slot), strOrEmpty(tt.slot.Note))
	}
}

func TestCanView(t *testing.T) {
	assert.False(t, CanView(false, false))
	assert.True(t, CanView(true, false))
	assert.True(t, CanView(false, true))
	assert.True(t, CanView(true, true))
}

func TestValidate(t *testing.T) {
	bandID := uuid.New()
	roster := map[uuid.UUID]bool{bandID: true}

	ok := slot(1, "18:00")
	ok.SlotType = domain.SlotBand
	ok.BandID = &bandID
	assert.NoError(t, Validate([]domain.Slot{ok, slot(2, "")}, roster))

	assert.Error(t, Validate([]domain.Slot{ok, ok}, roster))

	stranger := uuid.New()
	foreign := slot(1, "")
	foreign.BandID = &stranger
	assert.ErrorIs(t, Validate([]domain.Slot{foreign}, roster), ErrUnknownBand)

	var ve ValidationError
	bad := slot(1, "")
	bad.SlotType = "encore"
	assert.ErrorAs(t, Validate([]domain.Slot{bad}, roster), &ve)

	badTime := slot(1, "")
	badTime.EndTime = strp("nine")
	assert.ErrorAs(t, Validate([]domain.Slot{badTime}, roster), &ve)
	assert.Equal(t, "end_time", ve.Field)

	zero := slot(0, "")
	assert.ErrorAs(t, Validate([]domain.Slot{zero}, roster), &ve)
	assert.Equal(t, "order_in_event", ve.Field)

	assert.ErrorAs(t, Validate([]domain.Slot{{SlotType: domain.SlotOther}}, roster), &ve)
	assert.Equal(t, "id", ve.Field)
}

func TestNormalize(t *testing.T) {
	eventID := uuid.New()
	bandID := uuid.New()

	brk := domain.Slot{ID: uuid.New(), SlotType: domain.SlotBreak, BandID: &bandID, StartTime: strp(""), Note: strp("")}
	band := slot(9, "18:00")
	band.SlotType = domain.SlotBand
	band.BandID = &bandID

	got := Normalize(eventID, []domain.Slot{brk, band})

	assert.Nil(t, got[0].BandID)
	assert.Nil(t, got[0].StartTime)
	assert.Nil(t, got[0].Note)
	assert.Equal(t, 1, *got[0].OrderInEvent)
	assert.Equal(t, eventID, got[0].EventID)

	assert.Equal(t, bandID, *got[1].BandID)
	assert.Equal(t, 9, *got[1].OrderInEvent)
}

func TestNormalize_CanonicalTimes(t *testing.T) {
	a := slot(1, "9:00:00")
	a.EndTime = strp("9:30")
	b := slot(1, "7pm")

	got := Normalize(uuid.New(), []domain.Slot{a, b})

	assert.Equal(t, "09:00", *got[0].StartTime)
	assert.Equal(t, "09:30", *got[0].EndTime)
	assert.Equal(t, "7pm", *got[1].StartTime, "unparseable values are left for Validate")
	assert.Error(t, Validate(got[1:], nil))
}
