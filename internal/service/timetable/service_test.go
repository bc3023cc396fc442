package timetable

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	redisx "github.com/kirinyoku/ttgo/internal/redis"
	"github.com/kirinyoku/ttgo/internal/repository/memory"
	redisrepo "github.com/kirinyoku/ttgo/internal/repository/redis"
	"github.com/kirinyoku/ttgo/internal/service/notify"
	"github.com/kirinyoku/ttgo/internal/timetable"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *memory.Store
	mr    *miniredis.Miniredis
	cache *redisrepo.Cache
	svc   *Service
}

func newFixture(t *testing.T, limit int) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := memory.NewStore()
	cache := redisrepo.New(rdb)

	var limiter *redisrepo.SlidingWindowLimiter
	if limit > 0 {
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "timetable", limit, time.Minute)
	}

	svc := New(Deps{
		Events:  store.Events(),
		Roster:  store.Roster(),
		Slots:   store.Slots(),
		Tx:      store,
		Cache:   cache,
		Limiter: limiter,
		Changes: notify.New(cache, redisx.NewTimetablePubSub(rdb), nil),
	}, Config{ViewTTL: time.Minute})

	return &fixture{store: store, mr: mr, cache: cache, svc: svc}
}

func strp(s string) *string { return &s }

func intp(v int) *int { return &v }

func (f *fixture) event(t *testing.T, showStart string, changeover int) domain.Event {
	t.Helper()
	e := domain.Event{
		ID:                       uuid.New(),
		Name:                     "Autumn live",
		Date:                     "2026-10-31",
		Status:                   domain.EventFixed,
		DefaultChangeoverMinutes: changeover,
	}
	if showStart != "" {
		e.ShowStartTime = strp(showStart)
	}
	require.NoError(t, f.store.Events().CreateEvent(context.Background(), &e))
	return e
}

func (f *fixture) band(t *testing.T, eventID uuid.UUID, name string, songSeconds ...int) domain.Band {
	t.Helper()
	ctx := context.Background()
	b := domain.Band{ID: uuid.New(), EventID: eventID, Name: name}
	require.NoError(t, f.store.Roster().CreateBand(ctx, &b))
	for i, sec := range songSeconds {
		require.NoError(t, f.store.Roster().CreateSong(ctx, &domain.Song{
			ID:              uuid.New(),
			BandID:          b.ID,
			Title:           name + " song",
			DurationSeconds: intp(sec),
			EntryType:       domain.EntrySong,
			OrderIndex:      i,
		}))
	}
	return b
}

func times(slots []domain.Slot) [][2]string {
	out := make([][2]string, len(slots))
	for i, s := range slots {
		var start, end string
		if s.StartTime != nil {
			start = *s.StartTime
		}
		if s.EndTime != nil {
			end = *s.EndTime
		}
		out[i] = [2]string{start, end}
	}
	return out
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)
	a := f.band(t, e.ID, "A", 300)
	f.band(t, e.ID, "B")
	f.band(t, e.ID, "C", 100, 80)

	key := redisx.KeyTimetableView(e.ID)
	require.NoError(t, f.mr.Set(key, "stale"))

	slots, err := f.svc.Generate(ctx, e.ID, GenerateRequest{})
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"18:00", "18:05"}, {"18:15", ""}, {"18:15", "18:18"}}, times(slots))
	assert.Equal(t, a.ID, *slots[0].BandID)
	assert.False(t, f.mr.Exists(key), "cached view must be dropped after commit")

	stored, err := f.store.Slots().ListSlots(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestGenerate_NoBands(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)

	_, err := f.svc.Generate(ctx, e.ID, GenerateRequest{Confirm: true})
	assert.ErrorIs(t, err, ErrNoBands)

	n, err := f.store.Slots().CountSlots(ctx, e.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGenerate_RequiresConfirmationToReplace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)
	f.band(t, e.ID, "A", 300)
	f.band(t, e.ID, "B", 300)

	first, err := f.svc.Generate(ctx, e.ID, GenerateRequest{})
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, e.ID, GenerateRequest{})
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	stored, err := f.store.Slots().ListSlots(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, stored[0].ID)

	second, err := f.svc.Generate(ctx, e.ID, GenerateRequest{Confirm: true})
	require.NoError(t, err)
	assert.NotEqual(t, first[0].ID, second[0].ID)

	n, err := f.store.Slots().CountSlots(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGenerate_BandOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "", 10)
	a := f.band(t, e.ID, "A")
	b := f.band(t, e.ID, "B")

	slots, err := f.svc.Generate(ctx, e.ID, GenerateRequest{BandOrder: []uuid.UUID{b.ID}})
	require.NoError(t, err)
	assert.Equal(t, b.ID, *slots[0].BandID)
	assert.Equal(t, a.ID, *slots[1].BandID)

	_, err = f.svc.Generate(ctx, e.ID, GenerateRequest{Confirm: true, BandOrder: []uuid.UUID{uuid.New()}})
	var ve timetable.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "band_order", ve.Field)
}

func TestGenerate_UnknownEvent(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.svc.Generate(context.Background(), uuid.New(), GenerateRequest{})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)
	a := f.band(t, e.ID, "A")

	band := domain.Slot{ID: uuid.New(), SlotType: domain.SlotBand, BandID: &a.ID, OrderInEvent: intp(2), StartTime: strp("18:30")}
	brk := domain.Slot{ID: uuid.New(), SlotType: domain.SlotBreak, BandID: &a.ID, OrderInEvent: intp(1), Note: strp("")}

	saved, err := f.svc.Save(ctx, e.ID, []domain.Slot{band, brk})
	require.NoError(t, err)
	require.Len(t, saved, 2)

	assert.Equal(t, brk.ID, saved[0].ID)
	assert.Nil(t, saved[0].BandID, "non-band slots lose their band")
	assert.Nil(t, saved[0].Note)
	assert.Equal(t, e.ID, saved[1].EventID)

	// edit in place by id
	band.StartTime = strp("19:00")
	saved, err = f.svc.Save(ctx, e.ID, []domain.Slot{band})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "19:00", *saved[1].StartTime)
}

func TestSave_StoresCanonicalTimes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)

	late := domain.Slot{ID: uuid.New(), SlotType: domain.SlotOther, OrderInEvent: intp(1), StartTime: strp("10:00")}
	early := domain.Slot{ID: uuid.New(), SlotType: domain.SlotOther, OrderInEvent: intp(1), StartTime: strp("9:00:00")}

	saved, err := f.svc.Save(ctx, e.ID, []domain.Slot{late, early})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, early.ID, saved[0].ID, "09:00 sorts before 10:00")
	assert.Equal(t, "09:00", *saved[0].StartTime)

	stored, err := f.store.Slots().ListSlots(ctx, e.ID)
	require.NoError(t, err)
	for _, sl := range stored {
		if sl.ID == early.ID {
			assert.Equal(t, "09:00", *sl.StartTime)
		}
	}
}

func TestSave_RejectsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)
	other := f.event(t, "18:00", 10)
	stranger := f.band(t, other.ID, "Elsewhere")

	ok := domain.Slot{ID: uuid.New(), SlotType: domain.SlotOther}
	foreign := domain.Slot{ID: uuid.New(), SlotType: domain.SlotBand, BandID: &stranger.ID}

	_, err := f.svc.Save(ctx, e.ID, []domain.Slot{ok, foreign})
	assert.ErrorIs(t, err, timetable.ErrUnknownBand)

	bad := domain.Slot{ID: uuid.New(), SlotType: domain.SlotOther, EndTime: strp("7pm")}
	_, err = f.svc.Save(ctx, e.ID, []domain.Slot{ok, bad})
	var ve timetable.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "end_time", ve.Field)

	n, err := f.store.Slots().CountSlots(ctx, e.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	taken := domain.Slot{ID: uuid.New(), SlotType: domain.SlotOther}
	_, err = f.svc.Save(ctx, other.ID, []domain.Slot{taken})
	require.NoError(t, err)
	_, err = f.svc.Save(ctx, e.ID, []domain.Slot{taken})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestView_PublishGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)
	f.band(t, e.ID, "A", 600)
	_, err := f.svc.Generate(ctx, e.ID, GenerateRequest{})
	require.NoError(t, err)

	hidden, err := f.svc.View(ctx, e.ID, Viewer{})
	require.NoError(t, err)
	assert.False(t, hidden.Visible)
	assert.Empty(t, hidden.Entries)

	staff, err := f.svc.View(ctx, e.ID, Viewer{Privileged: true})
	require.NoError(t, err)
	assert.True(t, staff.Visible)
	require.Len(t, staff.Entries, 1)
	assert.Equal(t, "A", *staff.Entries[0].BandName)
	assert.Equal(t, timetable.LabelBand, staff.Entries[0].Label)
	assert.Equal(t, 10, *staff.Entries[0].DurationMinutes)
	assert.False(t, f.mr.Exists(redisx.KeyTimetableView(e.ID)), "unpublished views are not cached")

	require.NoError(t, f.store.Events().SetPublished(ctx, e.ID, true))

	public, err := f.svc.View(ctx, e.ID, Viewer{})
	require.NoError(t, err)
	assert.True(t, public.Visible)
	assert.Len(t, public.Entries, 1)
	assert.True(t, f.mr.Exists(redisx.KeyTimetableView(e.ID)))
}

func TestView_CacheDroppedOnSave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)
	require.NoError(t, f.store.Events().SetPublished(ctx, e.ID, true))

	first, err := f.svc.View(ctx, e.ID, Viewer{})
	require.NoError(t, err)
	assert.Empty(t, first.Entries)

	_, err = f.svc.Save(ctx, e.ID, []domain.Slot{{ID: uuid.New(), SlotType: domain.SlotOther, Note: strp("集合")}})
	require.NoError(t, err)

	second, err := f.svc.View(ctx, e.ID, Viewer{})
	require.NoError(t, err)
	require.Len(t, second.Entries, 1)
	assert.Equal(t, timetable.LabelSetup, second.Entries[0].Label)
}

func TestView_RateLimited(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	e := f.event(t, "18:00", 10)

	_, err := f.svc.View(ctx, e.ID, Viewer{RateKey: "ip:10.0.0.1"})
	require.NoError(t, err)

	_, err = f.svc.View(ctx, e.ID, Viewer{RateKey: "ip:10.0.0.1"})
	var rl RateLimitedError
	require.ErrorAs(t, err, &rl)
	assert.Greater(t, rl.RetryAfter, time.Duration(0))

	_, err = f.svc.View(ctx, e.ID, Viewer{Privileged: true, RateKey: "ip:10.0.0.1"})
	assert.NoError(t, err)
}

func TestDeleteSlotKeepsOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)
	f.band(t, e.ID, "A", 60)
	f.band(t, e.ID, "B", 60)
	f.band(t, e.ID, "C", 60)

	slots, err := f.svc.Generate(ctx, e.ID, GenerateRequest{})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSlot(ctx, slots[1].ID))
	assert.ErrorIs(t, f.svc.DeleteSlot(ctx, slots[1].ID), ErrSlotNotFound)

	ed, err := f.svc.Editor(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, ed.Slots, 2)
	assert.Equal(t, 1, *ed.Slots[0].OrderInEvent)
	assert.Equal(t, 3, *ed.Slots[1].OrderInEvent)
	assert.Len(t, ed.Bands, 3)
}

func TestApplyDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 12)

	one := domain.Slot{ID: uuid.New(), SlotType: domain.SlotOther, OrderInEvent: intp(1)}
	two := domain.Slot{ID: uuid.New(), SlotType: domain.SlotOther, OrderInEvent: intp(2)}
	three := domain.Slot{ID: uuid.New(), SlotType: domain.SlotOther, OrderInEvent: intp(3)}
	list := []domain.Slot{one, two, three}

	res, err := f.svc.ApplyDraft(ctx, e.ID, list, DraftOp{Kind: OpMove, SlotID: three.ID, TargetID: one.ID})
	require.NoError(t, err)
	require.Len(t, res.Slots, 3)
	assert.Equal(t, []uuid.UUID{three.ID, one.ID, two.ID}, []uuid.UUID{res.Slots[0].ID, res.Slots[1].ID, res.Slots[2].ID})

	res, err = f.svc.ApplyDraft(ctx, e.ID, list, DraftOp{Kind: OpAdd})
	require.NoError(t, err)
	require.NotNil(t, res.Slot)
	assert.Equal(t, 4, *res.Slot.OrderInEvent)
	assert.Equal(t, 12, *res.Slot.ChangeoverMinutes)

	_, err = f.svc.ApplyDraft(ctx, e.ID, list, DraftOp{Kind: "explode"})
	assert.ErrorIs(t, err, ErrUnknownDraftOp)

	_, err = f.svc.ApplyDraft(ctx, e.ID, list, DraftOp{Kind: OpDuplicate, SlotID: uuid.New()})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	n, err := f.store.Slots().CountSlots(ctx, e.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "drafts are never stored")
}

func TestGenerate_Template(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := domain.Event{
		ID:                       uuid.New(),
		Name:                     "Day live",
		Date:                     "2026-11-03",
		Status:                   domain.EventFixed,
		DefaultChangeoverMinutes: 5,
		OpenTime:                 strp("12:00"),
		ShowStartTime:            strp("16:00"),
		RehearsalOrder:           domain.RehearsalReverse,
	}
	require.NoError(t, f.store.Events().CreateEvent(ctx, &e))
	a := f.band(t, e.ID, "A", 600)
	b := f.band(t, e.ID, "B", 300)

	slots, err := f.svc.Generate(ctx, e.ID, GenerateRequest{Template: true})
	require.NoError(t, err)
	require.Len(t, slots, 9)

	assert.Equal(t, [][2]string{
		{"12:00", "13:00"},
		{"13:00", "13:10"},
		{"13:10", "13:15"},
		{"13:15", "13:25"},
		{"13:25", "13:35"},
		{"16:00", "16:10"},
		{"16:10", "16:15"},
		{"16:15", "16:20"},
		{"16:20", "17:20"},
	}, times(slots))
	assert.Equal(t, b.ID, *slots[1].BandID, "rehearsal runs in reverse")
	assert.Equal(t, a.ID, *slots[3].BandID)
	assert.Equal(t, a.ID, *slots[5].BandID)

	ed, err := f.svc.Editor(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, ed.Slots, 9)
	assert.Equal(t, domain.PhaseRehearsalNormal, ed.Slots[0].SlotPhase)
	assert.Equal(t, domain.PhaseShow, ed.Slots[8].SlotPhase)

	_, err = f.svc.Generate(ctx, e.ID, GenerateRequest{Template: true})
	assert.ErrorIs(t, err, ErrConfirmationRequired)
}

func TestApplyDraft_SortRehearsal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	e := f.event(t, "18:00", 10)
	a := f.band(t, e.ID, "A")
	b := f.band(t, e.ID, "B")

	rn := domain.PhaseRehearsalNormal
	list := []domain.Slot{
		{ID: uuid.New(), SlotType: domain.SlotBand, SlotPhase: rn, BandID: &b.ID, OrderInEvent: intp(1)},
		{ID: uuid.New(), SlotType: domain.SlotBand, SlotPhase: rn, BandID: &a.ID, OrderInEvent: intp(2)},
		{ID: uuid.New(), SlotType: domain.SlotBand, BandID: &b.ID, OrderInEvent: intp(3)},
	}

	res, err := f.svc.ApplyDraft(ctx, e.ID, list, DraftOp{Kind: OpSortRehearsal, Phase: rn})
	require.NoError(t, err)
	require.Len(t, res.Slots, 3)
	assert.Equal(t, a.ID, *res.Slots[0].BandID)
	assert.Equal(t, b.ID, *res.Slots[1].BandID)
	assert.Equal(t, domain.PhaseShow, res.Slots[2].SlotPhase, "phaseless slots default to the show")

	res, err = f.svc.ApplyDraft(ctx, e.ID, list, DraftOp{Kind: OpSortRehearsal, Phase: rn, Order: domain.RehearsalReverse})
	require.NoError(t, err)
	assert.Equal(t, b.ID, *res.Slots[0].BandID)

	_, err = f.svc.ApplyDraft(ctx, e.ID, list, DraftOp{Kind: OpSortRehearsal, Phase: domain.PhaseShow})
	var ve timetable.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "slot_phase", ve.Field)
}
