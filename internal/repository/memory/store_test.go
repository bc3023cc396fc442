package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(t *testing.T, s *Store) domain.Event {
	t.Helper()
	e := domain.Event{ID: uuid.New(), Name: "Spring live", Date: "2026-04-18", Status: domain.EventDraft}
	require.NoError(t, s.Events().CreateEvent(context.Background(), &e))
	return e
}

func seedBand(t *testing.T, s *Store, eventID uuid.UUID, name string) domain.Band {
	t.Helper()
	b := domain.Band{ID: uuid.New(), EventID: eventID, Name: name}
	require.NoError(t, s.Roster().CreateBand(context.Background(), &b))
	return b
}

func TestRunTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := seedEvent(t, s)

	boom := errors.New("boom")
	err := s.RunTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Events().SetPublished(ctx, e.ID, true))
		require.NoError(t, s.Roster().CreateBand(ctx, &domain.Band{ID: uuid.New(), EventID: e.ID, Name: "inside"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Events().GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, got.TimetableIsPublished)

	bands, err := s.Roster().ListBands(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, bands)
}

func TestRunTx_Commits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := seedEvent(t, s)

	require.NoError(t, s.RunTx(ctx, func(ctx context.Context) error {
		return s.Events().SetPublished(ctx, e.ID, true)
	}))

	got, err := s.Events().GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.TimetableIsPublished)
}

func TestDeleteEventCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := seedEvent(t, s)
	b := seedBand(t, s, e.ID, "A")

	require.NoError(t, s.Roster().CreateSong(ctx, &domain.Song{ID: uuid.New(), BandID: b.ID, Title: "one"}))
	require.NoError(t, s.Slots().UpsertSlots(ctx, []domain.Slot{{ID: uuid.New(), EventID: e.ID, BandID: &b.ID, SlotType: domain.SlotBand}}))

	require.NoError(t, s.Events().DeleteEvent(ctx, e.ID))

	n, err := s.Slots().CountSlots(ctx, e.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	songs, err := s.Roster().ListSongs(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, songs)

	assert.ErrorIs(t, s.Events().DeleteEvent(ctx, e.ID), repository.ErrNotFound)
}

func TestDeleteBandUnassignsSlots(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := seedEvent(t, s)
	b := seedBand(t, s, e.ID, "A")
	slotID := uuid.New()

	require.NoError(t, s.Slots().UpsertSlots(ctx, []domain.Slot{{ID: slotID, EventID: e.ID, BandID: &b.ID, SlotType: domain.SlotBand}}))
	require.NoError(t, s.Roster().DeleteBand(ctx, b.ID))

	slots, err := s.Slots().ListSlots(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Nil(t, slots[0].BandID)
}

func TestListBandsKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := seedEvent(t, s)

	for _, name := range []string{"C", "A", "B"} {
		seedBand(t, s, e.ID, name)
	}

	bands, err := s.Roster().ListBands(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, bands, 3)
	assert.Equal(t, "C", bands[0].Name)
	assert.Equal(t, "A", bands[1].Name)
	assert.Equal(t, "B", bands[2].Name)
}

func TestSlotForeignKeys(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := seedEvent(t, s)
	other := seedEvent(t, s)

	stranger := uuid.New()
	err := s.Slots().UpsertSlots(ctx, []domain.Slot{{ID: uuid.New(), EventID: e.ID, BandID: &stranger, SlotType: domain.SlotBand}})
	assert.ErrorIs(t, err, repository.ErrForeignKey)

	err = s.Roster().CreateBand(ctx, &domain.Band{ID: uuid.New(), EventID: uuid.New(), Name: "x"})
	assert.ErrorIs(t, err, repository.ErrForeignKey)

	id := uuid.New()
	require.NoError(t, s.Slots().UpsertSlots(ctx, []domain.Slot{{ID: id, EventID: e.ID, SlotType: domain.SlotOther}}))
	err = s.Slots().UpsertSlots(ctx, []domain.Slot{{ID: id, EventID: other.ID, SlotType: domain.SlotOther}})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestReplaceAndDeleteSlots(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := seedEvent(t, s)

	first := []domain.Slot{{ID: uuid.New(), EventID: e.ID, SlotType: domain.SlotOther}, {ID: uuid.New(), EventID: e.ID, SlotType: domain.SlotMC}}
	require.NoError(t, s.Slots().ReplaceSlots(ctx, e.ID, first))

	second := []domain.Slot{{ID: uuid.New(), EventID: e.ID, SlotType: domain.SlotBreak}}
	require.NoError(t, s.Slots().ReplaceSlots(ctx, e.ID, second))

	n, err := s.Slots().CountSlots(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	eventID, err := s.Slots().DeleteSlot(ctx, second[0].ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, eventID)

	_, err = s.Slots().DeleteSlot(ctx, second[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
