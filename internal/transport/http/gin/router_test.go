package httpgin

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	redisx "github.com/kirinyoku/ttgo/internal/redis"
	"github.com/kirinyoku/ttgo/internal/repository/memory"
	redisrepo "github.com/kirinyoku/ttgo/internal/repository/redis"
	"github.com/kirinyoku/ttgo/internal/service"
	ttsvc "github.com/kirinyoku/ttgo/internal/service/timetable"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()

	svcs := service.NewServices(
		service.Repos{
			Tx:     store,
			Events: store.Events(),
			Roster: store.Roster(),
			Slots:  store.Slots(),
		},
		redisrepo.New(rdb),
		redisx.NewTimetablePubSub(rdb),
		redisrepo.NewSlidingWindowLimiter(rdb, "timetable", limit, time.Minute),
		logger,
		service.Config{Timetable: ttsvc.Config{ViewTTL: time.Minute}},
	)

	return NewRouter(svcs, redisrepo.NewIdempotencyStore(rdb, time.Hour), logger)
}

func do(t *testing.T, r http.Handler, method, path, role string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set(HeaderViewerRole, role)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// seedEvent creates an event with two bands whose set lists last 5 and 4
// minutes.
func seedEvent(t *testing.T, r http.Handler) (domain.Event, []domain.Band) {
	t.Helper()

	w := do(t, r, http.MethodPost, "/admin/events", "organizer", CreateEventRequest{
		Name:                     "Autumn live",
		Date:                     "2026-10-31",
		DefaultChangeoverMinutes: intp(10),
		ShowStartTime:            strp("18:00"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	e := decode[domain.Event](t, w)

	var bands []domain.Band
	for _, seed := range []struct {
		name string
		secs int
	}{{"Alpha", 300}, {"Beta", 240}} {
		w = do(t, r, http.MethodPost, "/admin/events/"+e.ID.String()+"/bands", "organizer", CreateBandRequest{Name: seed.name})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		b := decode[domain.Band](t, w)

		w = do(t, r, http.MethodPost, "/admin/bands/"+b.ID.String()+"/songs", "organizer", CreateSongRequest{
			Title:           "Opener",
			DurationSeconds: intp(seed.secs),
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		bands = append(bands, b)
	}

	return e, bands
}

func strp(s string) *string { return &s }

func intp(v int) *int { return &v }

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, 10)
	w := do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAdminRequiresRole(t *testing.T) {
	r := newTestRouter(t, 10)

	for _, role := range []string{"", "member", "guest"} {
		w := do(t, r, http.MethodPost, "/admin/events", role, CreateEventRequest{Name: "x", Date: "2026-01-01"})
		assert.Equal(t, http.StatusForbidden, w.Code, role)
	}

	w := do(t, r, http.MethodPost, "/admin/events", " Admin ", CreateEventRequest{Name: "x", Date: "2026-01-01"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateEventValidation(t *testing.T) {
	r := newTestRouter(t, 10)

	w := do(t, r, http.MethodPost, "/admin/events", "organizer", CreateEventRequest{Name: "x", Date: "31/10/2026"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/admin/events", "organizer", map[string]any{"date": "2026-10-31"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/events/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/events/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateFlow(t *testing.T) {
	r := newTestRouter(t, 100)
	e, bands := seedEvent(t, r)
	path := "/admin/events/" + e.ID.String() + "/timetable/generate"

	w := do(t, r, http.MethodPost, path, "organizer", GenerateRequest{})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[SlotsResponse](t, w)
	require.Len(t, got.Slots, 2)
	assert.Equal(t, bands[0].ID, *got.Slots[0].BandID)
	assert.Equal(t, "18:00", *got.Slots[0].StartTime)
	assert.Equal(t, "18:05", *got.Slots[0].EndTime)
	assert.Equal(t, "18:15", *got.Slots[1].StartTime)
	assert.Equal(t, "18:19", *got.Slots[1].EndTime)

	w = do(t, r, http.MethodPost, path, "organizer", GenerateRequest{})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, path, "organizer", GenerateRequest{
		Confirm:   true,
		BandOrder: []string{bands[1].ID.String()},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got = decode[SlotsResponse](t, w)
	assert.Equal(t, bands[1].ID, *got.Slots[0].BandID)

	w = do(t, r, http.MethodPost, path, "organizer", GenerateRequest{
		Confirm:   true,
		BandOrder: []string{uuid.NewString()},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateTemplate(t *testing.T) {
	r := newTestRouter(t, 100)
	e, bands := seedEvent(t, r)

	w := do(t, r, http.MethodPatch, "/admin/events/"+e.ID.String(), "organizer", UpdateEventRequest{
		OpenTime:       strp("14:00"),
		RehearsalOrder: strp("reverse"),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[domain.Event](t, w)
	assert.Equal(t, domain.RehearsalReverse, updated.RehearsalOrder)

	w = do(t, r, http.MethodPost, "/admin/events/"+e.ID.String()+"/timetable/generate", "organizer", GenerateRequest{Template: true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[SlotsResponse](t, w)
	require.Len(t, got.Slots, 9)

	assert.Equal(t, "14:00", *got.Slots[0].StartTime)
	assert.Equal(t, domain.PhaseRehearsalNormal, got.Slots[1].SlotPhase)
	assert.Equal(t, bands[1].ID, *got.Slots[1].BandID)
	assert.Equal(t, "15:00", *got.Slots[1].StartTime)
	assert.Equal(t, domain.PhaseShow, got.Slots[5].SlotPhase)
	assert.Equal(t, bands[0].ID, *got.Slots[5].BandID)
	assert.Equal(t, "18:00", *got.Slots[5].StartTime)
	assert.Equal(t, "19:19", *got.Slots[8].EndTime)

	w = do(t, r, http.MethodPatch, "/admin/events/"+e.ID.String(), "organizer", UpdateEventRequest{
		RehearsalOrder: strp("random"),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateNoBands(t *testing.T) {
	r := newTestRouter(t, 100)
	w := do(t, r, http.MethodPost, "/admin/events", "organizer", CreateEventRequest{Name: "Empty", Date: "2026-10-31"})
	require.Equal(t, http.StatusCreated, w.Code)
	e := decode[domain.Event](t, w)

	w = do(t, r, http.MethodPost, "/admin/events/"+e.ID.String()+"/timetable/generate", "organizer", GenerateRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGenerateIdempotencyReplay(t *testing.T) {
	r := newTestRouter(t, 100)
	e, _ := seedEvent(t, r)
	path := "/admin/events/" + e.ID.String() + "/timetable/generate"

	first := do(t, r, http.MethodPost, path, "organizer", GenerateRequest{}, "Idempotency-Key", "k1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	assert.Equal(t, "k1", first.Header().Get("Idempotency-Key"))

	// a plain retry would need confirm; the key replays the first answer
	second := do(t, r, http.MethodPost, path, "organizer", GenerateRequest{}, "Idempotency-Key", "k1")
	require.Equal(t, http.StatusCreated, second.Code, second.Body.String())
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
}

func TestPublicTimetablePublishGate(t *testing.T) {
	r := newTestRouter(t, 100)
	e, _ := seedEvent(t, r)
	path := "/events/" + e.ID.String() + "/timetable"

	w := do(t, r, http.MethodPost, "/admin/events/"+e.ID.String()+"/timetable/generate", "organizer", GenerateRequest{})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tt := decode[domain.Timetable](t, w)
	assert.False(t, tt.Visible)
	assert.Empty(t, tt.Entries)

	w = do(t, r, http.MethodGet, path, "organizer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tt = decode[domain.Timetable](t, w)
	assert.True(t, tt.Visible)
	assert.Len(t, tt.Entries, 2)
	assert.Equal(t, "private, no-cache", w.Header().Get("Cache-Control"))

	w = do(t, r, http.MethodPut, "/admin/events/"+e.ID.String()+"/publish", "organizer", map[string]bool{"published": true})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tt = decode[domain.Timetable](t, w)
	assert.True(t, tt.Visible)
	require.Len(t, tt.Entries, 2)
	assert.Equal(t, "Alpha", *tt.Entries[0].BandName)
	assert.Equal(t, "band", tt.Entries[0].Label)
	assert.Equal(t, "public, max-age=30", w.Header().Get("Cache-Control"))

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	w = do(t, r, http.MethodGet, path, "", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)
}

func TestPublicTimetableRateLimited(t *testing.T) {
	r := newTestRouter(t, 2)
	e, _ := seedEvent(t, r)
	path := "/events/" + e.ID.String() + "/timetable"

	for i := 0; i < 2; i++ {
		w := do(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := do(t, r, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = do(t, r, http.MethodGet, path, "organizer", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDraftAndSave(t *testing.T) {
	r := newTestRouter(t, 100)
	e, bands := seedEvent(t, r)
	base := "/admin/events/" + e.ID.String() + "/timetable"

	w := do(t, r, http.MethodPost, base+"/generate", "organizer", GenerateRequest{})
	require.Equal(t, http.StatusCreated, w.Code)
	slots := decode[SlotsResponse](t, w).Slots

	w = do(t, r, http.MethodPost, base+"/draft", "organizer", DraftRequest{
		Slots:    slots,
		Op:       "move",
		SlotID:   slots[0].ID.String(),
		TargetID: slots[1].ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	moved := decode[ttsvc.DraftResult](t, w)
	require.Len(t, moved.Slots, 2)
	assert.Equal(t, slots[1].ID, moved.Slots[0].ID)
	assert.Equal(t, 1, *moved.Slots[0].OrderInEvent)
	assert.Equal(t, 2, *moved.Slots[1].OrderInEvent)

	w = do(t, r, http.MethodPost, base+"/draft", "organizer", DraftRequest{
		Slots:  moved.Slots,
		Op:     "insert_changeover",
		SlotID: moved.Slots[0].ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	inserted := decode[ttsvc.DraftResult](t, w)
	require.Len(t, inserted.Slots, 3)
	require.NotNil(t, inserted.Slot)
	assert.Equal(t, domain.SlotBreak, inserted.Slot.SlotType)

	w = do(t, r, http.MethodPut, base, "organizer", SaveTimetableRequest{Slots: inserted.Slots})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[SlotsResponse](t, w).Slots
	require.Len(t, saved, 3)
	assert.Equal(t, bands[1].ID, *saved[0].BandID)
	assert.Nil(t, saved[1].BandID)

	w = do(t, r, http.MethodDelete, "/admin/slots/"+saved[1].ID.String(), "organizer", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodDelete, "/admin/slots/"+saved[1].ID.String(), "organizer", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDraftErrors(t *testing.T) {
	r := newTestRouter(t, 100)
	e, _ := seedEvent(t, r)
	path := "/admin/events/" + e.ID.String() + "/timetable/draft"

	w := do(t, r, http.MethodPost, path, "organizer", DraftRequest{Op: "shuffle"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, path, "organizer", DraftRequest{Op: "remove", SlotID: uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, path, "organizer", DraftRequest{Op: "add"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	added := decode[ttsvc.DraftResult](t, w)
	require.Len(t, added.Slots, 1)

	w = do(t, r, http.MethodPost, path, "organizer", DraftRequest{
		Slots:  added.Slots,
		Op:     "edit",
		SlotID: added.Slots[0].ID.String(),
		Patch:  &SlotPatchRequest{StartTime: strp("9:5")},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveRejectsUnknownBand(t *testing.T) {
	r := newTestRouter(t, 100)
	e, _ := seedEvent(t, r)

	stranger := uuid.New()
	w := do(t, r, http.MethodPut, "/admin/events/"+e.ID.String()+"/timetable", "organizer", SaveTimetableRequest{
		Slots: []domain.Slot{{ID: uuid.New(), SlotType: domain.SlotBand, BandID: &stranger, OrderInEvent: intp(1)}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterEndpoints(t *testing.T) {
	r := newTestRouter(t, 100)
	e, bands := seedEvent(t, r)

	w := do(t, r, http.MethodGet, "/admin/events/"+e.ID.String()+"/bands", "organizer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[BandsResponse](t, w).Bands, 2)

	w = do(t, r, http.MethodPost, "/admin/bands/"+bands[0].ID.String()+"/members", "organizer", CreateMemberRequest{
		UserID:     strp(uuid.NewString()),
		Instrument: "keyboard",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/admin/events/"+e.ID.String()+"/bands/suggested-order", "organizer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[BandsResponse](t, w).Bands, 2)

	w = do(t, r, http.MethodGet, "/admin/bands/"+bands[0].ID.String()+"/songs", "organizer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[SongsResponse](t, w).Songs, 1)

	w = do(t, r, http.MethodDelete, "/admin/bands/"+bands[0].ID.String(), "organizer", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodPost, "/admin/bands/"+bands[0].ID.String()+"/songs", "organizer", CreateSongRequest{Title: "Late"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
