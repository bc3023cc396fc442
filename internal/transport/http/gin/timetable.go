package httpgin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/ttgo/internal/domain"
	redisx "github.com/kirinyoku/ttgo/internal/redis"
	redisrepo "github.com/kirinyoku/ttgo/internal/repository/redis"
	"github.com/kirinyoku/ttgo/internal/service"
	ttsvc "github.com/kirinyoku/ttgo/internal/service/timetable"
)

const generateLockTTL = 60 * time.Second

// @Summary  Get event timetable
// @Description Unpublished timetables come back with visible=false and no
// @Description entries unless the caller is an organizer or admin.
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    X-Viewer-Role  header  string  false  "organizer or admin"
// @Success  200  {object}  domain.Timetable
// @Failure  404  {object}  ErrorResponse
// @Failure  429  {object}  ErrorResponse "rate limited"
// @Router   /events/{id}/timetable [get]
func handleGetTimetable(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		privileged := IsPrivileged(c)
		tt, err := svcs.Timetable.View(c.Request.Context(), eventID, ttsvc.Viewer{
			Privileged: privileged,
			RateKey:    "ip:" + c.ClientIP(),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		cacheControl := "public, max-age=30"
		if privileged || !tt.Event.TimetableIsPublished {
			cacheControl = "private, no-cache"
		}
		writeJSONWithCache(c, http.StatusOK, tt, cacheControl, true)
	}
}

// @Summary  Load the timetable editor
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} domain.Editor
// @Router   /admin/events/{id}/timetable [get]
func handleGetEditor(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		ed, err := svcs.Timetable.Editor(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, ed)
	}
}

// @Summary  Generate the running order (idempotent)
// @Description template=true lays out rehearsal, show and teardown for the day.
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    Idempotency-Key  header  string  false  "replays the first response"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  GenerateRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} SlotsResponse
// @Failure  409 {object} ErrorResponse "confirmation required / idem in progress"
// @Failure  422 {object} ErrorResponse "no bands"
// @Router   /admin/events/{id}/timetable/generate [post]
func handleGenerate(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		order, err := parseUUIDs(req.BandOrder)
		if err != nil {
			badRequest(c, "invalid band_order")
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisx.KeyIdemGenerate(eventID, idemKey)

			if stored, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				replay(c, idemKey, stored)
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, generateLockTTL)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if stored, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					replay(c, idemKey, stored)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		slots, err := svcs.Timetable.Generate(c.Request.Context(), eventID, ttsvc.GenerateRequest{
			Confirm:         req.Confirm,
			BandOrder:       order,
			ChangeoverSlots: req.ChangeoverSlots,
			Template:        req.Template,
		})
		if err != nil {
			if idemStorageKey != "" {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := SlotsResponse{Slots: slots}

		if idemStorageKey != "" {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, http.StatusCreated, b)
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

func replay(c *gin.Context, idemKey string, stored *redisrepo.StoredResponse) {
	c.Header("Idempotency-Key", idemKey)
	c.Header("Idempotent-Replayed", "true")
	c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
}

// @Summary  Save the edited timetable
// @Description Slots are upserted by id; slots missing from the body are kept.
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  SaveTimetableRequest true "payload"
// @Success  200 {object} SlotsResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "slot belongs to another event"
// @Router   /admin/events/{id}/timetable [put]
func handleSaveTimetable(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req SaveTimetableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		slots, err := svcs.Timetable.Save(c.Request.Context(), eventID, req.Slots)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, SlotsResponse{Slots: slots})
	}
}

// @Summary  Apply an editor action to a working copy
// @Description Nothing is stored. Ops: move, add, insert_above, insert_below,
// @Description duplicate, insert_changeover, edit, set_duration, compact,
// @Description renumber, remove, rehearsal_sort.
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  DraftRequest true "payload"
// @Success  200 {object} ttsvc.DraftResult
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "slot not found"
// @Router   /admin/events/{id}/timetable/draft [post]
func handleDraft(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req DraftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		patch, err := req.Patch.toPatch()
		if err != nil {
			respondErr(c, err)
			return
		}

		res, err := svcs.Timetable.ApplyDraft(c.Request.Context(), eventID, req.Slots, ttsvc.DraftOp{
			Kind:     ttsvc.DraftOpKind(req.Op),
			SlotID:   optionalUUID(req.SlotID),
			TargetID: optionalUUID(req.TargetID),
			Patch:    patch,
			Minutes:  req.Minutes,
			Phase:    domain.SlotPhase(req.Phase),
			Order:    domain.RehearsalOrder(req.Order),
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary  Delete a slot
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Slot ID (uuid)"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/slots/{id} [delete]
func handleDeleteSlot(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		slotID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		respondErr(c, svcs.Timetable.DeleteSlot(c.Request.Context(), slotID))
	}
}
