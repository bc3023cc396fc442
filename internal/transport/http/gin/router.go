package httpgin

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisrepo "github.com/kirinyoku/ttgo/internal/repository/redis"
	"github.com/kirinyoku/ttgo/internal/service"
	"github.com/kirinyoku/ttgo/internal/service/events"
	"github.com/kirinyoku/ttgo/internal/service/roster"
	ttsvc "github.com/kirinyoku/ttgo/internal/service/timetable"
	"github.com/kirinyoku/ttgo/internal/timetable"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), ViewerCapability(), LoggingMiddleware(logger), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/events/:id/timetable", handleGetTimetable(svcs))

	// Admin API
	admin := r.Group("/admin", RequirePrivileged())
	{
		admin.POST("/events", handleCreateEvent(svcs))
		admin.PATCH("/events/:id", handleUpdateEvent(svcs))
		admin.DELETE("/events/:id", handleDeleteEvent(svcs))
		admin.PUT("/events/:id/publish", handlePublish(svcs))

		admin.GET("/events/:id/bands", handleListBands(svcs))
		admin.POST("/events/:id/bands", handleCreateBand(svcs))
		admin.GET("/events/:id/bands/suggested-order", handleSuggestOrder(svcs))
		admin.DELETE("/bands/:id", handleDeleteBand(svcs))
		admin.GET("/bands/:id/songs", handleListSongs(svcs))
		admin.POST("/bands/:id/songs", handleAddSong(svcs))
		admin.POST("/bands/:id/members", handleAddMember(svcs))

		admin.GET("/events/:id/timetable", handleGetEditor(svcs))
		admin.POST("/events/:id/timetable/generate", handleGenerate(svcs, idem))
		admin.PUT("/events/:id/timetable", handleSaveTimetable(svcs))
		admin.POST("/events/:id/timetable/draft", handleDraft(svcs))
		admin.DELETE("/slots/:id", handleDeleteSlot(svcs))
	}

	return r
}

// --- Helpers ---

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func retryAfterSeconds(e ttsvc.RateLimitedError) string {
	secs := int(math.Ceil(e.RetryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var ve timetable.ValidationError
	var rl ttsvc.RateLimitedError

	switch {
	case errors.As(err, &rl):
		c.Header("Retry-After", retryAfterSeconds(rl))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error()})
	// not found
	case errors.Is(err, events.ErrEventNotFound),
		errors.Is(err, roster.ErrEventNotFound),
		errors.Is(err, ttsvc.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
	case errors.Is(err, roster.ErrBandNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "band not found"})
	case errors.Is(err, ttsvc.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "slot not found"})
	// conflicts
	case errors.Is(err, events.ErrEventConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "event conflict"})
	case errors.Is(err, ttsvc.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "timetable already has slots, resend with confirm=true to replace them"})
	case errors.Is(err, ttsvc.ErrSlotConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "slot belongs to another event"})
	// rejected input
	case errors.Is(err, ttsvc.ErrNoBands):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "event has no bands"})
	case errors.Is(err, timetable.ErrUnknownBand):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "band is not on this event's roster"})
	case errors.Is(err, timetable.ErrDuplicateBand):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "band listed twice"})
	case errors.Is(err, ttsvc.ErrUnknownDraftOp):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown draft operation"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
