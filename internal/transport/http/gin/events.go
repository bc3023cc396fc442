package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/service"
	"github.com/kirinyoku/ttgo/internal/service/events"
)

// @Summary  List events
// @Success  200  {object}  EventsResponse
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Events.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, EventsResponse{Events: list}, "public, max-age=15", true)
	}
}

// @Summary  Get event
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200  {object}  domain.Event
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		e, err := svcs.Events.Get(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60", true)
	}
}

// @Summary  Create event
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    req body  CreateEventRequest true "payload"
// @Success  201 {object} domain.Event
// @Failure  400 {object} ErrorResponse
// @Router   /admin/events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		e, err := svcs.Events.Create(c.Request.Context(), events.CreateInput{
			Name:                     req.Name,
			Date:                     req.Date,
			Status:                   domain.EventStatus(req.Status),
			Venue:                    req.Venue,
			DefaultChangeoverMinutes: req.DefaultChangeoverMinutes,
			OpenTime:                 req.OpenTime,
			ShowStartTime:            req.ShowStartTime,
			RehearsalOrder:           domain.RehearsalOrder(req.RehearsalOrder),
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

// @Summary  Update event
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  UpdateEventRequest true "payload"
// @Success  200 {object} domain.Event
// @Failure  404 {object} ErrorResponse
// @Router   /admin/events/{id} [patch]
func handleUpdateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		in := events.UpdateInput{
			Name:                     req.Name,
			Date:                     req.Date,
			Venue:                    req.Venue,
			DefaultChangeoverMinutes: req.DefaultChangeoverMinutes,
			OpenTime:                 req.OpenTime,
			ShowStartTime:            req.ShowStartTime,
		}
		if req.Status != nil {
			st := domain.EventStatus(*req.Status)
			in.Status = &st
		}
		if req.RehearsalOrder != nil {
			ro := domain.RehearsalOrder(*req.RehearsalOrder)
			in.RehearsalOrder = &ro
		}
		e, err := svcs.Events.Update(c.Request.Context(), eventID, in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// @Summary  Delete event with its roster and timetable
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/events/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		respondErr(c, svcs.Events.Delete(c.Request.Context(), eventID))
	}
}

// @Summary  Publish or unpublish the timetable
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  PublishRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/events/{id}/publish [put]
func handlePublish(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req PublishRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		respondErr(c, svcs.Events.SetPublished(c.Request.Context(), eventID, *req.Published))
	}
}
