package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/service"
	"github.com/kirinyoku/ttgo/internal/service/roster"
)

// @Summary  List bands in registration order
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} BandsResponse
// @Router   /admin/events/{id}/bands [get]
func handleListBands(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		bands, err := svcs.Roster.ListBands(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, BandsResponse{Bands: bands})
	}
}

// @Summary  Register band
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  CreateBandRequest true "payload"
// @Success  201 {object} domain.Band
// @Router   /admin/events/{id}/bands [post]
func handleCreateBand(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req CreateBandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		b, err := svcs.Roster.CreateBand(c.Request.Context(), eventID, roster.BandInput{
			Name:         req.Name,
			Note:         req.Note,
			IsJamSession: req.IsJamSession,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

// @Summary  Suggest a running order
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} BandsResponse
// @Router   /admin/events/{id}/bands/suggested-order [get]
func handleSuggestOrder(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		bands, err := svcs.Roster.SuggestOrder(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		if bands == nil {
			bands = []domain.Band{}
		}
		c.JSON(http.StatusOK, BandsResponse{Bands: bands})
	}
}

// @Summary  Delete band; its slots stay but lose the band
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Band ID (uuid)"
// @Success  204
// @Router   /admin/bands/{id} [delete]
func handleDeleteBand(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bandID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		respondErr(c, svcs.Roster.DeleteBand(c.Request.Context(), bandID))
	}
}

// @Summary  List a band's set list
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Band ID (uuid)"
// @Success  200 {object} SongsResponse
// @Router   /admin/bands/{id}/songs [get]
func handleListSongs(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bandID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		songs, err := svcs.Roster.ListSongs(c.Request.Context(), bandID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, SongsResponse{Songs: songs})
	}
}

// @Summary  Add a song or MC entry
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Band ID (uuid)"
// @Param    req body  CreateSongRequest true "payload"
// @Success  201 {object} domain.Song
// @Router   /admin/bands/{id}/songs [post]
func handleAddSong(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bandID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req CreateSongRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		s, err := svcs.Roster.AddSong(c.Request.Context(), bandID, roster.SongInput{
			Title:           req.Title,
			DurationSeconds: req.DurationSeconds,
			EntryType:       domain.EntryType(req.EntryType),
			OrderIndex:      req.OrderIndex,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, s)
	}
}

// @Summary  Add a band member
// @Param    X-Viewer-Role  header  string  true  "organizer or admin"
// @Param    id  path  string  true  "Band ID (uuid)"
// @Param    req body  CreateMemberRequest true "payload"
// @Success  201 {object} domain.BandMember
// @Router   /admin/bands/{id}/members [post]
func handleAddMember(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bandID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req CreateMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		in := roster.MemberInput{
			Instrument:     req.Instrument,
			CarryEquipment: req.CarryEquipment,
		}
		if req.UserID != nil {
			uid, err := uuid.Parse(*req.UserID)
			if err != nil {
				badRequest(c, "invalid user_id")
				return
			}
			in.UserID = &uid
		}
		m, err := svcs.Roster.AddMember(c.Request.Context(), bandID, in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}
