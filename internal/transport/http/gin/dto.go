package httpgin

import (
	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/timetable"
)

type CreateEventRequest struct {
	Name                     string  `json:"name" binding:"required"`
	Date                     string  `json:"date" binding:"required"`
	Status                   string  `json:"status"`
	Venue                    *string `json:"venue"`
	DefaultChangeoverMinutes *int    `json:"default_changeover_minutes" binding:"omitempty,gte=0"`
	OpenTime                 *string `json:"open_time"`
	ShowStartTime            *string `json:"show_start_time"`
	RehearsalOrder           string  `json:"normal_rehearsal_order" binding:"omitempty,oneof=same reverse"`
}

type UpdateEventRequest struct {
	Name                     *string `json:"name"`
	Date                     *string `json:"date"`
	Status                   *string `json:"status"`
	Venue                    *string `json:"venue"`
	DefaultChangeoverMinutes *int    `json:"default_changeover_minutes" binding:"omitempty,gte=0"`
	OpenTime                 *string `json:"open_time"`
	ShowStartTime            *string `json:"show_start_time"`
	RehearsalOrder           *string `json:"normal_rehearsal_order" binding:"omitempty,oneof=same reverse"`
}

type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

type CreateBandRequest struct {
	Name         string  `json:"name" binding:"required"`
	Note         *string `json:"note"`
	IsJamSession bool    `json:"is_jam_session"`
}

type CreateSongRequest struct {
	Title           string `json:"title" binding:"required"`
	DurationSeconds *int   `json:"duration_seconds" binding:"omitempty,gte=0"`
	EntryType       string `json:"entry_type" binding:"omitempty,oneof=song mc"`
	OrderIndex      *int   `json:"order_index"`
}

type CreateMemberRequest struct {
	UserID         *string `json:"user_id" binding:"omitempty,uuid"`
	Instrument     string  `json:"instrument"`
	CarryEquipment *string `json:"carry_equipment"`
}

type GenerateRequest struct {
	Confirm         bool     `json:"confirm"`
	BandOrder       []string `json:"band_order" binding:"omitempty,dive,uuid"`
	ChangeoverSlots bool     `json:"changeover_slots"`
	Template        bool     `json:"template"`
}

type SaveTimetableRequest struct {
	Slots []domain.Slot `json:"slots"`
}

type SlotPatchRequest struct {
	SlotType          *string `json:"slot_type"`
	SlotPhase         *string `json:"slot_phase"`
	BandID            *string `json:"band_id"`
	StartTime         *string `json:"start_time"`
	EndTime           *string `json:"end_time"`
	ChangeoverMinutes *int    `json:"changeover_minutes"`
	Note              *string `json:"note"`
}

type DraftRequest struct {
	Slots    []domain.Slot     `json:"slots"`
	Op       string            `json:"op" binding:"required"`
	SlotID   string            `json:"slot_id" binding:"omitempty,uuid"`
	TargetID string            `json:"target_id" binding:"omitempty,uuid"`
	Patch    *SlotPatchRequest `json:"patch"`
	Minutes  int               `json:"minutes"`
	Phase    string            `json:"phase"`
	Order    string            `json:"order" binding:"omitempty,oneof=same reverse"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SlotsResponse struct {
	Slots []domain.Slot `json:"slots"`
}

type BandsResponse struct {
	Bands []domain.Band `json:"bands"`
}

type SongsResponse struct {
	Songs []domain.Song `json:"songs"`
}

type EventsResponse struct {
	Events []domain.Event `json:"events"`
}

// toPatch converts the wire patch. An empty band_id clears the band.
func (p *SlotPatchRequest) toPatch() (timetable.SlotPatch, error) {
	var out timetable.SlotPatch
	if p == nil {
		return out, nil
	}

	if p.SlotType != nil {
		t := domain.SlotType(*p.SlotType)
		out.SlotType = &t
	}
	if p.SlotPhase != nil {
		ph := domain.SlotPhase(*p.SlotPhase)
		out.SlotPhase = &ph
	}
	if p.BandID != nil {
		id := uuid.Nil
		if *p.BandID != "" {
			parsed, err := uuid.Parse(*p.BandID)
			if err != nil {
				return out, timetable.ValidationError{Field: "band_id", Reason: "expected uuid"}
			}
			id = parsed
		}
		out.BandID = &id
	}
	out.StartTime = p.StartTime
	out.EndTime = p.EndTime
	out.ChangeoverMinutes = p.ChangeoverMinutes
	out.Note = p.Note

	return out, nil
}

func parseUUIDs(in []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(in))
	for _, s := range in {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func optionalUUID(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	id, _ := uuid.Parse(s)
	return id
}
