package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventDraft      EventStatus = "draft"
	EventRecruiting EventStatus = "recruiting"
	EventFixed      EventStatus = "fixed"
	EventClosed     EventStatus = "closed"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventRecruiting, EventFixed, EventClosed:
		return true
	}
	return false
}

type SlotType string

const (
	SlotBand  SlotType = "band"
	SlotBreak SlotType = "break"
	SlotMC    SlotType = "mc"
	SlotOther SlotType = "other"
)

func (t SlotType) Valid() bool {
	switch t {
	case SlotBand, SlotBreak, SlotMC, SlotOther:
		return true
	}
	return false
}

// SlotPhase says which part of the day a slot belongs to.
type SlotPhase string

const (
	PhaseShow            SlotPhase = "show"
	PhaseRehearsalNormal SlotPhase = "rehearsal_normal"
	PhaseRehearsalPre    SlotPhase = "rehearsal_pre"
)

func (p SlotPhase) Valid() bool {
	switch p {
	case PhaseShow, PhaseRehearsalNormal, PhaseRehearsalPre:
		return true
	}
	return false
}

// IsRehearsal reports whether p is one of the rehearsal phases.
func (p SlotPhase) IsRehearsal() bool {
	return p == PhaseRehearsalNormal || p == PhaseRehearsalPre
}

// RehearsalOrder is how the day's rehearsal runs relative to the show order.
type RehearsalOrder string

const (
	RehearsalSame    RehearsalOrder = "same"
	RehearsalReverse RehearsalOrder = "reverse"
)

func (o RehearsalOrder) Valid() bool {
	return o == RehearsalSame || o == RehearsalReverse
}

type EntryType string

const (
	EntrySong EntryType = "song"
	EntryMC   EntryType = "mc"
)

// DefaultChangeoverMinutes is used when an event is created without one.
const DefaultChangeoverMinutes = 15

// Event is one live. OpenTime is when members gather; the template anchors
// the rehearsal block there.
type Event struct {
	ID                       uuid.UUID      `json:"id"`
	Name                     string         `json:"name"`
	Date                     string         `json:"date"`
	Status                   EventStatus    `json:"status"`
	Venue                    *string        `json:"venue"`
	DefaultChangeoverMinutes int            `json:"default_changeover_minutes"`
	OpenTime                 *string        `json:"open_time"`
	ShowStartTime            *string        `json:"show_start_time"`
	RehearsalOrder           RehearsalOrder `json:"normal_rehearsal_order"`
	TimetableIsPublished     bool           `json:"timetable_is_published"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

type Band struct {
	ID           uuid.UUID `json:"id"`
	EventID      uuid.UUID `json:"event_id"`
	Name         string    `json:"name"`
	Note         *string   `json:"note"`
	IsJamSession bool      `json:"is_jam_session"`
	CreatedAt    time.Time `json:"created_at"`
}

type Song struct {
	ID              uuid.UUID `json:"id"`
	BandID          uuid.UUID `json:"band_id"`
	Title           string    `json:"title"`
	DurationSeconds *int      `json:"duration_seconds"`
	EntryType       EntryType `json:"entry_type"`
	OrderIndex      int       `json:"order_index"`
}

type BandMember struct {
	ID             uuid.UUID  `json:"id"`
	BandID         uuid.UUID  `json:"band_id"`
	UserID         *uuid.UUID `json:"user_id"`
	Instrument     string     `json:"instrument"`
	CarryEquipment *string    `json:"carry_equipment"`
}

// Slot is one scheduled unit in an event's running order.
// Times are "HH:MM" strings; nil means unset.
type Slot struct {
	ID                uuid.UUID  `json:"id"`
	EventID           uuid.UUID  `json:"event_id"`
	BandID            *uuid.UUID `json:"band_id"`
	SlotType          SlotType   `json:"slot_type"`
	SlotPhase         SlotPhase  `json:"slot_phase"`
	OrderInEvent      *int       `json:"order_in_event"`
	StartTime         *string    `json:"start_time"`
	EndTime           *string    `json:"end_time"`
	ChangeoverMinutes *int       `json:"changeover_minutes"`
	Note              *string    `json:"note"`
}

type TimetableEntry struct {
	Slot
	BandName        *string `json:"band_name"`
	Label           string  `json:"label"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// Timetable is the read model handed to viewers.
type Timetable struct {
	Event   Event            `json:"event"`
	Visible bool             `json:"visible"`
	Entries []TimetableEntry `json:"entries"`
}

// Editor is everything an organizer needs to edit an event's running order.
type Editor struct {
	Event Event  `json:"event"`
	Bands []Band `json:"bands"`
	Slots []Slot `json:"slots"`
}
