package timetable

import (
	"strings"

	"github.com/kirinyoku/ttgo/internal/domain"
)

const (
	LabelBand       = "band"
	LabelMC         = "mc"
	LabelTransition = "transition"
	LabelSetup      = "setup"
	LabelTeardown   = "teardown"
	LabelBreak      = "break"
	LabelOther      = "other"
)

// Note keywords used by organizers, Japanese first.
var labelTokens = []struct {
	label  string
	tokens []string
}{
	{LabelTransition, []string{"転換", "changeover", "transition"}},
	{LabelSetup, []string{"集合", "準備", "setup"}},
	{LabelTeardown, []string{"撤収", "解散", "teardown"}},
	{LabelBreak, []string{"休憩", "rest", "break"}},
}

// Label derives what a slot is for. slot_type decides for band and mc slots;
// for the rest the note is consulted first, since break and other slots are
// used loosely.
func Label(s domain.Slot) string {
	switch s.SlotType {
	case domain.SlotBand:
		return LabelBand
	case domain.SlotMC:
		return LabelMC
	}

	note := strings.ToLower(strings.TrimSpace(strOrEmpty(s.Note)))
	if note != "" {
		for _, lt := range labelTokens {
			for _, tok := range lt.tokens {
				if strings.Contains(note, tok) {
					return lt.label
				}
			}
		}
	}

	if s.SlotType == domain.SlotBreak {
		return LabelTransition
	}
	return LabelOther
}
