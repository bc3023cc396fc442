package timetable

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
)

type preference int

const (
	preferAny preference = iota
	preferEarly
	preferLate
)

var (
	earlyTokens = []string{"前半", "前の方", "早め", "最初", "early", "first"}
	lateTokens  = []string{"後半", "後ろ", "遅め", "最後", "late", "last"}
)

const bigBandMembers = 8

func parsePreference(note *string) preference {
	text := strings.ToLower(strings.TrimSpace(strOrEmpty(note)))
	if text == "" {
		return preferAny
	}

	early, late := containsAny(text, earlyTokens), containsAny(text, lateTokens)
	switch {
	case early && !late:
		return preferEarly
	case late && !early:
		return preferLate
	}
	return preferAny
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func heavyGear(s *string) bool {
	text := strings.ToLower(strOrEmpty(s))
	return strings.Contains(text, "key") || strings.Contains(text, "syn")
}

type bandFeatures struct {
	band      domain.Band
	index     int
	members   map[uuid.UUID]bool
	songCount int
	pref      preference
	jam       bool
	big       bool
	heavy     bool
}

// SuggestBandOrder proposes a running order that keeps shared members apart,
// groups keyboard-heavy setups, pushes jam sessions, big bands and long sets
// towards the end, and honours "early"/"late" wishes written in band notes.
// Ties fall back to roster order.
func SuggestBandOrder(bands []domain.Band, songs []domain.Song, members []domain.BandMember) []domain.Band {
	if len(bands) == 0 {
		return nil
	}

	songCount := make(map[uuid.UUID]int)
	for _, s := range songs {
		if s.EntryType == domain.EntryMC {
			continue
		}
		songCount[s.BandID]++
	}

	memberSets := make(map[uuid.UUID]map[uuid.UUID]bool)
	memberRows := make(map[uuid.UUID]int)
	heavy := make(map[uuid.UUID]bool)
	for _, m := range members {
		set, ok := memberSets[m.BandID]
		if !ok {
			set = make(map[uuid.UUID]bool)
			memberSets[m.BandID] = set
		}
		if m.UserID != nil {
			set[*m.UserID] = true
		}
		memberRows[m.BandID]++

		instrument := m.Instrument
		if heavyGear(&instrument) || heavyGear(m.CarryEquipment) {
			heavy[m.BandID] = true
		}
	}

	remaining := make([]bandFeatures, len(bands))
	for i, b := range bands {
		set := memberSets[b.ID]
		count := len(set)
		if memberRows[b.ID] > count {
			count = memberRows[b.ID]
		}
		remaining[i] = bandFeatures{
			band:      b,
			index:     i,
			members:   set,
			songCount: songCount[b.ID],
			pref:      parsePreference(b.Note),
			jam:       b.IsJamSession,
			big:       count >= bigBandMembers,
			heavy:     heavy[b.ID],
		}
	}

	total := len(remaining)
	lateStart := total * 2 / 3
	earlyEnd := total/3 - 1

	ordered := make([]bandFeatures, 0, total)
	for len(remaining) > 0 {
		pos := len(ordered)
		best, bestScore := 0, math.Inf(-1)

		for i, c := range remaining {
			score := 0.0

			var prev1, prev2 *bandFeatures
			if pos >= 1 {
				prev1 = &ordered[pos-1]
			}
			if pos >= 2 {
				prev2 = &ordered[pos-2]
			}

			if prev1 != nil && prev2 != nil && tripleOverlap(c.members, prev1.members, prev2.members) {
				score -= 10000
			}
			if prev1 != nil && overlap(c.members, prev1.members) {
				score -= 20
			}
			if prev1 != nil && c.heavy && prev1.heavy {
				score += 20
			}

			if c.jam || c.big || c.songCount >= 3 || c.pref == preferLate {
				if pos >= lateStart {
					score += 50
				} else {
					score -= 50
				}
				if c.jam && pos >= lateStart {
					score += 20
				}
			}

			if c.pref == preferEarly {
				if pos <= earlyEnd {
					score += 40
				} else {
					score -= 40
				}
			}

			score -= float64(c.index) * 0.01

			if score > bestScore {
				bestScore = score
				best = i
			}
		}

		ordered = append(ordered, remaining[best])
		remaining = append(remaining[:best:best], remaining[best+1:]...)
	}

	out := make([]domain.Band, len(ordered))
	for i, f := range ordered {
		out[i] = f.band
	}
	return out
}

func overlap(a, b map[uuid.UUID]bool) bool {
	for id := range a {
		if b[id] {
			return true
		}
	}
	return false
}

func tripleOverlap(a, b, c map[uuid.UUID]bool) bool {
	for id := range a {
		if b[id] && c[id] {
			return true
		}
	}
	return false
}
