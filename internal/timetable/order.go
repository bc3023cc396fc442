package timetable

import (
	"math"
	"sort"

	"github.com/kirinyoku/ttgo/internal/domain"
)

// Sort returns a copy of slots in canonical running order: order_in_event
// ascending with unset values last, then start_time, then note, then id.
func Sort(slots []domain.Slot) []domain.Slot {
	out := make([]domain.Slot, len(slots))
	copy(out, slots)

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	return out
}

func less(a, b domain.Slot) bool {
	oa, ob := orderKey(a), orderKey(b)
	if oa != ob {
		return oa < ob
	}

	sa, sb := strOrEmpty(a.StartTime), strOrEmpty(b.StartTime)
	if sa != sb {
		return sa < sb
	}

	na, nb := strOrEmpty(a.Note), strOrEmpty(b.Note)
	if na != nb {
		return na < nb
	}

	return a.ID.String() < b.ID.String()
}

func orderKey(s domain.Slot) int {
	if s.OrderInEvent == nil {
		return math.MaxInt
	}
	return *s.OrderInEvent
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Renumber sets order_in_event to 1..N following the slice order.
func Renumber(slots []domain.Slot) []domain.Slot {
	out := make([]domain.Slot, len(slots))
	for i, s := range slots {
		n := i + 1
		s.OrderInEvent = &n
		out[i] = s
	}
	return out
}

// MaxOrder returns the largest order_in_event, or 0 when none is set.
func MaxOrder(slots []domain.Slot) int {
	max := 0
	for _, s := range slots {
		if s.OrderInEvent != nil && *s.OrderInEvent > max {
			max = *s.OrderInEvent
		}
	}
	return max
}
