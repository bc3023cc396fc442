package redisx

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "ttgo:v1"

// KeyTimetableView holds the published timetable served to viewers.
func KeyTimetableView(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s:timetable", ns, eventID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func KeyIdemGenerate(eventID uuid.UUID, idemKey string) string {
	return fmt.Sprintf("%s:idem:generate:%s:%s", ns, eventID, idemKey)
}

func ChannelTimetableChanged() string {
	return ns + ":timetable:changed"
}
