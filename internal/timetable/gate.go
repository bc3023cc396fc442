package timetable

// CanView reports whether a viewer may see an event's timetable. Privileged
// viewers bypass the publish flag.
func CanView(published, privileged bool) bool {
	return published || privileged
}
