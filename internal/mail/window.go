package mail

import "time"

// Today returns the calendar day containing now, [local midnight, next
// midnight), in now's location.
func Today(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// LastDays returns the window [now-days, now).
func LastDays(now time.Time, days int) (start, end time.Time) {
	return now.AddDate(0, 0, -days), now
}
