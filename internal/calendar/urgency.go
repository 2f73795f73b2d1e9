package calendar

import (
	"strings"
	"time"
)

// Urgency is the display tone for a calendar item. The values double as
// the color names the UI renders.
type Urgency string

const (
	UrgencyOverdue   Urgency = "red"   // deadline or reminder in the past, still actionable
	UrgencyDueSoon   Urgency = "amber" // due within the soon window
	UrgencyDone      Urgency = "gray"  // applied, terminal status, or completed
	UrgencyUpcoming  Urgency = "green" // job deadline default
	UrgencyScheduled Urgency = "blue"  // interview/reminder default
)

// dueSoonWindow is the hard-coded "due soon" threshold.
const dueSoonWindow = 7 * 24 * time.Hour

// settledStatuses are job statuses where the deadline no longer drives
// urgency: the application is in, or the pipeline is over.
var settledStatuses = map[string]bool{
	"APPLIED":      true,
	"INTERESTED":   true,
	"INTERVIEWING": true,
	"OFFER":        true,
	"REJECTED":     true,
	"WITHDRAWN":    true,
}

// Classify maps an item to its urgency relative to now. Pure function,
// fixed palette, no configuration surface.
func Classify(it Item, now time.Time) Urgency {
	switch it.Kind {
	case KindJobDeadline:
		if settledStatuses[strings.ToUpper(it.Status)] {
			return UrgencyDone
		}
		if it.When.Before(now) {
			return UrgencyOverdue
		}
		if it.When.Sub(now) <= dueSoonWindow {
			return UrgencyDueSoon
		}
		return UrgencyUpcoming
	case KindInterview:
		if it.When.Before(now) {
			return UrgencyDone
		}
		return UrgencyScheduled
	case KindReminder:
		if it.Completed {
			return UrgencyDone
		}
		if it.When.Before(now) {
			return UrgencyOverdue
		}
		if it.When.Sub(now) <= dueSoonWindow {
			return UrgencyDueSoon
		}
		return UrgencyScheduled
	}
	return UrgencyScheduled
}
