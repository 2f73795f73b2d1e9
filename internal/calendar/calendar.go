package calendar

import (
	"sort"
	"time"
)

// Kind discriminates the calendar item union. Every switch on Kind must
// handle all three values.
type Kind string

const (
	KindJobDeadline Kind = "deadline"
	KindInterview   Kind = "interview"
	KindReminder    Kind = "reminder"
)

// Item is a single calendar-worthy record: a job deadline, an interview or
// a follow-up reminder. Only the fields relevant to its Kind are populated.
type Item struct {
	Kind    Kind      `json:"kind"`
	ID      uint      `json:"id"`
	Title   string    `json:"title"`
	Company string    `json:"company,omitempty"`
	When    time.Time `json:"when"`

	// Job deadline fields
	Status string `json:"status,omitempty"`

	// Interview fields
	JobID         uint   `json:"job_id,omitempty"`
	InterviewType string `json:"interview_type,omitempty"`

	// Reminder fields
	ContactName string `json:"contact_name,omitempty"`
	Message     string `json:"message,omitempty"`
	Recurrence  string `json:"recurrence,omitempty"`
	Completed   bool   `json:"completed,omitempty"`

	// Urgency is stamped by BuildGrid/Agenda relative to "now".
	Urgency Urgency `json:"urgency,omitempty"`
}

func JobDeadlineItem(id uint, title, company string, deadline time.Time, status string) Item {
	return Item{
		Kind:    KindJobDeadline,
		ID:      id,
		Title:   title,
		Company: company,
		When:    deadline,
		Status:  status,
	}
}

func InterviewItem(id, jobID uint, jobTitle, company, interviewType string, scheduledAt time.Time) Item {
	return Item{
		Kind:          KindInterview,
		ID:            id,
		Title:         jobTitle,
		Company:       company,
		When:          scheduledAt,
		JobID:         jobID,
		InterviewType: interviewType,
	}
}

func ReminderItem(id uint, due time.Time, contactName, message, recurrence string, completed bool) Item {
	return Item{
		Kind:        KindReminder,
		ID:          id,
		Title:       contactName,
		When:        due,
		ContactName: contactName,
		Message:     message,
		Recurrence:  recurrence,
		Completed:   completed,
	}
}

// DateKey truncates a timestamp to its calendar date in loc. Keys are
// ISO dates, so lexicographic order is chronological order.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// Bucket groups items by their date key in loc. Items with a zero
// timestamp are skipped. No deduplication is performed; an item passed
// twice appears twice.
func Bucket(items []Item, loc *time.Location) map[string][]Item {
	buckets := make(map[string][]Item)
	for _, it := range items {
		if it.When.IsZero() {
			continue
		}
		key := DateKey(it.When, loc)
		buckets[key] = append(buckets[key], it)
	}
	return buckets
}

// SortedKeys returns the bucket keys in chronological order.
func SortedKeys(buckets map[string][]Item) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DayGroup is one agenda entry: a date and everything due on it.
type DayGroup struct {
	Date  string `json:"date"`
	Items []Item `json:"items"`
}

// Agenda buckets items by date and returns the groups in chronological
// order, each item stamped with its urgency relative to now.
func Agenda(items []Item, loc *time.Location, now time.Time) []DayGroup {
	buckets := Bucket(items, loc)
	groups := make([]DayGroup, 0, len(buckets))
	for _, key := range SortedKeys(buckets) {
		day := buckets[key]
		for i := range day {
			day[i].Urgency = Classify(day[i], now)
		}
		groups = append(groups, DayGroup{Date: key, Items: day})
	}
	return groups
}
