package handlers

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/adirathodd/careerpilot/internal/calendar"
)

const icsProductID = "-//careerpilot//Job Search Calendar//EN"

// ICSOptions controls optional VALARM blocks on exported events.
type ICSOptions struct {
	Reminders        bool
	RemindDaysBefore int
	RemindTime       string // HH:MM
}

// WriteICS renders calendar items as an iCalendar document. Deadlines and
// reminders become all-day events; interviews keep their scheduled time.
func WriteICS(w io.Writer, items []calendar.Item, loc *time.Location, opts ICSOptions) {
	if loc == nil {
		loc = time.UTC
	}

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", icsProductID)
	fmt.Fprintln(w, "X-WR-CALNAME:Job Search")
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	for _, item := range items {
		if item.When.IsZero() {
			continue
		}

		uid := fmt.Sprintf("%s-%d@careerpilot", item.Kind, item.ID)

		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:%s\n", uid)
		fmt.Fprintf(w, "DTSTAMP:%s\n", time.Now().UTC().Format("20060102T150405Z"))

		day := item.When.In(loc)
		switch item.Kind {
		case calendar.KindInterview:
			// Interviews are timed events, one hour by convention.
			fmt.Fprintf(w, "DTSTART:%s\n", item.When.UTC().Format("20060102T150405Z"))
			fmt.Fprintf(w, "DTEND:%s\n", item.When.Add(time.Hour).UTC().Format("20060102T150405Z"))
			fmt.Fprintf(w, "SUMMARY:%s interview: %s\n", item.InterviewType, icsEscape(item.Title))
			fmt.Fprintf(w, "DESCRIPTION:Interview for %s at %s\n", icsEscape(item.Title), icsEscape(item.Company))
		case calendar.KindJobDeadline:
			fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", day.Format("20060102"))
			fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", day.AddDate(0, 0, 1).Format("20060102"))
			fmt.Fprintf(w, "SUMMARY:Application deadline: %s\n", icsEscape(item.Title))
			fmt.Fprintf(w, "DESCRIPTION:Apply to %s at %s\n", icsEscape(item.Title), icsEscape(item.Company))
		case calendar.KindReminder:
			fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", day.Format("20060102"))
			fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", day.AddDate(0, 0, 1).Format("20060102"))
			fmt.Fprintf(w, "SUMMARY:Follow up: %s\n", icsEscape(item.ContactName))
			fmt.Fprintf(w, "DESCRIPTION:%s\n", icsEscape(item.Message))
		}

		if opts.Reminders {
			addAlarm(w, day, opts.RemindDaysBefore, opts.RemindTime, string(item.Kind))
		}

		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}

// addAlarm appends a VALARM firing at alarmTime (HH:MM) daysBefore days
// ahead of the event date. Malformed times are silently skipped.
func addAlarm(w io.Writer, eventDate time.Time, daysBefore int, alarmTime, description string) {
	parts := strings.Split(alarmTime, ":")
	if len(parts) != 2 {
		return
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return
	}

	// Trigger is relative to the event's midnight start.
	alarmDate := eventDate.AddDate(0, 0, -daysBefore)
	alarmAt := time.Date(alarmDate.Year(), alarmDate.Month(), alarmDate.Day(), hour, minute, 0, 0, eventDate.Location())
	eventStart := time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, eventDate.Location())

	totalMinutes := int(alarmAt.Sub(eventStart).Minutes())
	isNegative := totalMinutes < 0
	if isNegative {
		totalMinutes = -totalMinutes
	}

	days := totalMinutes / (24 * 60)
	remaining := totalMinutes % (24 * 60)
	hours := remaining / 60
	minutes := remaining % 60

	trigger := fmt.Sprintf("P%dDT%dH%dM", days, hours, minutes)
	if isNegative {
		trigger = "-" + trigger
	}

	fmt.Fprintln(w, "BEGIN:VALARM")
	fmt.Fprintf(w, "TRIGGER:%s\n", trigger)
	fmt.Fprintln(w, "ACTION:DISPLAY")
	fmt.Fprintf(w, "DESCRIPTION:%s\n", description)
	fmt.Fprintln(w, "END:VALARM")
}

// icsEscape escapes the characters RFC 5545 treats specially in text.
func icsEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
