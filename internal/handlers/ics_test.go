package handlers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/adirathodd/careerpilot/internal/calendar"
)

func TestWriteICS(t *testing.T) {
	items := []calendar.Item{
		calendar.JobDeadlineItem(1, "Backend Engineer", "Acme", time.Date(2025, 11, 17, 17, 0, 0, 0, time.UTC), "INTERESTED"),
		calendar.InterviewItem(2, 1, "Backend Engineer", "Acme", "technical", time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)),
		calendar.ReminderItem(3, time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC), "Dana", "send thank-you note", "none", false),
	}

	var buf bytes.Buffer
	WriteICS(&buf, items, time.UTC, ICSOptions{})
	body := buf.String()

	required := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//careerpilot//Job Search Calendar//EN",
		"BEGIN:VEVENT",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, field := range required {
		if !strings.Contains(body, field) {
			t.Errorf("ICS output missing required field: %s", field)
		}
	}

	// Deadlines are all-day events.
	if !strings.Contains(body, "DTSTART;VALUE=DATE:20251117") {
		t.Error("deadline should be all-day (DTSTART;VALUE=DATE)")
	}
	if !strings.Contains(body, "DTEND;VALUE=DATE:20251118") {
		t.Error("all-day deadline should end on next day")
	}

	// Interviews keep their scheduled time.
	if !strings.Contains(body, "DTSTART:20251120T100000Z") {
		t.Error("interview should be a timed event")
	}
	if !strings.Contains(body, "SUMMARY:technical interview: Backend Engineer") {
		t.Error("missing interview summary")
	}

	if !strings.Contains(body, "SUMMARY:Follow up: Dana") {
		t.Error("missing reminder summary")
	}
	if !strings.Contains(body, "UID:deadline-1@careerpilot") {
		t.Error("missing deadline UID")
	}

	if strings.Contains(body, "BEGIN:VALARM") {
		t.Error("no alarms requested, none should be emitted")
	}
}

func TestWriteICSWithAlarms(t *testing.T) {
	items := []calendar.Item{
		calendar.JobDeadlineItem(1, "Backend Engineer", "Acme", time.Date(2025, 11, 17, 17, 0, 0, 0, time.UTC), ""),
		calendar.ReminderItem(2, time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC), "Dana", "ping", "none", false),
	}

	var buf bytes.Buffer
	WriteICS(&buf, items, time.UTC, ICSOptions{Reminders: true, RemindDaysBefore: 1, RemindTime: "18:00"})
	body := buf.String()

	if got := strings.Count(body, "BEGIN:VALARM"); got != 2 {
		t.Errorf("alarm count = %d, want 2", got)
	}
	// 18:00 the day before midnight start = 6 hours before.
	if !strings.Contains(body, "TRIGGER:-P0DT6H0M") {
		t.Errorf("missing expected trigger, body:\n%s", body)
	}
}

func TestWriteICSSkipsZeroDates(t *testing.T) {
	items := []calendar.Item{{Kind: calendar.KindJobDeadline, ID: 1, Title: "x"}}

	var buf bytes.Buffer
	WriteICS(&buf, items, time.UTC, ICSOptions{})

	if strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Error("zero-date item should not produce an event")
	}
}

func TestICSEscape(t *testing.T) {
	got := icsEscape("a;b,c\nd")
	want := `a\;b\,c\nd`
	if got != want {
		t.Errorf("icsEscape = %q, want %q", got, want)
	}
}
