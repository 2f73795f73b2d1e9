package services

import (
	"testing"
	"time"

	"github.com/adirathodd/careerpilot/internal/models"
)

func TestNextOccurrence(t *testing.T) {
	due := time.Date(2025, 11, 17, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		recurrence string
		want       time.Time
	}{
		{models.RecurrenceDaily, time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC)},
		{models.RecurrenceWeekly, time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC)},
		{models.RecurrenceMonthly, time.Date(2025, 12, 17, 9, 0, 0, 0, time.UTC)},
		{models.RecurrenceNone, due},
		{"bogus", due},
	}
	for _, tt := range tests {
		t.Run(tt.recurrence, func(t *testing.T) {
			if got := NextOccurrence(due, tt.recurrence); !got.Equal(tt.want) {
				t.Errorf("NextOccurrence(%s) = %s, want %s", tt.recurrence, got, tt.want)
			}
		})
	}
}

func TestNextOccurrenceMonthlyEndOfMonth(t *testing.T) {
	// Jan 31 + one month normalizes per time.AddDate semantics.
	due := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	got := NextOccurrence(due, models.RecurrenceMonthly)
	want := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence(monthly from Jan 31) = %s, want %s", got, want)
	}
}
