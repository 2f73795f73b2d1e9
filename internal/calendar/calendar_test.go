package calendar

import (
	"sort"
	"testing"
	"time"
)

var testNow = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

func TestBucketGroupsByDateKey(t *testing.T) {
	items := []Item{
		JobDeadlineItem(1, "Backend Engineer", "Acme", time.Date(2025, 11, 17, 9, 0, 0, 0, time.UTC), ""),
		JobDeadlineItem(2, "SRE", "Globex", time.Date(2025, 11, 17, 18, 0, 0, 0, time.UTC), ""),
		InterviewItem(3, 1, "Backend Engineer", "Acme", "technical", time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)),
	}

	buckets := Bucket(items, time.UTC)

	if got := len(buckets["2025-11-17"]); got != 2 {
		t.Errorf("expected 2 items on 2025-11-17, got %d", got)
	}
	if got := len(buckets["2025-11-20"]); got != 1 {
		t.Errorf("expected 1 item on 2025-11-20, got %d", got)
	}
}

func TestBucketSkipsZeroTimestamps(t *testing.T) {
	items := []Item{
		JobDeadlineItem(1, "No Deadline", "Acme", time.Time{}, ""),
		JobDeadlineItem(2, "Has Deadline", "Acme", time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC), ""),
	}

	buckets := Bucket(items, time.UTC)

	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
}

func TestBucketDoesNotDeduplicate(t *testing.T) {
	it := JobDeadlineItem(1, "Backend Engineer", "Acme", time.Date(2025, 11, 17, 9, 0, 0, 0, time.UTC), "")

	buckets := Bucket([]Item{it, it}, time.UTC)

	if got := len(buckets["2025-11-17"]); got != 2 {
		t.Errorf("duplicate item should appear twice, got %d", got)
	}
}

func TestSortedKeysAreChronological(t *testing.T) {
	items := []Item{
		JobDeadlineItem(1, "a", "", time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), ""),
		JobDeadlineItem(2, "b", "", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), ""),
		JobDeadlineItem(3, "c", "", time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC), ""),
	}

	keys := SortedKeys(Bucket(items, time.UTC))

	if !sort.StringsAreSorted(keys) {
		t.Fatalf("keys not sorted: %v", keys)
	}
	want := []string{"2025-02-03", "2025-11-17", "2025-12-01"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %s, want %s", i, keys[i], k)
		}
	}
}

func TestDateKeyUsesLocation(t *testing.T) {
	// 23:00 UTC on the 17th is already the 18th in UTC+3.
	ts := time.Date(2025, 11, 17, 23, 0, 0, 0, time.UTC)
	msk := time.FixedZone("UTC+3", 3*60*60)

	if got := DateKey(ts, time.UTC); got != "2025-11-17" {
		t.Errorf("UTC key = %s, want 2025-11-17", got)
	}
	if got := DateKey(ts, msk); got != "2025-11-18" {
		t.Errorf("UTC+3 key = %s, want 2025-11-18", got)
	}
}

func TestClassifyJobDeadlines(t *testing.T) {
	tests := []struct {
		name   string
		when   time.Time
		status string
		want   Urgency
	}{
		{"overdue unapplied is red", testNow.AddDate(0, 0, -3), "", UrgencyOverdue},
		{"applied is gray", testNow.AddDate(0, 0, -3), "APPLIED", UrgencyDone},
		{"interested is gray", testNow.AddDate(0, 0, 2), "INTERESTED", UrgencyDone},
		{"due within 7 days is amber", testNow.AddDate(0, 0, 5), "", UrgencyDueSoon},
		{"far out is green", testNow.AddDate(0, 0, 30), "", UrgencyUpcoming},
		{"rejected is gray even when overdue", testNow.AddDate(0, 0, -10), "REJECTED", UrgencyDone},
		{"lowercase status still settles", testNow.AddDate(0, 0, 2), "applied", UrgencyDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := JobDeadlineItem(1, "Backend Engineer", "Acme", tt.when, tt.status)
			if got := Classify(it, testNow); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyInterviewsAndReminders(t *testing.T) {
	past := InterviewItem(1, 1, "Backend Engineer", "Acme", "technical", testNow.AddDate(0, 0, -1))
	if got := Classify(past, testNow); got != UrgencyDone {
		t.Errorf("past interview = %s, want %s", got, UrgencyDone)
	}

	upcoming := InterviewItem(2, 1, "Backend Engineer", "Acme", "technical", testNow.AddDate(0, 0, 14))
	if got := Classify(upcoming, testNow); got != UrgencyScheduled {
		t.Errorf("upcoming interview = %s, want %s", got, UrgencyScheduled)
	}

	done := ReminderItem(3, testNow.AddDate(0, 0, -2), "Dana", "follow up", "none", true)
	if got := Classify(done, testNow); got != UrgencyDone {
		t.Errorf("completed reminder = %s, want %s", got, UrgencyDone)
	}

	overdue := ReminderItem(4, testNow.AddDate(0, 0, -2), "Dana", "follow up", "none", false)
	if got := Classify(overdue, testNow); got != UrgencyOverdue {
		t.Errorf("overdue reminder = %s, want %s", got, UrgencyOverdue)
	}

	soon := ReminderItem(5, testNow.AddDate(0, 0, 3), "Dana", "follow up", "weekly", false)
	if got := Classify(soon, testNow); got != UrgencyDueSoon {
		t.Errorf("due-soon reminder = %s, want %s", got, UrgencyDueSoon)
	}
}

func TestAgendaStampsUrgencyAndOrders(t *testing.T) {
	items := []Item{
		JobDeadlineItem(1, "Backend Engineer", "Acme", testNow.AddDate(0, 0, 20), ""),
		ReminderItem(2, testNow.AddDate(0, 0, -1), "Dana", "ping", "none", false),
	}

	groups := Agenda(items, time.UTC, testNow)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Items[0].Kind != KindReminder {
		t.Errorf("first group should be the earlier reminder, got %s", groups[0].Items[0].Kind)
	}
	if groups[0].Items[0].Urgency != UrgencyOverdue {
		t.Errorf("reminder urgency = %s, want %s", groups[0].Items[0].Urgency, UrgencyOverdue)
	}
	if groups[1].Items[0].Urgency != UrgencyUpcoming {
		t.Errorf("deadline urgency = %s, want %s", groups[1].Items[0].Urgency, UrgencyUpcoming)
	}
}
