package services

import (
	"testing"
	"time"

	"github.com/adirathodd/careerpilot/internal/models"
)

func contactID(id uint) *uint { return &id }

func TestAggregateEmptyCampaign(t *testing.T) {
	summary := Aggregate(1, 10, nil)

	if summary.TotalActivities != 0 {
		t.Errorf("total = %d, want 0", summary.TotalActivities)
	}
	if summary.ProgressPct != 0 {
		t.Errorf("progress = %d, want 0", summary.ProgressPct)
	}
	if summary.LastActivityAt != nil {
		t.Error("last activity should be nil for an empty campaign")
	}
}

func TestAggregateCountsTypesAndContacts(t *testing.T) {
	base := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)
	activities := []models.CampaignActivity{
		{ActivityType: "outreach", ContactID: contactID(1), OccurredAt: base},
		{ActivityType: "outreach", ContactID: contactID(2), OccurredAt: base.AddDate(0, 0, 1)},
		{ActivityType: "reply", ContactID: contactID(1), OccurredAt: base.AddDate(0, 0, 3)},
		{ActivityType: "meeting", ContactID: nil, OccurredAt: base.AddDate(0, 0, 2)},
	}

	summary := Aggregate(7, 4, activities)

	if summary.TotalActivities != 4 {
		t.Errorf("total = %d, want 4", summary.TotalActivities)
	}
	if summary.ByType["outreach"] != 2 || summary.ByType["reply"] != 1 || summary.ByType["meeting"] != 1 {
		t.Errorf("by_type = %v", summary.ByType)
	}
	// Contact 1 appears twice but counts once; the nil-contact meeting
	// does not count toward unique contacts.
	if summary.UniqueContacts != 2 {
		t.Errorf("unique contacts = %d, want 2", summary.UniqueContacts)
	}
	if summary.ProgressPct != 50 {
		t.Errorf("progress = %d, want 50", summary.ProgressPct)
	}
	if summary.LastActivityAt == nil || !summary.LastActivityAt.Equal(base.AddDate(0, 0, 3)) {
		t.Errorf("last activity = %v, want %s", summary.LastActivityAt, base.AddDate(0, 0, 3))
	}
}

func TestAggregateProgressCapsAt100(t *testing.T) {
	activities := []models.CampaignActivity{
		{ActivityType: "outreach", ContactID: contactID(1)},
		{ActivityType: "outreach", ContactID: contactID(2)},
		{ActivityType: "outreach", ContactID: contactID(3)},
	}

	summary := Aggregate(1, 2, activities)

	if summary.ProgressPct != 100 {
		t.Errorf("progress = %d, want capped 100", summary.ProgressPct)
	}
}

func TestSummarizeSalaries(t *testing.T) {
	rows := []models.SalaryResearch{
		{Low: 120000, Median: 150000, High: 180000},
		{Low: 110000, Median: 140000, High: 200000},
	}

	summary := SummarizeSalaries(3, rows)

	if summary.Low != 110000 {
		t.Errorf("low = %d, want 110000", summary.Low)
	}
	if summary.High != 200000 {
		t.Errorf("high = %d, want 200000", summary.High)
	}
	if summary.Median != 145000 {
		t.Errorf("median = %d, want 145000", summary.Median)
	}
	if summary.Midpoint != 155000 {
		t.Errorf("midpoint = %d, want 155000", summary.Midpoint)
	}
	if summary.Samples != 2 {
		t.Errorf("samples = %d, want 2", summary.Samples)
	}
}

func TestSummarizeSalariesEmpty(t *testing.T) {
	summary := SummarizeSalaries(3, nil)
	if summary.Samples != 0 || summary.Low != 0 || summary.High != 0 {
		t.Errorf("empty summary = %+v", summary)
	}
}
