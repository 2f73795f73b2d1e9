package services

import (
	"strings"
	"testing"
	"time"

	"github.com/adirathodd/careerpilot/internal/models"
)

var scoreNow = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

func deadline(d time.Time) *time.Time { return &d }

func TestScoreJobAtCompleteJob(t *testing.T) {
	job := &models.Job{
		Title:               "Backend Engineer",
		Description:         strings.Repeat("responsibilities and requirements ", 5),
		JobLink:             "https://example.com/jobs/1",
		Location:            "Remote",
		ResumeLink:          "https://example.com/resume.pdf",
		SalaryRange:         "$140k - $180k",
		TechStack:           "Go,Postgres,Kubernetes,AWS,React",
		ApplicationDeadline: deadline(scoreNow.AddDate(0, 0, 14)),
	}

	breakdown := ScoreJobAt(job, scoreNow)

	if breakdown.Score != 100 {
		t.Errorf("score = %d, want 100", breakdown.Score)
	}
	if breakdown.Band != BandExcellent {
		t.Errorf("band = %s, want %s", breakdown.Band, BandExcellent)
	}
	if breakdown.Completeness != 50 {
		t.Errorf("completeness = %d, want 50", breakdown.Completeness)
	}
}

func TestScoreJobAtBareJob(t *testing.T) {
	job := &models.Job{Title: "Backend Engineer"}

	breakdown := ScoreJobAt(job, scoreNow)

	if breakdown.Score != 10 {
		t.Errorf("score = %d, want 10", breakdown.Score)
	}
	if breakdown.Band != BandPoor {
		t.Errorf("band = %s, want %s", breakdown.Band, BandPoor)
	}
}

func TestScoreJobAtDeadlineDecay(t *testing.T) {
	tests := []struct {
		name string
		when time.Time
		want int
	}{
		{"open deadline", scoreNow.AddDate(0, 0, 10), 20},
		{"closing soon", scoreNow.Add(24 * time.Hour), 5},
		{"missed", scoreNow.AddDate(0, 0, -1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &models.Job{Title: "x", ApplicationDeadline: deadline(tt.when)}
			breakdown := ScoreJobAt(job, scoreNow)
			if got := breakdown.Signals["deadline"]; got != tt.want {
				t.Errorf("deadline signal = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreJobAtTechStackCap(t *testing.T) {
	job := &models.Job{Title: "x", TechStack: "Go,Postgres,Redis,Kafka,React,AWS,Docker"}

	breakdown := ScoreJobAt(job, scoreNow)

	if got := breakdown.Signals["tech_stack"]; got != 15 {
		t.Errorf("tech_stack signal = %d, want capped 15", got)
	}
}

func TestScoreBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, BandExcellent},
		{80, BandExcellent},
		{79, BandGood},
		{60, BandGood},
		{59, BandFair},
		{40, BandFair},
		{39, BandPoor},
		{0, BandPoor},
	}
	for _, tt := range tests {
		if got := scoreBand(tt.score); got != tt.want {
			t.Errorf("scoreBand(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
