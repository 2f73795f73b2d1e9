package services

import (
	"strings"
	"time"

	"github.com/adirathodd/careerpilot/internal/models"
)

// Score bands shown as tones next to the percentage.
const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandFair      = "fair"
	BandPoor      = "poor"
)

// ScoreBreakdown explains how a job's quality score was assembled.
type ScoreBreakdown struct {
	Score        int            `json:"score"`
	Band         string         `json:"band"`
	Completeness int            `json:"completeness"`
	Signals      map[string]int `json:"signals"`
}

// ScoreJob computes the 0-100 quality score for a job posting. The score
// rewards complete records, a published deadline that is still open, a
// stated salary range and a concrete tech stack.
func ScoreJob(job *models.Job) int {
	return ScoreJobAt(job, time.Now()).Score
}

// ScoreJobAt is ScoreJob with an explicit clock.
func ScoreJobAt(job *models.Job, now time.Time) ScoreBreakdown {
	signals := make(map[string]int)

	// Completeness: up to 50 points, 10 per meaningful field.
	completeness := 0
	if job.Title != "" {
		completeness += 10
	}
	if len(job.Description) >= 80 {
		completeness += 10
	}
	if job.JobLink != "" {
		completeness += 10
	}
	if job.Location != "" {
		completeness += 10
	}
	if job.ResumeLink != "" {
		completeness += 10
	}
	signals["completeness"] = completeness

	// Salary transparency.
	if job.SalaryRange != "" {
		signals["salary"] = 15
	}

	// Tech stack: 3 points per listed technology, capped at 15.
	if job.TechStack != "" {
		n := len(strings.Split(job.TechStack, ","))
		pts := n * 3
		if pts > 15 {
			pts = 15
		}
		signals["tech_stack"] = pts
	}

	// Deadline signal: an open deadline is worth 20, decaying to 5 once
	// it is less than 48 hours out. A missed deadline contributes nothing.
	if job.ApplicationDeadline != nil {
		switch {
		case job.ApplicationDeadline.Before(now):
			signals["deadline"] = 0
		case job.ApplicationDeadline.Sub(now) < 48*time.Hour:
			signals["deadline"] = 5
		default:
			signals["deadline"] = 20
		}
	}

	score := 0
	for _, v := range signals {
		score += v
	}
	if score > 100 {
		score = 100
	}

	return ScoreBreakdown{
		Score:        score,
		Band:         scoreBand(score),
		Completeness: completeness,
		Signals:      signals,
	}
}

func scoreBand(score int) string {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandFair
	default:
		return BandPoor
	}
}
