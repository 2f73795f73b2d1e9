package services

import (
	"testing"

	"github.com/adirathodd/careerpilot/internal/models"
)

func TestScopeJobWithoutNotes(t *testing.T) {
	job := models.Job{
		ID:          1,
		Title:       "Backend Engineer",
		Status:      models.StatusInterviewing,
		Location:    "Remote",
		Description: "full description",
		ResumeLink:  "https://example.com/resume.pdf",
		Company:     models.Company{Name: "Acme"},
	}

	shared := ScopeJob(job, false)

	if shared.Title != "Backend Engineer" || shared.Company != "Acme" || shared.Status != models.StatusInterviewing {
		t.Errorf("shared = %+v", shared)
	}
	if shared.Description != "" || shared.ResumeLink != "" {
		t.Error("notes-level fields must be stripped without CanViewNotes")
	}
}

func TestScopeJobWithNotes(t *testing.T) {
	job := models.Job{
		ID:          1,
		Title:       "Backend Engineer",
		Description: "full description",
		ResumeLink:  "https://example.com/resume.pdf",
	}

	shared := ScopeJob(job, true)

	if shared.Description != "full description" {
		t.Errorf("description = %q", shared.Description)
	}
	if shared.ResumeLink != "https://example.com/resume.pdf" {
		t.Errorf("resume link = %q", shared.ResumeLink)
	}
}
