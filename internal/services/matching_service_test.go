package services

import (
	"testing"

	"github.com/adirathodd/careerpilot/internal/models"
)

func TestMatchCompany(t *testing.T) {
	companies := []models.Company{
		{ID: 1, Name: "Stripe"},
		{ID: 2, Name: "Globex"},
		{ID: 3, Name: "Go"}, // too short, must never match
	}

	tests := []struct {
		name    string
		subject string
		sender  string
		want    uint
	}{
		{"subject mention", "Update on your application to Stripe", "noreply@ats.example.com", 1},
		{"sender display name", "Interview availability", "Globex Recruiting <talent@greenhouse.io>", 2},
		{"sender domain", "Next steps", "jobs@stripe.com", 1},
		{"short names skipped", "Thanks for applying to Go", "go@go.dev", 0},
		{"no match", "Weekly newsletter", "news@example.com", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchCompany(companies, tt.subject, tt.sender)
			if tt.want == 0 {
				if got != nil {
					t.Errorf("matched %q, want no match", got.Name)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a match, got none")
			}
			if got.ID != tt.want {
				t.Errorf("matched company %d, want %d", got.ID, tt.want)
			}
		})
	}
}

func TestMatchCompanyUnparsableSender(t *testing.T) {
	companies := []models.Company{{ID: 1, Name: "Stripe"}}

	// A raw address that mail.ParseAddress rejects falls back to substring
	// matching on the whole string's domain part.
	got := MatchCompany(companies, "hello", "recruiting at stripe.com")
	if got != nil {
		t.Errorf("no domain part, should not match, got %q", got.Name)
	}

	got = MatchCompany(companies, "Stripe opportunity", "not-an-address")
	if got == nil || got.ID != 1 {
		t.Error("subject rule should still match when sender is unparsable")
	}
}
