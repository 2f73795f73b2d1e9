package dtos

type InterviewRequest struct {
	JobID         uint   `json:"job_id" binding:"required"`
	ScheduledAt   string `json:"scheduled_at" binding:"required"` // RFC3339
	InterviewType string `json:"interview_type" binding:"required"`
	Notes         string `json:"notes"`
}

type InterviewUpdateRequest struct {
	ScheduledAt   string `json:"scheduled_at"`
	InterviewType string `json:"interview_type"`
	Notes         string `json:"notes"`
	Outcome       string `json:"outcome"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Notes   string `json:"notes"`
}

type ReminderRequest struct {
	ContactID  *uint  `json:"contact_id"`
	JobID      *uint  `json:"job_id"`
	DueDate    string `json:"due_date" binding:"required"` // RFC3339
	Message    string `json:"message" binding:"required"`
	Recurrence string `json:"recurrence"` // none, daily, weekly, monthly
}

type CampaignRequest struct {
	Name        string `json:"name" binding:"required"`
	Goal        string `json:"goal"`
	TargetCount int    `json:"target_count"`
}

type CampaignActivityRequest struct {
	ContactID    *uint  `json:"contact_id"`
	ActivityType string `json:"activity_type" binding:"required"`
	OccurredAt   string `json:"occurred_at"` // RFC3339, defaults to now
	Notes        string `json:"notes"`
}

type SalaryResearchRequest struct {
	Role     string `json:"role" binding:"required"`
	Location string `json:"location"`
	Low      int    `json:"low"`
	Median   int    `json:"median"`
	High     int    `json:"high"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}

type SupporterInviteRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email"`
	AccessCode        string `json:"access_code" binding:"required,min=6"`
	CanViewJobs       bool   `json:"can_view_jobs"`
	CanViewInterviews bool   `json:"can_view_interviews"`
	CanViewNotes      bool   `json:"can_view_notes"`
}

type GenerationRequest struct {
	ResumeText string `json:"resume_text"`
}
