package models

import (
	"time"

	"gorm.io/gorm"
)

// Job statuses. A job starts as INTERESTED and moves through the pipeline.
const (
	StatusInterested   = "INTERESTED"
	StatusApplied      = "APPLIED"
	StatusInterviewing = "INTERVIEWING"
	StatusOffer        = "OFFER"
	StatusRejected     = "REJECTED"
	StatusWithdrawn    = "WITHDRAWN"
)

// Reminder recurrence values.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	LastHistoryID uint64 `json:"last_history_id"`
}

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"uniqueIndex;not null" json:"company_name"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint    `json:"company_id"`
	Company   Company `json:"company"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	JobLink     string `json:"job_link"`
	Status      string `gorm:"default:'INTERESTED'" json:"status"`
	ResumeLink  string `json:"resume_link"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
	TechStack   string `gorm:"type:text" json:"tech_stack"` // comma-separated

	// Nullable: not every posting publishes a deadline.
	ApplicationDeadline *time.Time `json:"application_deadline"`

	QualityScore int `json:"quality_score"`

	Interviews []Interview `json:"interviews,omitempty"`
}

type JobEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	JobID     uint      `json:"job_id"`
	EventType string    `json:"event_type"`
	Details   string    `gorm:"type:text" json:"details"`
}

type Interview struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	JobID uint `gorm:"index;not null" json:"job_id"`
	Job   Job  `json:"job,omitempty"`

	ScheduledAt   time.Time `gorm:"not null" json:"scheduled_at"`
	InterviewType string    `json:"interview_type"` // screening, technical, onsite, final
	Notes         string    `gorm:"type:text" json:"notes"`
	Outcome       string    `json:"outcome"`
}

type Contact struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Notes   string `gorm:"type:text" json:"notes"`
}

type Reminder struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ContactID *uint    `json:"contact_id"`
	Contact   *Contact `json:"contact,omitempty"`
	JobID     *uint    `json:"job_id"`

	DueDate    time.Time `gorm:"not null" json:"due_date"`
	Message    string    `gorm:"type:text" json:"message"`
	Recurrence string    `gorm:"default:'none'" json:"recurrence"`
	Completed  bool      `json:"completed"`
}

type Campaign struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Goal        string `gorm:"type:text" json:"goal"`
	Status      string `gorm:"default:'ACTIVE'" json:"status"`
	TargetCount int    `json:"target_count"`

	Activities []CampaignActivity `json:"activities,omitempty"`
}

type CampaignActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CampaignID uint     `gorm:"index;not null" json:"campaign_id"`
	ContactID  *uint    `json:"contact_id"`
	Contact    *Contact `json:"contact,omitempty"`

	ActivityType string    `gorm:"not null" json:"activity_type"` // outreach, reply, meeting, referral
	OccurredAt   time.Time `json:"occurred_at"`
	Notes        string    `gorm:"type:text" json:"notes"`
}

type SalaryResearch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	JobID uint `gorm:"index;not null" json:"job_id"`

	Role     string `json:"role"`
	Location string `json:"location"`
	Low      int    `json:"low"`
	Median   int    `json:"median"`
	High     int    `json:"high"`
	Source   string `json:"source"`
	Notes    string `gorm:"type:text" json:"notes"`
}

// Supporter is an external party with a read-only, permission-scoped view
// into the user's search. Token identifies the share link; the access code
// is never stored in the clear.
type Supporter struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `gorm:"not null" json:"name"`
	Email string `json:"email"`

	Token          string `gorm:"uniqueIndex;not null" json:"token"`
	AccessCodeHash string `json:"-"`

	CanViewJobs       bool `json:"can_view_jobs"`
	CanViewInterviews bool `json:"can_view_interviews"`
	CanViewNotes      bool `json:"can_view_notes"`
}

type ProcessedEmail struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
}
