package dtos

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type JobCreationRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Title       string `json:"role_title" binding:"required"`
	JobLink     string `json:"job_link"`
	Description string `json:"description"`

	// Optional fields
	Location            string   `json:"location"`
	SalaryRange         string   `json:"salary_range"`
	TechStack           []string `json:"tech_stack"`
	ResumeLink          string   `json:"resume_link"`
	Status              string   `json:"status"`               // defaults to "INTERESTED" if empty
	ApplicationDeadline string   `json:"application_deadline"` // RFC3339, optional
}

type JobStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}
