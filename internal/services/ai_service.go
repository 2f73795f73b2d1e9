package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/adirathodd/careerpilot/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

type AIService struct {
	Client llms.Model
	Logger *zap.Logger
}

// NewAIService initializes the Gemini client through langchaingo.
func NewAIService(ctx context.Context, apiKey, model string, logger *zap.Logger) (*AIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI api key is empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &AIService{Client: llm, Logger: logger}, nil
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company_name": "Name of the company (e.g., Google, StartupInc)",
    "role_title": "Job title (e.g., Senior Backend Engineer)",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "tech_stack": ["Array", "of", "technologies", "mentioned", "e.g., Go, React, AWS"],
    "salary_range": "The salary string if explicitly mentioned (e.g., '$100k - $150k'), otherwise null",
    "application_deadline": "ISO-8601 date if a deadline is stated, otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractJobDetails takes raw HTML and returns a structured JSON string.
func (s *AIService) ExtractJobDetails(ctx context.Context, rawHTML string) (string, error) {
	if len(rawHTML) > 20000 {
		rawHTML = rawHTML[:20000]
	}
	return llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
}

const matchAnalysisPrompt = `
You are a career coach analyzing how well a candidate matches a job posting.

### JOB:
Title: %s
Company: %s
Tech stack: %s
Description:
%s

### CANDIDATE RESUME:
%s

### INSTRUCTIONS:
Respond with valid JSON only, no markdown fences:
{
    "match_pct": 0-100,
    "strengths": ["bullet", "points"],
    "gaps": ["bullet", "points"],
    "summary": "two sentences at most"
}
`

// MatchAnalysis scores a resume against a job posting.
func (s *AIService) MatchAnalysis(ctx context.Context, job *models.Job, resume string) (string, error) {
	if len(resume) > 15000 {
		resume = resume[:15000]
	}
	prompt := fmt.Sprintf(matchAnalysisPrompt, job.Title, job.Company.Name, job.TechStack, job.Description, resume)
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}

const technicalPrepPrompt = `
You are an interview coach. Build a technical preparation checklist for this role.

### JOB:
Title: %s
Tech stack: %s
Description:
%s

### INSTRUCTIONS:
Respond with valid JSON only, no markdown fences:
{
    "topics": [{"name": "topic", "why": "one line", "resources": ["item"]}],
    "practice_questions": ["question"],
    "summary": "one short paragraph"
}
`

// TechnicalPrep generates a prep checklist for a job's interviews.
func (s *AIService) TechnicalPrep(ctx context.Context, job *models.Job) (string, error) {
	prompt := fmt.Sprintf(technicalPrepPrompt, job.Title, job.TechStack, job.Description)
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}

const playbookPrompt = `
You are a networking coach. Write a short outreach playbook.

### TARGET:
Contact: %s (%s at %s)
Context: the user is pursuing the role "%s".

### INSTRUCTIONS:
Respond with valid JSON only, no markdown fences:
{
    "opening_message": "ready-to-send first message",
    "follow_up_cadence": ["day 0: ...", "day 4: ..."],
    "talking_points": ["point"]
}
`

// Playbook generates outreach guidance for a contact in the context of a job.
func (s *AIService) Playbook(ctx context.Context, contact *models.Contact, jobTitle string) (string, error) {
	prompt := fmt.Sprintf(playbookPrompt, contact.Name, contact.Role, contact.Company, jobTitle)
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}

const emailStatusPrompt = `
You are monitoring a job seeker's inbox. Decide what, if anything, this email means for their application at %s.

### EMAIL SUBJECT:
%s

### EMAIL BODY:
%s

### INSTRUCTIONS:
Respond with valid JSON only, no markdown fences:
{
    "status": "one of APPLIED, INTERVIEWING, OFFER, REJECTED, NO_CHANGE, UNKNOWN",
    "summary": "one sentence"
}
`

// AnalyzeEmailStatus decides whether an email changes an application's status.
func (s *AIService) AnalyzeEmailStatus(ctx context.Context, companyName, subject, body string) (string, error) {
	if len(body) > 10000 {
		body = body[:10000]
	}
	prompt := fmt.Sprintf(emailStatusPrompt, companyName, subject, body)
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
}

// IdentifyJobRole asks the model which of the candidate job titles an email
// is about. Returns the zero-based index, or -1 when undecidable.
func (s *AIService) IdentifyJobRole(ctx context.Context, jobTitles []string, subject, body string) int {
	if len(body) > 5000 {
		body = body[:5000]
	}

	var options strings.Builder
	for i, title := range jobTitles {
		fmt.Fprintf(&options, "%d: %s\n", i, title)
	}

	prompt := fmt.Sprintf(`An email arrived about one of these job applications:
%s
Subject: %s
Body: %s

Reply with ONLY the number of the matching job, or -1 if you cannot tell.`, options.String(), subject, body)

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		s.Logger.Warn("job disambiguation failed", zap.Error(err))
		return -1
	}

	idx, err := strconv.Atoi(strings.TrimSpace(resp))
	if err != nil || idx < 0 || idx >= len(jobTitles) {
		return -1
	}
	return idx
}
