package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"gorm.io/gorm"
)

// EmailService polls the user's inbox and turns application emails into
// status updates and job events.
type EmailService struct {
	DB             *gorm.DB
	AIService      *AIService
	MatcherService *MatcherService
	GmailClient    *gmail.Service
	Logger         *zap.Logger
	PollInterval   time.Duration
}

func NewEmailService(db *gorm.DB, ai *AIService, gmailSvc *gmail.Service, matcher *MatcherService, logger *zap.Logger, pollInterval time.Duration) *EmailService {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Minute
	}
	return &EmailService{
		DB:             db,
		AIService:      ai,
		GmailClient:    gmailSvc,
		MatcherService: matcher,
		Logger:         logger,
		PollInterval:   pollInterval,
	}
}

// StartWatcher starts the background polling loop. It stops when ctx is
// cancelled.
func (s *EmailService) StartWatcher(ctx context.Context) {
	if s.GmailClient == nil {
		s.Logger.Warn("email watcher disabled: no gmail client")
		return
	}

	ticker := time.NewTicker(s.PollInterval)

	// Run immediately on startup.
	go s.SyncEmails(ctx)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SyncEmails(ctx)
			}
		}
	}()
}

// SyncEmails runs one sync cycle: pick a strategy, fetch, process, advance
// the history bookmark.
func (s *EmailService) SyncEmails(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	s.Logger.Debug("email sync cycle starting")

	var user models.User
	if err := s.DB.First(&user).Error; err != nil {
		user = models.User{Email: "default", LastHistoryID: 0}
		s.DB.Create(&user)
	}

	var messages []*gmail.Message
	var newHistoryID uint64
	var err error

	// Bootstrap on first run, incremental afterwards. Google expires old
	// history IDs with a 404, which forces a fresh bootstrap.
	if user.LastHistoryID == 0 {
		s.Logger.Info("first email sync, running full bootstrap")
		messages, newHistoryID, err = s.performFullSync(ctx)
	} else {
		messages, newHistoryID, err = s.performIncrementalSync(ctx, user.LastHistoryID)

		if err != nil && isHistoryExpiredError(err) {
			s.Logger.Warn("history id expired, falling back to full sync")
			messages, newHistoryID, err = s.performFullSync(ctx)
		}
	}
	if err != nil {
		s.Logger.Error("email sync failed", zap.Error(err))
		return
	}

	if len(messages) == 0 {
		s.Logger.Debug("no new relevant emails")
		if newHistoryID > user.LastHistoryID {
			s.updateUserHistoryID(user.ID, newHistoryID)
		}
		return
	}

	s.Logger.Info("processing candidate emails", zap.Int("count", len(messages)))

	for _, msg := range messages {
		var count int64
		s.DB.Model(&models.ProcessedEmail{}).Where("id = ?", msg.Id).Count(&count)
		if count > 0 {
			continue // already processed
		}

		s.processSingleEmail(ctx, msg)

		s.DB.Create(&models.ProcessedEmail{ID: msg.Id})
	}

	if newHistoryID > user.LastHistoryID {
		s.updateUserHistoryID(user.ID, newHistoryID)
		s.Logger.Debug("history bookmark advanced", zap.Uint64("history_id", newHistoryID))
	}
}

// performFullSync scans the last 7 days and resets the history anchor.
func (s *EmailService) performFullSync(ctx context.Context) ([]*gmail.Message, uint64, error) {
	var resp *gmail.ListMessagesResponse

	q := "subject:(application OR interview OR update OR offer OR rejected OR status) newer_than:7d"

	err := s.retry(3, 1*time.Second, func() error {
		var e error
		call := s.GmailClient.Users.Messages.List("me").Q(q).MaxResults(50)
		resp, e = call.Context(ctx).Do()
		return e
	})
	if err != nil {
		return nil, 0, err
	}

	profile, err := s.GmailClient.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return nil, 0, err
	}

	return s.expandMessages(ctx, resp.Messages), profile.HistoryId, nil
}

// performIncrementalSync asks Google only for what changed since startID.
func (s *EmailService) performIncrementalSync(ctx context.Context, startID uint64) ([]*gmail.Message, uint64, error) {
	var resp *gmail.ListHistoryResponse

	err := s.retry(3, 1*time.Second, func() error {
		var e error
		call := s.GmailClient.Users.History.List("me").StartHistoryId(startID)
		// Only added messages matter, not label changes.
		call.HistoryTypes("messageAdded")
		resp, e = call.Context(ctx).Do()
		return e
	})
	if err != nil {
		return nil, 0, err
	}

	var msgHeaders []*gmail.Message
	for _, h := range resp.History {
		for _, mAdded := range h.MessagesAdded {
			if mAdded.Message != nil {
				msgHeaders = append(msgHeaders, mAdded.Message)
			}
		}
	}

	return s.expandMessages(ctx, msgHeaders), resp.HistoryId, nil
}

// expandMessages fetches full bodies and headers for a list of message IDs.
func (s *EmailService) expandMessages(ctx context.Context, headers []*gmail.Message) []*gmail.Message {
	var fullMessages []*gmail.Message
	for _, h := range headers {
		s.retry(2, 500*time.Millisecond, func() error {
			msg, err := s.GmailClient.Users.Messages.Get("me", h.Id).Context(ctx).Do()
			if err == nil {
				fullMessages = append(fullMessages, msg)
			}
			return err
		})
	}
	return fullMessages
}

// processSingleEmail runs matching -> disambiguation -> LLM analysis -> DB.
func (s *EmailService) processSingleEmail(ctx context.Context, msg *gmail.Message) {
	headers := parseHeaders(msg)
	subject := headers["Subject"]
	sender := headers["From"]

	logger := s.Logger.With(zap.String("subject", truncate(subject, 40)), zap.String("sender", sender))

	body := getEmailBody(msg)

	company := s.MatcherService.FindCompanyFromEmail(subject, sender)
	if company == nil {
		logger.Debug("skipped: no tracked company matched")
		return
	}
	logger = logger.With(zap.String("company", company.Name))

	var jobs []models.Job
	// Terminal states are not updatable from email.
	s.DB.Where("company_id = ? AND status NOT IN ('REJECTED', 'OFFER', 'WITHDRAWN')", company.ID).Find(&jobs)

	if len(jobs) == 0 {
		logger.Debug("skipped: no active jobs for company")
		return
	}

	var targetJob *models.Job
	if len(jobs) == 1 {
		targetJob = &jobs[0]
	} else {
		var jobTitles []string
		for _, j := range jobs {
			jobTitles = append(jobTitles, j.Title)
		}

		logger.Debug("ambiguous match, asking model to pick", zap.Strings("titles", jobTitles))
		bestMatchIndex := s.AIService.IdentifyJobRole(ctx, jobTitles, subject, body)
		if bestMatchIndex == -1 {
			logger.Info("skipped: could not determine target job")
			return
		}
		targetJob = &jobs[bestMatchIndex]
	}
	logger = logger.With(zap.Uint("job_id", targetJob.ID), zap.String("title", targetJob.Title))

	analysisJSON, err := s.AIService.AnalyzeEmailStatus(ctx, company.Name, subject, body)
	if err != nil {
		logger.Warn("skipped: analysis failed", zap.Error(err))
		return
	}

	var result struct {
		Status  string `json:"status"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(analysisJSON), &result); err != nil {
		logger.Warn("skipped: unparsable analysis", zap.Error(err), zap.String("raw", truncate(analysisJSON, 200)))
		return
	}

	if result.Status == "NO_CHANGE" || result.Status == "UNKNOWN" {
		logger.Debug("no update needed", zap.String("status", result.Status))
		return
	}
	if result.Status == targetJob.Status {
		logger.Debug("status unchanged", zap.String("status", result.Status))
		return
	}

	logger.Info("updating job from email",
		zap.String("from", targetJob.Status),
		zap.String("to", result.Status),
	)
	s.DB.Model(targetJob).Updates(map[string]interface{}{
		"status": result.Status,
	})

	s.DB.Create(&models.JobEvent{
		JobID:     targetJob.ID,
		EventType: "EMAIL_UPDATE",
		Details:   fmt.Sprintf("Status changed to %s. Summary: %s", result.Status, result.Summary),
	})
}

// retry executes a function with exponential backoff. History-expired
// errors fail fast so the caller can switch to a full sync.
func (s *EmailService) retry(attempts int, sleep time.Duration, f func() error) error {
	for i := 0; i < attempts; i++ {
		err := f()
		if err == nil {
			return nil
		}
		if isHistoryExpiredError(err) {
			return err
		}

		s.Logger.Warn("gmail call failed, retrying", zap.Error(err), zap.Duration("backoff", sleep))
		time.Sleep(sleep)
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts", attempts)
}

func isHistoryExpiredError(err error) bool {
	if gErr, ok := err.(*googleapi.Error); ok {
		return gErr.Code == 404
	}
	return false
}

func (s *EmailService) updateUserHistoryID(userID uint, newID uint64) {
	s.DB.Model(&models.User{}).Where("id = ?", userID).Update("last_history_id", newID)
}

func parseHeaders(msg *gmail.Message) map[string]string {
	res := make(map[string]string)
	for _, h := range msg.Payload.Headers {
		res[h.Name] = h.Value
	}
	return res
}

func getEmailBody(msg *gmail.Message) string {
	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		d, _ := base64.URLEncoding.DecodeString(msg.Payload.Body.Data)
		return string(d)
	}
	for _, part := range msg.Payload.Parts {
		if part.MimeType == "text/plain" && part.Body.Data != "" {
			d, _ := base64.URLEncoding.DecodeString(part.Body.Data)
			return string(d)
		}
	}
	for _, part := range msg.Payload.Parts {
		if part.MimeType == "text/html" && part.Body.Data != "" {
			d, _ := base64.URLEncoding.DecodeString(part.Body.Data)
			return string(d)
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
