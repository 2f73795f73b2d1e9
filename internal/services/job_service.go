package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid job status")

var validStatuses = map[string]bool{
	models.StatusInterested:   true,
	models.StatusApplied:      true,
	models.StatusInterviewing: true,
	models.StatusOffer:        true,
	models.StatusRejected:     true,
	models.StatusWithdrawn:    true,
}

type JobService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewJobService(db *gorm.DB, logger *zap.Logger) *JobService {
	return &JobService{DB: db, Logger: logger}
}

func (s *JobService) CreateJob(req *dtos.JobCreationRequest) (*models.Job, error) {
	var company models.Company
	// creates the company on first sight of its name
	err := s.DB.Where(models.Company{Name: req.CompanyName}).
		FirstOrCreate(&company).Error
	if err != nil {
		return nil, err
	}

	status := strings.ToUpper(req.Status)
	if status == "" {
		status = models.StatusInterested
	}
	if !validStatuses[status] {
		return nil, ErrInvalidStatus
	}

	job := &models.Job{
		CompanyID:   company.ID,
		Title:       req.Title,
		Description: req.Description,
		JobLink:     req.JobLink,
		ResumeLink:  req.ResumeLink,
		Location:    req.Location,
		SalaryRange: req.SalaryRange,
		TechStack:   strings.Join(req.TechStack, ","),
		Status:      status,
	}

	if req.ApplicationDeadline != "" {
		deadline, err := time.Parse(time.RFC3339, req.ApplicationDeadline)
		if err != nil {
			return nil, fmt.Errorf("parsing application_deadline: %w", err)
		}
		job.ApplicationDeadline = &deadline
	}

	job.QualityScore = ScoreJob(job)

	if err := s.DB.Create(job).Error; err != nil {
		return nil, err
	}

	s.Logger.Info("job created",
		zap.Uint("job_id", job.ID),
		zap.String("company", req.CompanyName),
		zap.String("title", job.Title),
	)
	return job, nil
}

func (s *JobService) ListJobs() ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.Preload("Company").Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

func (s *JobService) GetJob(id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.Preload("Company").Preload("Interviews").First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateStatus moves a job through the pipeline and appends a JobEvent so
// the history survives later edits.
func (s *JobService) UpdateStatus(id uint, status, note string) (*models.Job, error) {
	status = strings.ToUpper(status)
	if !validStatuses[status] {
		return nil, ErrInvalidStatus
	}

	job, err := s.GetJob(id)
	if err != nil {
		return nil, err
	}
	if job.Status == status {
		return job, nil
	}

	previous := job.Status
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(job).Update("status", status).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("Status changed from %s to %s", previous, status)
		if note != "" {
			details += ". " + note
		}
		return tx.Create(&models.JobEvent{
			JobID:     job.ID,
			EventType: "STATUS_CHANGE",
			Details:   details,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("job status updated",
		zap.Uint("job_id", job.ID),
		zap.String("from", previous),
		zap.String("to", status),
	)
	job.Status = status
	return job, nil
}

func (s *JobService) DeleteJob(id uint) error {
	res := s.DB.Delete(&models.Job{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *JobService) ListEvents(jobID uint) ([]models.JobEvent, error) {
	var events []models.JobEvent
	err := s.DB.Where("job_id = ?", jobID).Order("created_at desc").Find(&events).Error
	return events, err
}
