package services

import (
	"fmt"
	"time"

	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InterviewService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewInterviewService(db *gorm.DB, logger *zap.Logger) *InterviewService {
	return &InterviewService{DB: db, Logger: logger}
}

func (s *InterviewService) Create(req *dtos.InterviewRequest) (*models.Interview, error) {
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("parsing scheduled_at: %w", err)
	}

	var job models.Job
	if err := s.DB.First(&job, req.JobID).Error; err != nil {
		return nil, err
	}

	iv := &models.Interview{
		JobID:         job.ID,
		ScheduledAt:   scheduledAt,
		InterviewType: req.InterviewType,
		Notes:         req.Notes,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(iv).Error; err != nil {
			return err
		}
		// Scheduling an interview implies the pipeline moved.
		if job.Status == models.StatusApplied || job.Status == models.StatusInterested {
			if err := tx.Model(&job).Update("status", models.StatusInterviewing).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.JobEvent{
				JobID:     job.ID,
				EventType: "INTERVIEW_SCHEDULED",
				Details:   fmt.Sprintf("%s interview scheduled for %s", req.InterviewType, scheduledAt.Format(time.RFC3339)),
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("interview scheduled",
		zap.Uint("interview_id", iv.ID),
		zap.Uint("job_id", job.ID),
		zap.String("type", iv.InterviewType),
	)
	return iv, nil
}

func (s *InterviewService) List() ([]models.Interview, error) {
	var interviews []models.Interview
	err := s.DB.Preload("Job").Preload("Job.Company").Order("scheduled_at asc").Find(&interviews).Error
	return interviews, err
}

func (s *InterviewService) ListForJob(jobID uint) ([]models.Interview, error) {
	var interviews []models.Interview
	err := s.DB.Where("job_id = ?", jobID).Order("scheduled_at asc").Find(&interviews).Error
	return interviews, err
}

func (s *InterviewService) Update(id uint, req *dtos.InterviewUpdateRequest) (*models.Interview, error) {
	var iv models.Interview
	if err := s.DB.First(&iv, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.ScheduledAt != "" {
		scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("parsing scheduled_at: %w", err)
		}
		updates["scheduled_at"] = scheduledAt
	}
	if req.InterviewType != "" {
		updates["interview_type"] = req.InterviewType
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.Outcome != "" {
		updates["outcome"] = req.Outcome
	}
	if len(updates) == 0 {
		return &iv, nil
	}

	if err := s.DB.Model(&iv).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &iv, nil
}

func (s *InterviewService) Delete(id uint) error {
	res := s.DB.Delete(&models.Interview{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
