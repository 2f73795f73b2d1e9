package services

import (
	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SalaryService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewSalaryService(db *gorm.DB, logger *zap.Logger) *SalaryService {
	return &SalaryService{DB: db, Logger: logger}
}

// SalarySummary merges all research rows for a job into one band.
type SalarySummary struct {
	JobID    uint `json:"job_id"`
	Samples  int  `json:"samples"`
	Low      int  `json:"low"`
	Median   int  `json:"median"`
	High     int  `json:"high"`
	Midpoint int  `json:"midpoint"`
}

func (s *SalaryService) Create(jobID uint, req *dtos.SalaryResearchRequest) (*models.SalaryResearch, error) {
	var job models.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, err
	}

	research := &models.SalaryResearch{
		JobID:    job.ID,
		Role:     req.Role,
		Location: req.Location,
		Low:      req.Low,
		Median:   req.Median,
		High:     req.High,
		Source:   req.Source,
		Notes:    req.Notes,
	}
	if err := s.DB.Create(research).Error; err != nil {
		return nil, err
	}
	return research, nil
}

func (s *SalaryService) ListForJob(jobID uint) ([]models.SalaryResearch, error) {
	var rows []models.SalaryResearch
	err := s.DB.Where("job_id = ?", jobID).Order("created_at desc").Find(&rows).Error
	return rows, err
}

func (s *SalaryService) Delete(id uint) error {
	res := s.DB.Delete(&models.SalaryResearch{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *SalaryService) Summary(jobID uint) (*SalarySummary, error) {
	rows, err := s.ListForJob(jobID)
	if err != nil {
		return nil, err
	}
	summary := SummarizeSalaries(jobID, rows)
	return &summary, nil
}

// SummarizeSalaries folds research rows into a single band: the lowest
// low, the highest high and the average of the medians.
func SummarizeSalaries(jobID uint, rows []models.SalaryResearch) SalarySummary {
	summary := SalarySummary{JobID: jobID, Samples: len(rows)}
	if len(rows) == 0 {
		return summary
	}

	medianSum := 0
	for i, r := range rows {
		if i == 0 || r.Low < summary.Low {
			summary.Low = r.Low
		}
		if r.High > summary.High {
			summary.High = r.High
		}
		medianSum += r.Median
	}
	summary.Median = medianSum / len(rows)
	summary.Midpoint = (summary.Low + summary.High) / 2
	return summary
}
