package services

import (
	"errors"

	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrAccessDenied = errors.New("access denied")

type SupporterService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewSupporterService(db *gorm.DB, logger *zap.Logger) *SupporterService {
	return &SupporterService{DB: db, Logger: logger}
}

// SharedOverview is the permission-scoped snapshot a supporter sees.
// Sections the supporter may not view stay nil.
type SharedOverview struct {
	SupporterName string             `json:"supporter_name"`
	Jobs          []SharedJob        `json:"jobs,omitempty"`
	Interviews    []models.Interview `json:"interviews,omitempty"`
}

// SharedJob strips a job down to what a supporter is allowed to see.
// Notes-level fields (description, resume link) require CanViewNotes.
type SharedJob struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Status      string `json:"status"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ResumeLink  string `json:"resume_link,omitempty"`
}

// Invite creates a supporter with a fresh share token. The access code is
// stored only as a bcrypt hash.
func (s *SupporterService) Invite(req *dtos.SupporterInviteRequest) (*models.Supporter, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.AccessCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	supporter := &models.Supporter{
		Name:              req.Name,
		Email:             req.Email,
		Token:             uuid.NewString(),
		AccessCodeHash:    string(hash),
		CanViewJobs:       req.CanViewJobs,
		CanViewInterviews: req.CanViewInterviews,
		CanViewNotes:      req.CanViewNotes,
	}
	if err := s.DB.Create(supporter).Error; err != nil {
		return nil, err
	}

	s.Logger.Info("supporter invited",
		zap.Uint("supporter_id", supporter.ID),
		zap.String("name", supporter.Name),
		zap.Bool("jobs", supporter.CanViewJobs),
		zap.Bool("interviews", supporter.CanViewInterviews),
	)
	return supporter, nil
}

func (s *SupporterService) List() ([]models.Supporter, error) {
	var supporters []models.Supporter
	err := s.DB.Order("created_at desc").Find(&supporters).Error
	return supporters, err
}

func (s *SupporterService) Delete(id uint) error {
	res := s.DB.Delete(&models.Supporter{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Authenticate resolves a share token and verifies the access code.
// A bad token and a bad code return the same error.
func (s *SupporterService) Authenticate(token, accessCode string) (*models.Supporter, error) {
	var supporter models.Supporter
	if err := s.DB.Where("token = ?", token).First(&supporter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(supporter.AccessCodeHash), []byte(accessCode)); err != nil {
		return nil, ErrAccessDenied
	}
	return &supporter, nil
}

// Overview assembles the read-only snapshot for an authenticated supporter.
func (s *SupporterService) Overview(supporter *models.Supporter) (*SharedOverview, error) {
	overview := &SharedOverview{SupporterName: supporter.Name}

	if supporter.CanViewJobs {
		var jobs []models.Job
		if err := s.DB.Preload("Company").Order("created_at desc").Find(&jobs).Error; err != nil {
			return nil, err
		}
		overview.Jobs = make([]SharedJob, 0, len(jobs))
		for _, job := range jobs {
			overview.Jobs = append(overview.Jobs, ScopeJob(job, supporter.CanViewNotes))
		}
	}

	if supporter.CanViewInterviews {
		var interviews []models.Interview
		if err := s.DB.Preload("Job").Preload("Job.Company").Order("scheduled_at asc").Find(&interviews).Error; err != nil {
			return nil, err
		}
		if !supporter.CanViewNotes {
			for i := range interviews {
				interviews[i].Notes = ""
			}
		}
		overview.Interviews = interviews
	}

	return overview, nil
}

// ScopeJob reduces a job to the supporter-visible projection.
func ScopeJob(job models.Job, withNotes bool) SharedJob {
	shared := SharedJob{
		ID:       job.ID,
		Title:    job.Title,
		Company:  job.Company.Name,
		Status:   job.Status,
		Location: job.Location,
	}
	if withNotes {
		shared.Description = job.Description
		shared.ResumeLink = job.ResumeLink
	}
	return shared
}
