package services

import (
	"fmt"
	"time"

	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CampaignService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewCampaignService(db *gorm.DB, logger *zap.Logger) *CampaignService {
	return &CampaignService{DB: db, Logger: logger}
}

// CampaignSummary aggregates a campaign's activity log.
type CampaignSummary struct {
	CampaignID      uint           `json:"campaign_id"`
	TotalActivities int            `json:"total_activities"`
	ByType          map[string]int `json:"by_type"`
	UniqueContacts  int            `json:"unique_contacts"`
	TargetCount     int            `json:"target_count"`
	ProgressPct     int            `json:"progress_pct"`
	LastActivityAt  *time.Time     `json:"last_activity_at"`
}

func (s *CampaignService) Create(req *dtos.CampaignRequest) (*models.Campaign, error) {
	campaign := &models.Campaign{
		Name:        req.Name,
		Goal:        req.Goal,
		TargetCount: req.TargetCount,
	}
	if err := s.DB.Create(campaign).Error; err != nil {
		return nil, err
	}
	s.Logger.Info("campaign created", zap.Uint("campaign_id", campaign.ID), zap.String("name", campaign.Name))
	return campaign, nil
}

func (s *CampaignService) List() ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := s.DB.Order("created_at desc").Find(&campaigns).Error
	return campaigns, err
}

func (s *CampaignService) Get(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.DB.Preload("Activities").Preload("Activities.Contact").First(&campaign, id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) AddActivity(campaignID uint, req *dtos.CampaignActivityRequest) (*models.CampaignActivity, error) {
	var campaign models.Campaign
	if err := s.DB.First(&campaign, campaignID).Error; err != nil {
		return nil, err
	}

	occurredAt := time.Now()
	if req.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("parsing occurred_at: %w", err)
		}
		occurredAt = t
	}

	activity := &models.CampaignActivity{
		CampaignID:   campaign.ID,
		ContactID:    req.ContactID,
		ActivityType: req.ActivityType,
		OccurredAt:   occurredAt,
		Notes:        req.Notes,
	}
	if err := s.DB.Create(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *CampaignService) Delete(id uint) error {
	res := s.DB.Delete(&models.Campaign{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Summary loads a campaign's activities and aggregates them.
func (s *CampaignService) Summary(id uint) (*CampaignSummary, error) {
	campaign, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	summary := Aggregate(campaign.ID, campaign.TargetCount, campaign.Activities)
	return &summary, nil
}

// Aggregate computes the campaign summary from an activity log. Progress
// counts unique contacted contacts against the campaign target; activities
// without a contact count toward the totals and type buckets only.
func Aggregate(campaignID uint, target int, activities []models.CampaignActivity) CampaignSummary {
	byType := make(map[string]int)
	contacts := make(map[uint]bool)
	var last *time.Time

	for i := range activities {
		a := activities[i]
		byType[a.ActivityType]++
		if a.ContactID != nil {
			contacts[*a.ContactID] = true
		}
		if last == nil || a.OccurredAt.After(*last) {
			t := a.OccurredAt
			last = &t
		}
	}

	progress := 0
	if target > 0 {
		progress = len(contacts) * 100 / target
		if progress > 100 {
			progress = 100
		}
	}

	return CampaignSummary{
		CampaignID:      campaignID,
		TotalActivities: len(activities),
		ByType:          byType,
		UniqueContacts:  len(contacts),
		TargetCount:     target,
		ProgressPct:     progress,
		LastActivityAt:  last,
	}
}
