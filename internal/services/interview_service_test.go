package services

import (
	"testing"
	"time"

	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.Job{}, &models.JobEvent{}, &models.Interview{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func TestCreateInterviewAdvancesPipeline(t *testing.T) {
	db := newTestDB(t)
	s := NewInterviewService(db, zap.NewNop())

	job := models.Job{Title: "Backend Engineer", Status: models.StatusApplied}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("creating job: %v", err)
	}

	iv, err := s.Create(&dtos.InterviewRequest{
		JobID:         job.ID,
		ScheduledAt:   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		InterviewType: "technical",
	})
	if err != nil {
		t.Fatalf("creating interview: %v", err)
	}
	if iv.ID == 0 {
		t.Fatal("interview was not persisted")
	}

	var got models.Job
	if err := db.First(&got, job.ID).Error; err != nil {
		t.Fatalf("reloading job: %v", err)
	}
	if got.Status != models.StatusInterviewing {
		t.Errorf("job status = %s, want %s", got.Status, models.StatusInterviewing)
	}

	var events []models.JobEvent
	if err := db.Where("job_id = ?", job.ID).Find(&events).Error; err != nil {
		t.Fatalf("loading events: %v", err)
	}
	if len(events) != 1 || events[0].EventType != "INTERVIEW_SCHEDULED" {
		t.Errorf("events = %+v, want one INTERVIEW_SCHEDULED", events)
	}
}

func TestCreateInterviewLeavesAdvancedJobAlone(t *testing.T) {
	db := newTestDB(t)
	s := NewInterviewService(db, zap.NewNop())

	job := models.Job{Title: "Backend Engineer", Status: models.StatusOffer}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("creating job: %v", err)
	}

	if _, err := s.Create(&dtos.InterviewRequest{
		JobID:         job.ID,
		ScheduledAt:   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		InterviewType: "final",
	}); err != nil {
		t.Fatalf("creating interview: %v", err)
	}

	var got models.Job
	if err := db.First(&got, job.ID).Error; err != nil {
		t.Fatalf("reloading job: %v", err)
	}
	if got.Status != models.StatusOffer {
		t.Errorf("job status = %s, want %s", got.Status, models.StatusOffer)
	}

	var count int64
	db.Model(&models.JobEvent{}).Where("job_id = ?", job.ID).Count(&count)
	if count != 0 {
		t.Errorf("events = %d, want none for an already-advanced job", count)
	}
}
