package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidRecurrence = errors.New("invalid recurrence")

var validRecurrences = map[string]bool{
	models.RecurrenceNone:    true,
	models.RecurrenceDaily:   true,
	models.RecurrenceWeekly:  true,
	models.RecurrenceMonthly: true,
}

type ReminderService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewReminderService(db *gorm.DB, logger *zap.Logger) *ReminderService {
	return &ReminderService{DB: db, Logger: logger}
}

func (s *ReminderService) Create(req *dtos.ReminderRequest) (*models.Reminder, error) {
	due, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}

	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = models.RecurrenceNone
	}
	if !validRecurrences[recurrence] {
		return nil, ErrInvalidRecurrence
	}

	reminder := &models.Reminder{
		ContactID:  req.ContactID,
		JobID:      req.JobID,
		DueDate:    due,
		Message:    req.Message,
		Recurrence: recurrence,
	}
	if err := s.DB.Create(reminder).Error; err != nil {
		return nil, err
	}

	s.Logger.Info("reminder created",
		zap.Uint("reminder_id", reminder.ID),
		zap.Time("due", due),
		zap.String("recurrence", recurrence),
	)
	return reminder, nil
}

func (s *ReminderService) List(includeCompleted bool) ([]models.Reminder, error) {
	var reminders []models.Reminder
	q := s.DB.Preload("Contact").Order("due_date asc")
	if !includeCompleted {
		q = q.Where("completed = ?", false)
	}
	err := q.Find(&reminders).Error
	return reminders, err
}

// Complete marks a reminder done. A recurring reminder is not closed out:
// its due date advances to the next occurrence instead.
func (s *ReminderService) Complete(id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.DB.First(&reminder, id).Error; err != nil {
		return nil, err
	}

	if reminder.Recurrence == models.RecurrenceNone || reminder.Recurrence == "" {
		if err := s.DB.Model(&reminder).Update("completed", true).Error; err != nil {
			return nil, err
		}
		reminder.Completed = true
		return &reminder, nil
	}

	next := NextOccurrence(reminder.DueDate, reminder.Recurrence)
	if err := s.DB.Model(&reminder).Update("due_date", next).Error; err != nil {
		return nil, err
	}
	reminder.DueDate = next

	s.Logger.Info("recurring reminder advanced",
		zap.Uint("reminder_id", reminder.ID),
		zap.Time("next_due", next),
	)
	return &reminder, nil
}

func (s *ReminderService) Delete(id uint) error {
	res := s.DB.Delete(&models.Reminder{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NextOccurrence advances a due date by one recurrence period. Unknown
// recurrences return the date unchanged.
func NextOccurrence(due time.Time, recurrence string) time.Time {
	switch recurrence {
	case models.RecurrenceDaily:
		return due.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		return due.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		return due.AddDate(0, 1, 0)
	}
	return due
}
