package services

import (
	"time"

	"github.com/adirathodd/careerpilot/internal/calendar"
	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CalendarService assembles calendar items from jobs, interviews and
// reminders and hands them to the calendar package.
type CalendarService struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Location *time.Location
}

func NewCalendarService(db *gorm.DB, logger *zap.Logger, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{DB: db, Logger: logger, Location: loc}
}

// MonthGrid builds the month view for year/month.
func (s *CalendarService) MonthGrid(year int, month time.Month, visibleCap int) (calendar.Grid, error) {
	items, err := s.loadItems()
	if err != nil {
		return calendar.Grid{}, err
	}
	return calendar.BuildGrid(year, month, items, s.Location, time.Now(), visibleCap), nil
}

// AgendaRange returns the day-grouped agenda between from and to inclusive.
func (s *CalendarService) AgendaRange(from, to time.Time) ([]calendar.DayGroup, error) {
	items, err := s.loadItems()
	if err != nil {
		return nil, err
	}

	fromKey := calendar.DateKey(from, s.Location)
	toKey := calendar.DateKey(to, s.Location)

	var filtered []calendar.Item
	for _, it := range items {
		if it.When.IsZero() {
			continue
		}
		key := calendar.DateKey(it.When, s.Location)
		if key >= fromKey && key <= toKey {
			filtered = append(filtered, it)
		}
	}

	return calendar.Agenda(filtered, s.Location, time.Now()), nil
}

// AllItems returns every calendar-worthy record, used by the ICS export.
func (s *CalendarService) AllItems() ([]calendar.Item, error) {
	return s.loadItems()
}

func (s *CalendarService) loadItems() ([]calendar.Item, error) {
	var jobs []models.Job
	if err := s.DB.Preload("Company").Find(&jobs).Error; err != nil {
		return nil, err
	}

	var interviews []models.Interview
	if err := s.DB.Preload("Job").Preload("Job.Company").Find(&interviews).Error; err != nil {
		return nil, err
	}

	var reminders []models.Reminder
	if err := s.DB.Preload("Contact").Find(&reminders).Error; err != nil {
		return nil, err
	}

	return CalendarItems(jobs, interviews, reminders), nil
}

// CalendarItems converts persisted records into calendar items. Jobs
// without a deadline are not calendar-worthy and are skipped.
func CalendarItems(jobs []models.Job, interviews []models.Interview, reminders []models.Reminder) []calendar.Item {
	items := make([]calendar.Item, 0, len(jobs)+len(interviews)+len(reminders))

	for _, job := range jobs {
		if job.ApplicationDeadline == nil {
			continue
		}
		items = append(items, calendar.JobDeadlineItem(
			job.ID, job.Title, job.Company.Name, *job.ApplicationDeadline, job.Status,
		))
	}

	for _, iv := range interviews {
		items = append(items, calendar.InterviewItem(
			iv.ID, iv.JobID, iv.Job.Title, iv.Job.Company.Name, iv.InterviewType, iv.ScheduledAt,
		))
	}

	for _, r := range reminders {
		contactName := ""
		if r.Contact != nil {
			contactName = r.Contact.Name
		}
		items = append(items, calendar.ReminderItem(
			r.ID, r.DueDate, contactName, r.Message, r.Recurrence, r.Completed,
		))
	}

	return items
}
