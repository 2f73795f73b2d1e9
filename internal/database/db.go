package database

import (
	"fmt"

	"github.com/adirathodd/careerpilot/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Job{},
		&models.JobEvent{},
		&models.Interview{},
		&models.Contact{},
		&models.Reminder{},
		&models.Campaign{},
		&models.CampaignActivity{},
		&models.SalaryResearch{},
		&models.Supporter{},
		&models.ProcessedEmail{},
	); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
