package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adirathodd/careerpilot/internal/models"
	"github.com/adirathodd/careerpilot/internal/services"
	"github.com/gin-gonic/gin"
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
	if err := db.AutoMigrate(&models.Company{}, &models.Job{}, &models.SalaryResearch{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func TestDeleteSalaryResearch(t *testing.T) {
	db := newTestDB(t)
	h := NewSalaryHandler(services.NewSalaryService(db, zap.NewNop()))

	r := gin.New()
	r.DELETE("/salary/:id", h.Delete)

	job := models.Job{Title: "Backend Engineer", Status: models.StatusApplied}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("creating job: %v", err)
	}
	row := models.SalaryResearch{JobID: job.ID, Role: "Backend Engineer", Low: 100000, Median: 120000, High: 140000}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("creating research: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", fmt.Sprintf("/salary/%d", row.ID), nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	var count int64
	db.Model(&models.SalaryResearch{}).Where("job_id = ?", job.ID).Count(&count)
	if count != 0 {
		t.Errorf("rows after delete = %d, want 0", count)
	}

	// The row is gone, so a repeat delete is a miss.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", fmt.Sprintf("/salary/%d", row.ID), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/salary/99999", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing id status = %d, want 404", w.Code)
	}
}
