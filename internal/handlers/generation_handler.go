package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GenerationHandler starts async AI generations and serves their polling
// endpoint. The client polls GET /generations/:id until the state leaves
// "pending".
type GenerationHandler struct {
	AIService         *services.AIService
	GenerationService *services.GenerationService
	JobService        *services.JobService
	ContactService    *services.ContactService
}

func NewGenerationHandler(ai *services.AIService, gen *services.GenerationService, jobs *services.JobService, contacts *services.ContactService) *GenerationHandler {
	return &GenerationHandler{
		AIService:         ai,
		GenerationService: gen,
		JobService:        jobs,
		ContactService:    contacts,
	}
}

func (h *GenerationHandler) aiConfigured(c *gin.Context) bool {
	if h.AIService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI generation is not configured"})
		return false
	}
	return true
}

// StartMatchAnalysis kicks off a resume-vs-job analysis for a job.
func (h *GenerationHandler) StartMatchAnalysis(c *gin.Context) {
	if !h.aiConfigured(c) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dtos.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.GetJob(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	gen := h.GenerationService.Start(services.GenerationMatchAnalysis, job.ID, func(ctx context.Context) (string, error) {
		return h.AIService.MatchAnalysis(ctx, job, req.ResumeText)
	})
	c.JSON(http.StatusAccepted, gen)
}

// StartTechnicalPrep kicks off interview-prep generation for a job.
func (h *GenerationHandler) StartTechnicalPrep(c *gin.Context) {
	if !h.aiConfigured(c) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	job, err := h.JobService.GetJob(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	gen := h.GenerationService.Start(services.GenerationTechnicalPrep, job.ID, func(ctx context.Context) (string, error) {
		return h.AIService.TechnicalPrep(ctx, job)
	})
	c.JSON(http.StatusAccepted, gen)
}

// StartPlaybook kicks off an outreach playbook for a contact.
func (h *GenerationHandler) StartPlaybook(c *gin.Context) {
	if !h.aiConfigured(c) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	contact, err := h.ContactService.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	jobTitle := c.Query("job_title")

	gen := h.GenerationService.Start(services.GenerationPlaybook, contact.ID, func(ctx context.Context) (string, error) {
		return h.AIService.Playbook(ctx, contact, jobTitle)
	})
	c.JSON(http.StatusAccepted, gen)
}

// Poll is GET /generations/:id.
func (h *GenerationHandler) Poll(c *gin.Context) {
	gen, ok := h.GenerationService.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "generation not found"})
		return
	}
	c.JSON(http.StatusOK, gen)
}
