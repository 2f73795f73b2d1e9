package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/adirathodd/careerpilot/internal/calendar"
	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"github.com/adirathodd/careerpilot/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccessCodeHeader carries the supporter's access code on shared routes.
const AccessCodeHeader = "X-Access-Code"

type SupporterHandler struct {
	SupporterService *services.SupporterService
	CalendarService  *services.CalendarService
}

func NewSupporterHandler(s *services.SupporterService, cal *services.CalendarService) *SupporterHandler {
	return &SupporterHandler{SupporterService: s, CalendarService: cal}
}

func (h *SupporterHandler) Invite(c *gin.Context) {
	var req dtos.SupporterInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	supporter, err := h.SupporterService.Invite(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, supporter)
}

func (h *SupporterHandler) List(c *gin.Context) {
	supporters, err := h.SupporterService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, supporters)
}

func (h *SupporterHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.SupporterService.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "supporter not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// authenticate resolves the share token and access code on shared routes.
func (h *SupporterHandler) authenticate(c *gin.Context) *models.Supporter {
	token := c.Param("token")
	code := c.GetHeader(AccessCodeHeader)

	supporter, err := h.SupporterService.Authenticate(token, code)
	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return nil
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil
	}
	return supporter
}

// SharedOverview is the read-only snapshot behind a share link.
func (h *SupporterHandler) SharedOverview(c *gin.Context) {
	supporter := h.authenticate(c)
	if supporter == nil {
		return
	}

	overview, err := h.SupporterService.Overview(supporter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// SharedCalendar renders the month grid restricted to what the supporter
// may see: deadlines need the jobs scope, interviews the interviews scope.
// Reminders are never shared.
func (h *SupporterHandler) SharedCalendar(c *gin.Context) {
	supporter := h.authenticate(c)
	if supporter == nil {
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	items, err := h.CalendarService.AllItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var visible []calendar.Item
	for _, it := range items {
		switch it.Kind {
		case calendar.KindJobDeadline:
			if supporter.CanViewJobs {
				visible = append(visible, it)
			}
		case calendar.KindInterview:
			if supporter.CanViewInterviews {
				visible = append(visible, it)
			}
		case calendar.KindReminder:
			// never shared
		}
	}

	grid := calendar.BuildGrid(year, month, visible, h.CalendarService.Location, time.Now(), 0)
	c.JSON(http.StatusOK, grid)
}
