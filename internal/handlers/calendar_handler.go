package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/adirathodd/careerpilot/internal/services"
	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	CalendarService *services.CalendarService
}

func NewCalendarHandler(s *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{CalendarService: s}
}

// parseYearMonth reads year/month query params, defaulting to the current
// month.
func parseYearMonth(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return 0, 0, false
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return 0, 0, false
		}
		month = time.Month(m)
	}
	return year, month, true
}

// MonthGrid is GET /calendar: the 6x7 month grid with bucketed items,
// urgency tones and per-day overflow counts.
func (h *CalendarHandler) MonthGrid(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	visibleCap := 0
	if v := c.Query("cap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cap"})
			return
		}
		visibleCap = n
	}

	grid, err := h.CalendarService.MonthGrid(year, month, visibleCap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, grid)
}

// agendaWindow reads the from/to query dates in the calendar's location so
// the requested days line up with the date keys the service derives.
// Defaults to the next 30 days.
func agendaWindow(c *gin.Context, loc *time.Location) (time.Time, time.Time, bool) {
	now := time.Now().In(loc)
	from := now
	to := now.AddDate(0, 0, 30)

	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, want YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, want YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		to = t
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to is before from"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// Agenda is GET /calendar/agenda?from=&to=: a chronological day-grouped
// list for the given date range (defaults to the next 30 days).
func (h *CalendarHandler) Agenda(c *gin.Context) {
	from, to, ok := agendaWindow(c, h.CalendarService.Location)
	if !ok {
		return
	}

	groups, err := h.CalendarService.AgendaRange(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, groups)
}

// ExportICS is GET /calendar/export.ics: the whole calendar as an
// iCalendar feed, with optional per-event alarms.
func (h *CalendarHandler) ExportICS(c *gin.Context) {
	items, err := h.CalendarService.AllItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	opts := ICSOptions{
		RemindTime: c.Query("remind_time"),
	}
	if v := c.Query("remind_days_before"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid remind_days_before"})
			return
		}
		opts.RemindDaysBefore = n
		opts.Reminders = opts.RemindTime != ""
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=careerpilot_%s.ics", time.Now().Format("2006-01-02")))
	WriteICS(c.Writer, items, h.CalendarService.Location, opts)
}
