package api

import (
	"DietTracker/internal/models"
	"DietTracker/internal/summary"
	"DietTracker/internal/tracker"
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type goalRequest struct {
	Target *float64 `json:"target" binding:"required,gte=0"`
}

func (h *Handler) listGoals(c *gin.Context) {
	goals, err := h.tr.Goals()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *Handler) setGoal(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(summary.DateLayout, date); err != nil {
		badRequest(c, errors.New("date must be YYYY-MM-DD"))
		return
	}
	var body goalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.tr.SetGoal(date, *body.Target); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Goal{Date: date, Target: *body.Target})
}

type dailyResponse struct {
	models.DailySummary
	Progress int `json:"progress"`
}

func (h *Handler) dailySummary(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse(summary.DateLayout, date); err != nil {
			badRequest(c, errors.New("date must be YYYY-MM-DD"))
			return
		}
	}
	s, err := h.tr.DailySummary(date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailyResponse{DailySummary: s, Progress: s.GoalProgress()})
}

type weeklyResponse struct {
	End       string                `json:"end"`
	Days      int                   `json:"days"`
	Summaries []models.DailySummary `json:"summaries"`
	Macros    []models.MacroShare   `json:"macros"`
}

func (h *Handler) weeklySummary(c *gin.Context) {
	days := tracker.WeekDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > summary.MaxDays {
			badRequest(c, fmt.Errorf("days must be an integer from 1 to %d", summary.MaxDays))
			return
		}
		days = n
	}
	end := c.Query("end")
	if end == "" {
		end = h.tr.Today()
	}
	week, err := h.tr.WeeklySummary(end, days)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeklyResponse{
		End:       end,
		Days:      days,
		Summaries: week,
		Macros:    summary.MacroBreakdown(week),
	})
}

func (h *Handler) weeklyCSV(c *gin.Context) {
	var buf bytes.Buffer
	name, err := h.tr.ExportWeeklyCSV(&buf, c.Query("end"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
