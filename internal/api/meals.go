package api

import (
	"DietTracker/internal/models"
	"DietTracker/internal/tracker"
	"net/http"

	"github.com/gin-gonic/gin"
)

type mealRequest struct {
	Date   string                `json:"date" binding:"required,datetime=2006-01-02"`
	Time   string                `json:"time" binding:"required,datetime=15:04"`
	Items  []tracker.ItemRequest `json:"items" binding:"required,min=1"`
	Totals *models.Totals        `json:"totals"`
}

func (h *Handler) listMeals(c *gin.Context) {
	var (
		meals []models.Meal
		err   error
	)
	if date := c.Query("date"); date != "" {
		meals, err = h.tr.MealsByDate(date)
	} else {
		meals, err = h.tr.Meals()
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	c.JSON(http.StatusOK, meals)
}

func (h *Handler) getMeal(c *gin.Context) {
	meal, ok, err := h.tr.Meal(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *Handler) createMeal(c *gin.Context) {
	h.saveMeal(c, "", http.StatusCreated)
}

func (h *Handler) updateMeal(c *gin.Context) {
	h.saveMeal(c, c.Param("id"), http.StatusOK)
}

func (h *Handler) saveMeal(c *gin.Context, id string, status int) {
	var body mealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.tr.BuildItems(body.Items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	meal, err := h.tr.SaveMeal(models.MealInput{
		ID:     id,
		Date:   body.Date,
		Time:   body.Time,
		Items:  items,
		Totals: body.Totals,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(status, meal)
}

func (h *Handler) deleteMeal(c *gin.Context) {
	meal, ok, err := h.tr.DeleteMeal(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": meal, "undo": "/meals/undo"})
}

func (h *Handler) undoMealDelete(c *gin.Context) {
	meal, ok, err := h.tr.UndoMealDelete(c.Query("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing to undo"})
		return
	}
	c.JSON(http.StatusOK, meal)
}
