package api

import (
	"DietTracker/internal/models"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type foodRequest struct {
	Name    string   `json:"name" binding:"required"`
	Unit    string   `json:"unit"`
	Kcal    *float64 `json:"kcal" binding:"required,gte=0"`
	Protein float64  `json:"protein" binding:"gte=0"`
	Carbs   float64  `json:"carbs" binding:"gte=0"`
	Fat     float64  `json:"fat" binding:"gte=0"`
}

func (r foodRequest) toFood(id string) (models.Food, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return models.Food{}, errors.New("name must not be blank")
	}
	return models.Food{
		ID:      id,
		Name:    name,
		Unit:    strings.TrimSpace(r.Unit),
		Kcal:    *r.Kcal,
		Protein: r.Protein,
		Carbs:   r.Carbs,
		Fat:     r.Fat,
	}, nil
}

func (h *Handler) listFoods(c *gin.Context) {
	foods, err := h.tr.Foods()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (h *Handler) getFood(c *gin.Context) {
	food, ok, err := h.tr.Food(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *Handler) createFood(c *gin.Context) {
	h.saveFood(c, "", http.StatusCreated)
}

func (h *Handler) updateFood(c *gin.Context) {
	h.saveFood(c, c.Param("id"), http.StatusOK)
}

func (h *Handler) saveFood(c *gin.Context, id string, status int) {
	var body foodRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	food, err := body.toFood(id)
	if err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.tr.SaveFood(food)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(status, saved)
}

func (h *Handler) deleteFood(c *gin.Context) {
	food, ok, err := h.tr.DeleteFood(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": food, "undo": "/foods/undo"})
}

func (h *Handler) undoFoodDelete(c *gin.Context) {
	food, ok, err := h.tr.UndoFoodDelete(c.Query("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing to undo"})
		return
	}
	c.JSON(http.StatusOK, food)
}
