package api

import (
	"DietTracker/internal/tracker"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler — REST-интерфейс трекера для браузерного клиента
type Handler struct {
	tr  *tracker.Tracker
	log *zap.Logger
}

func NewRouter(tr *tracker.Tracker, health healthcheck.Handler, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// access и error лог в zap, время в RFC3339 UTC
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	// паники пишутся в лог со стеком
	router.Use(ginzap.RecoveryWithZap(log, true))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if health != nil {
		router.GET("/live", gin.WrapF(health.LiveEndpoint))
		router.GET("/ready", gin.WrapF(health.ReadyEndpoint))
	}

	h := &Handler{tr: tr, log: log}

	foods := router.Group("/foods")
	{
		foods.GET("", h.listFoods)
		foods.GET("/:id", h.getFood)
		foods.POST("", h.createFood)
		foods.PUT("/:id", h.updateFood)
		foods.DELETE("/:id", h.deleteFood)
		foods.POST("/undo", h.undoFoodDelete)
	}

	meals := router.Group("/meals")
	{
		meals.GET("", h.listMeals)
		meals.GET("/:id", h.getMeal)
		meals.POST("", h.createMeal)
		meals.PUT("/:id", h.updateMeal)
		meals.DELETE("/:id", h.deleteMeal)
		meals.POST("/undo", h.undoMealDelete)
	}

	router.GET("/goals", h.listGoals)
	router.PUT("/goals/:date", h.setGoal)

	summary := router.Group("/summary")
	{
		summary.GET("/daily", h.dailySummary)
		summary.GET("/weekly", h.weeklySummary)
		summary.GET("/weekly.csv", h.weeklyCSV)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	return router
}
