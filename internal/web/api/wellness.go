package api

import (
	"smartoffice/internal/db"
	"smartoffice/internal/web/middleware"
	webModels "smartoffice/internal/web/models"

	"github.com/gin-gonic/gin"
)

func RegisterWellnessRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, dbConn *db.DB) {
	wellness := r.Group("/api/wellness")
	wellness.Use(middleware.RequireAuth())
	{
		wellness.POST("/checkin", func(c *gin.Context) {
			var req webModels.CheckinRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			if err := dbConn.InsertCheckin(c, c.GetString("username"), req.Mood); err != nil {
				c.JSON(500, gin.H{"error": "Failed to record check-in"})
				return
			}

			// Attach suggestions when the mood has a known resource list
			if res, err := dbConn.GetResourcesByMood(c, req.Mood); err == nil {
				c.JSON(201, gin.H{"status": "recorded", "resources": res.Resources})
				return
			}
			c.JSON(201, gin.H{"status": "recorded"})
		})

		wellness.GET("/resources/:mood", func(c *gin.Context) {
			res, err := dbConn.GetResourcesByMood(c, c.Param("mood"))
			if err != nil {
				c.JSON(404, gin.H{"error": "No resources for that mood"})
				return
			}
			c.JSON(200, res)
		})
	}
}
