package api

import (
	"smartoffice/internal/db"
	"smartoffice/internal/web/middleware"
	webModels "smartoffice/internal/web/models"

	"github.com/gin-gonic/gin"
)

func RegisterClimateRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, dbConn *db.DB) {
	climate := r.Group("/api/climate")
	climate.Use(middleware.RequireAuth())
	{
		climate.GET("", func(c *gin.Context) {
			state, err := dbConn.ReadOfficeState(c)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch office state"})
				return
			}
			c.JSON(200, state)
		})

		climate.PUT("/temperature", func(c *gin.Context) {
			var req webModels.TemperatureRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			if err := dbConn.UpdateOfficeStateField(c, "temperature", *req.Value); err != nil {
				c.JSON(500, gin.H{"error": "Failed to update temperature"})
				return
			}
			c.JSON(200, gin.H{"temperature": *req.Value})
		})

		climate.PUT("/hvac", func(c *gin.Context) {
			var req webModels.HVACRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			if err := dbConn.UpdateOfficeStateField(c, "hvac_mode", req.Mode); err != nil {
				c.JSON(500, gin.H{"error": "Failed to update HVAC mode"})
				return
			}
			c.JSON(200, gin.H{"hvac_mode": req.Mode})
		})

		climate.PUT("/lights", func(c *gin.Context) {
			var req webModels.LightsRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			if err := dbConn.UpdateOfficeStateField(c, "lights_on", *req.On); err != nil {
				c.JSON(500, gin.H{"error": "Failed to update lights"})
				return
			}
			c.JSON(200, gin.H{"lights_on": *req.On})
		})
	}
}
