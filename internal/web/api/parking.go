package api

import (
	"strconv"

	"smartoffice/internal/db"
	"smartoffice/internal/models"
	"smartoffice/internal/web/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterParkingRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, dbConn *db.DB) {
	parking := r.Group("/api/parking")
	parking.Use(middleware.RequireAuth())
	{
		parking.GET("", func(c *gin.Context) {
			spots, err := dbConn.ListParkingSpots(c)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch parking spots"})
				return
			}
			if spots == nil {
				spots = []models.ParkingSpot{}
			}
			c.JSON(200, spots)
		})

		parking.POST("/:id/occupy", setSpotAvailability(dbConn, false))
		parking.POST("/:id/release", setSpotAvailability(dbConn, true))
	}
}

func setSpotAvailability(dbConn *db.DB, available bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid spot id"})
			return
		}
		if err := dbConn.UpdateParkingSpot(c, id, map[string]any{"is_available": available}); err != nil {
			c.JSON(404, gin.H{"error": "Parking spot not found"})
			return
		}
		c.JSON(200, models.ParkingSpot{ID: id, IsAvailable: available})
	}
}
