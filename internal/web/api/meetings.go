package api

import (
	"strconv"
	"time"

	"smartoffice/internal/db"
	"smartoffice/internal/models"
	"smartoffice/internal/web/middleware"
	webModels "smartoffice/internal/web/models"

	"github.com/gin-gonic/gin"
)

func RegisterMeetingRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, dbConn *db.DB) {
	api := r.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/rooms", func(c *gin.Context) {
			rooms, err := dbConn.ListMeetingRooms(c)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch rooms"})
				return
			}
			if rooms == nil {
				rooms = []models.MeetingRoom{}
			}
			c.JSON(200, rooms)
		})

		api.GET("/bookings", func(c *gin.Context) {
			bookings, err := dbConn.ListBookings(c)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
				return
			}
			if bookings == nil {
				bookings = []models.Booking{}
			}
			c.JSON(200, bookings)
		})

		api.POST("/bookings", func(c *gin.Context) {
			var req webModels.BookingRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}

			start, err := time.Parse(time.RFC3339, req.StartTime)
			if err != nil {
				c.JSON(400, gin.H{"error": "start_time must be RFC 3339"})
				return
			}
			end, err := time.Parse(time.RFC3339, req.EndTime)
			if err != nil {
				c.JSON(400, gin.H{"error": "end_time must be RFC 3339"})
				return
			}
			if !end.After(start) {
				c.JSON(400, gin.H{"error": "end_time must be after start_time"})
				return
			}

			booking, err := dbConn.InsertBooking(c, models.Booking{
				RoomID:    req.RoomID,
				Username:  c.GetString("username"),
				StartTime: start,
				EndTime:   end,
			})
			if err != nil {
				c.JSON(409, gin.H{"error": err.Error()})
				return
			}
			c.JSON(201, booking)
		})

		api.DELETE("/bookings/:id", func(c *gin.Context) {
			id, err := strconv.Atoi(c.Param("id"))
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid booking id"})
				return
			}
			if err := dbConn.DeleteBooking(c, id, c.GetString("username")); err != nil {
				c.JSON(404, gin.H{"error": "Booking not found"})
				return
			}
			c.JSON(200, gin.H{"status": "Booking cancelled"})
		})
	}
}
