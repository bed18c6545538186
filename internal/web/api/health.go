package api

import (
	"smartoffice/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterHealthRoutes(r *gin.Engine, dbConn *db.DB, redisClient *redis.Client) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "LIVE"})
	})

	r.GET("/health/ready", func(c *gin.Context) {
		if err := dbConn.Ping(c); err != nil {
			c.JSON(503, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		if redisClient != nil {
			if err := redisClient.Ping(c).Err(); err != nil {
				c.JSON(503, gin.H{"status": "NOT_READY", "error": err.Error()})
				return
			}
		}
		c.JSON(200, gin.H{"status": "READY", "database": "connected"})
	})
}
