package api

import (
	"smartoffice/internal/models"
	"smartoffice/internal/web/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterUserRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, dbConn *pgxpool.Pool) {
	users := r.Group("/api/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/me", func(c *gin.Context) {
			var user models.User
			err := dbConn.QueryRow(c, "SELECT id, username, role FROM users WHERE id=$1", c.GetInt("user_id")).
				Scan(&user.ID, &user.Username, &user.Role)
			if err != nil {
				c.JSON(404, gin.H{"error": "User not found"})
				return
			}
			c.JSON(200, user)
		})
	}
}
