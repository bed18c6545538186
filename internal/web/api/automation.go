package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"smartoffice/internal/automation"
	"smartoffice/internal/db"
	"smartoffice/internal/metrics"
	"smartoffice/internal/models"
	"smartoffice/internal/web/middleware"
	webModels "smartoffice/internal/web/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Engine is the part of the automation engine the web layer invokes
type Engine interface {
	ProcessEvent(ctx context.Context, payload map[string]any) (*automation.EvaluationResult, error)
}

// RuleCacheInvalidator drops the cached active-rule set after rule CRUD
type RuleCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

func RegisterAutomationRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, dbConn *db.DB, engine Engine, cache RuleCacheInvalidator) {
	group := r.Group("/api/automation")
	group.Use(middleware.RequireAuth())

	group.POST("/trigger", triggerHandler(engine))

	rules := group.Group("/rules", middleware.RequireAdmin())
	{
		rules.GET("", func(c *gin.Context) {
			list, err := dbConn.ListRules(c)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch rules"})
				return
			}
			if list == nil {
				list = []models.Rule{}
			}
			c.JSON(200, list)
		})

		rules.POST("", func(c *gin.Context) {
			var req webModels.AddRuleRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}
			created, err := dbConn.InsertRule(c, models.Rule{
				Trigger:     req.Trigger,
				Action:      req.Action,
				Active:      req.Active,
				Description: req.Description,
			})
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to create rule"})
				return
			}
			invalidateRuleCache(c, cache)
			c.JSON(201, created)
		})

		rules.PATCH("/:id", func(c *gin.Context) {
			id, err := strconv.Atoi(c.Param("id"))
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid rule id"})
				return
			}
			var req webModels.UpdateRuleRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Invalid request"})
				return
			}

			existing, err := dbConn.GetRuleByID(c, id)
			if err != nil {
				c.JSON(404, gin.H{"error": "Rule not found"})
				return
			}
			if req.Trigger != nil {
				existing.Trigger = *req.Trigger
			}
			if req.Action != nil {
				existing.Action = *req.Action
			}
			if req.Active != nil {
				existing.Active = *req.Active
			}
			if req.Description != nil {
				existing.Description = *req.Description
			}

			if err := dbConn.UpdateRule(c, *existing); err != nil {
				c.JSON(500, gin.H{"error": "Failed to update rule"})
				return
			}
			invalidateRuleCache(c, cache)
			c.JSON(200, existing)
		})

		rules.DELETE("/:id", func(c *gin.Context) {
			id, err := strconv.Atoi(c.Param("id"))
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid rule id"})
				return
			}
			if err := dbConn.DeleteRule(c, id); err != nil {
				c.JSON(404, gin.H{"error": "Rule not found"})
				return
			}
			invalidateRuleCache(c, cache)
			c.JSON(200, gin.H{"status": "Rule deleted successfully"})
		})
	}
}

// triggerHandler feeds an externally submitted event into the engine
// and returns the evaluation summary.
func triggerHandler(engine Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		result, err := engine.ProcessEvent(c, payload)
		if err != nil {
			switch {
			case errors.Is(err, automation.ErrInvalidEvent):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, automation.ErrStorageUnavailable):
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Evaluation failed, storage unavailable"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Evaluation failed"})
			}
			return
		}

		for range result.AppliedEffects {
			metrics.CountRuleOutcome("applied")
		}
		for range result.Skipped {
			metrics.CountRuleOutcome("skipped")
		}
		c.JSON(http.StatusOK, result)
	}
}

func invalidateRuleCache(c *gin.Context, cache RuleCacheInvalidator) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(c); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate rule cache")
	}
}
