package web

import (
	"smartoffice/auth"
	"smartoffice/internal/db"
	"smartoffice/internal/metrics"
	"smartoffice/internal/web/api"
	"smartoffice/internal/web/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type WebServer struct {
	router *gin.Engine
}

func NewWebServer(dbConn *db.DB, redisClient *redis.Client, JWTSecret string, engine api.Engine, ruleCache api.RuleCacheInvalidator) *WebServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	authModule := auth.NewAuthModule(dbConn.Pool(), redisClient, JWTSecret)
	middlewareManager := middleware.NewMiddlewareManager(dbConn.Pool(), redisClient, authModule)
	chatHub := api.NewChatHub()

	router.GET("/metrics", metrics.Handler())
	api.RegisterHealthRoutes(router, dbConn, redisClient)
	api.RegisterAuthRoutes(router, authModule, middlewareManager)
	api.RegisterAutomationRoutes(router, middlewareManager, dbConn, engine, ruleCache)
	api.RegisterClimateRoutes(router, middlewareManager, dbConn)
	api.RegisterParkingRoutes(router, middlewareManager, dbConn)
	api.RegisterMeetingRoutes(router, middlewareManager, dbConn)
	api.RegisterWellnessRoutes(router, middlewareManager, dbConn)
	api.RegisterChatRoutes(router, middlewareManager, dbConn, chatHub)
	api.RegisterUserRoutes(router, middlewareManager, dbConn.Pool())

	return &WebServer{router: router}
}

func (ws *WebServer) Start(addr string) {
	if err := ws.router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("web server stopped")
	}
}
