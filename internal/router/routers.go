package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/notely/notes-api/config"
	"github.com/notely/notes-api/internal/handler"
	"github.com/notely/notes-api/internal/middleware"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	noteHandler   *handler.NoteHandler
	tagHandler    *handler.TagHandler
	healthHandler *handler.HealthHandler

	authMw *middleware.AuthMiddleware
	cfg    *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	note *handler.NoteHandler,
	tag *handler.TagHandler,
	health *handler.HealthHandler,
	authMw *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		noteHandler:   note,
		tagHandler:    tag,
		healthHandler: health,
		authMw:        authMw,
		cfg:           cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/healthchecker", r.healthHandler.Check)

		r.authRoutes(api)
		r.userRoutes(api)
		r.noteRoutes(api)
		r.tagRoutes(api)
	}

	return router
}

func (r *Router) listRateLimit() gin.HandlerFunc {
	return middleware.RateLimit(
		r.cfg.RateLimit.Request,
		time.Duration(r.cfg.RateLimit.Duration)*time.Second,
	)
}
