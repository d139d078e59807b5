package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shaysadin/wedding-seating-api/internal/assets"
	"github.com/shaysadin/wedding-seating-api/internal/config"
	"github.com/shaysadin/wedding-seating-api/internal/handlers"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
	"github.com/shaysadin/wedding-seating-api/internal/middleware"
	"github.com/shaysadin/wedding-seating-api/internal/services"
	"github.com/shaysadin/wedding-seating-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	repos      postgres.RepositoryContainer
	assetStore *assets.Store
}

// New creates a new server instance. assetStore may be nil, in which case the
// asset endpoints are not registered.
func New(cfg *config.Config, repos postgres.RepositoryContainer, assetStore *assets.Store) *Server {
	return &Server{
		config:     cfg,
		repos:      repos,
		assetStore: assetStore,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(s.config.Server.GinMode)

	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	// Services
	eventService := services.NewEventService(s.repos.Events(), s.repos.Users())
	guestService := services.NewGuestService(s.repos.Guests(), s.repos.Events())
	userService := services.NewUserService(s.repos.Users())
	seatingService := services.NewSeatingService(s.repos.Guests(), s.repos.Tables())

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, s.config.Auth.JWTSecret, s.config.Auth.TokenTTL)
	eventHandler := handlers.NewEventHandler(eventService)
	guestHandler := handlers.NewGuestHandler(guestService)
	seatingHandler := handlers.NewSeatingHandler(seatingService, eventService, guestService)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := s.repos.Health(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"message": "Wedding Seating API is running",
			"status":  status,
		})
	})

	s.setupAPIRoutes(router, eventService, authHandler, eventHandler, guestHandler, seatingHandler)

	return router
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	eventLookup middleware.EventLookup,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	guestHandler *handlers.GuestHandler,
	seatingHandler *handlers.SeatingHandler,
) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	// RSVP responses come in from invitation links without a session
	api.PUT("/guests/:guest_id/rsvp", guestHandler.UpdateRSVP)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(s.config.Auth.JWTSecret))
	{
		events := protected.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.POST("", eventHandler.CreateEvent)
		}

		// Event-scoped routes require the caller to own the event
		owned := events.Group("/:event_id", middleware.RequireEventOwner(eventLookup))
		{
			owned.GET("", eventHandler.GetEvent)
			owned.PATCH("/stage", eventHandler.UpdateEventStage)

			owned.GET("/guests", guestHandler.GetGuests)
			owned.POST("/guests", guestHandler.CreateGuest)

			owned.POST("/seating/auto-arrange", seatingHandler.AutoArrange)
			owned.POST("/seating/auto-arrange-configs", seatingHandler.AutoArrangeConfigs)
			owned.GET("/tables", seatingHandler.GetTables)
			owned.GET("/tables/export", seatingHandler.ExportSeatingChart)

			if s.assetStore != nil {
				assetHandler := handlers.NewAssetHandler(s.assetStore)
				owned.POST("/assets", assetHandler.Upload)
				owned.GET("/assets/presign", assetHandler.Presign)
			}
		}

		tables := protected.Group("/tables")
		{
			tables.POST("/:table_id/seats/regenerate", seatingHandler.RegenerateSeats)
			tables.POST("/:table_id/assignments", seatingHandler.AssignGuest)
		}
	}
}
