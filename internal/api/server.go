package api

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/quietghost-dev/contact-api/internal/api/handlers"
	"github.com/quietghost-dev/contact-api/internal/api/middleware"
	"github.com/quietghost-dev/contact-api/internal/config"
	"github.com/quietghost-dev/contact-api/internal/contact"
	"github.com/quietghost-dev/contact-api/internal/logging"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
}

// NewServer creates a new server instance around the submission service.
func NewServer(cfg *config.Config, service *contact.Service, logger *logging.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	// Always add recovery middleware for panic handling
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.Environment))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger(logger))

	s := &Server{
		router: router,
		cfg:    cfg,
	}
	s.registerRoutes(service)

	return s
}

func (s *Server) registerRoutes(service *contact.Service) {
	contactHandler := handlers.NewContactHandler(service)
	turnstileHandler := handlers.NewTurnstileHandler(s.cfg.TurnstileSiteKey)
	healthHandler := handlers.NewHealthHandler()

	// Health check endpoint - no auth required
	s.router.GET("/health", healthHandler.Check)

	api := s.router.Group("/api")
	{
		api.POST("/contact", contactHandler.Submit)
		api.GET("/turnstile-config", turnstileHandler.Config)
	}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	return s.router.Run(":" + s.cfg.Port)
}
