package api

import (
	"github.com/gin-gonic/gin"

	"coarank/app"
	"coarank/internal/config"
	"coarank/internal/logging"
)

// Server exposes the ranking engine over HTTP
type Server struct {
	service *app.RankService
	cfg     config.ServerConfig
	logger  *logging.Logger
	engine  *gin.Engine
}

// NewServer creates the HTTP surface around a rank service
func NewServer(service *app.RankService, cfg config.ServerConfig, logger *logging.Logger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	s := &Server{
		service: service,
		cfg:     cfg,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	api := s.engine.Group("/api")
	{
		api.POST("/rank", s.handleRank)
		api.POST("/rank/report", s.handleRankReport)
	}
}

// Run starts the server on the configured port
func (s *Server) Run() error {
	s.logger.Info("ranking API listening on :%s", s.cfg.Port)
	return s.engine.Run(":" + s.cfg.Port)
}
