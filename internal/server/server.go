package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"AssetSentinel/internal/marketdata"
	"AssetSentinel/internal/portfolio"
	"AssetSentinel/internal/recorder"
	"AssetSentinel/internal/report"
	"AssetSentinel/internal/risk"
)

// Server wires the dashboard API together. All state lives in the injected
// dependencies; handlers themselves are stateless.
type Server struct {
	router    *gin.Engine
	store     *portfolio.Store
	market    *marketdata.Manager
	rec       recorder.Recorder
	gen       *report.Generator
	assume    risk.Assumptions
	orgPrefix string
}

// New builds the API server with all dependencies injected.
func New(store *portfolio.Store, market *marketdata.Manager, rec recorder.Recorder,
	gen *report.Generator, assume risk.Assumptions, orgPrefix string) *Server {

	s := &Server{
		store:     store,
		market:    market,
		rec:       rec,
		gen:       gen,
		assume:    assume,
		orgPrefix: orgPrefix,
	}

	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())
	s.router = router
	s.registerRoutes()
	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api")
	{
		api.GET("/portfolio", s.getPortfolio)
		api.PUT("/portfolio", s.putPortfolio)
		api.GET("/presets", s.getPresets)
		api.GET("/market", s.getMarket)
		api.POST("/market/refresh", s.refreshMarket)
		api.POST("/stress", s.runStress)
		api.POST("/scenarios", s.compareScenarios)
		api.GET("/history", s.getHistory)
		api.POST("/report", s.exportReport)
	}
}

// requestLogger logs one line per request through zerolog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
