// Package statserver exposes a completed build's Statistics over HTTP,
// using gin-gonic/gin for request routing and JSON responses.
package statserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devancy/wikidex/internal/indexbuild"
)

// Report extends indexbuild.Statistics with the fields the core package
// doesn't own: the title-table file count (titletable is an independent
// sink) and the build's identifying run ID.
type Report struct {
	RunID          string    `json:"run_id"`
	BuiltAt        time.Time `json:"built_at"`
	TitleFileCount int       `json:"title_file_count"`
	indexbuild.Statistics
}

// Server serves a single build's Report as JSON.
type Server struct {
	engine *gin.Engine
	report Report
}

// New constructs a Server for report. Call Run to start listening.
func New(report Report) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, report: report}
	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/stats", s.handleStats)
	return s
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.report)
}

// Run starts the HTTP server on addr. It blocks until the server stops or
// errors.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler returns the underlying http.Handler, useful for tests that drive
// requests with httptest instead of binding a real port.
func (s *Server) Handler() http.Handler {
	return s.engine
}
