package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coinlab/app"
	"coinlab/internal"
	"coinlab/internal/errors"
)

// Server exposes the simulator as a JSON API
type Server struct {
	engine  *gin.Engine
	service *app.FlipService
	logger  *internal.Logger
}

// NewServer creates the API server
func NewServer(service *app.FlipService, ginMode string, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	s := &Server{
		engine:  gin.New(),
		service: service,
		logger:  logger,
	}

	s.engine.Use(gin.Recovery())
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/simulations", s.handleSimulate)
		v1.GET("/simulations/:session", s.handleGetSimulation)
		v1.DELETE("/simulations/:session", s.handleDeleteSimulation)
		v1.POST("/tests", s.handleTest)
	}
}

// Handler exposes the engine for serving and tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API until the context is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("coin lab API listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type simulateRequest struct {
	SessionID   string  `json:"session_id"`
	Count       int     `json:"count" binding:"required"`
	Probability float64 `json:"probability"`
}

func (s *Server) handleSimulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	session, err := parseSession(req.SessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.service.Flip(c.Request.Context(), session, req.Count, req.Probability)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.String(),
		"result":     result,
	})
}

func (s *Server) handleGetSimulation(c *gin.Context) {
	session, err := uuid.Parse(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session must be a UUID"})
		return
	}

	snapshot, err := s.service.Last(c.Request.Context(), session)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no simulation stored for session"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleDeleteSimulation(c *gin.Context) {
	session, err := uuid.Parse(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session must be a UUID"})
		return
	}

	if err := s.service.Clear(c.Request.Context(), session); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type testRequest struct {
	Heads int `json:"heads"`
	Total int `json:"total" binding:"required"`
}

func (s *Server) handleTest(c *gin.Context) {
	var req testRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.service.Test(req.Heads, req.Total)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseSession(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.InvalidParameter("session_id must be a UUID")
	}
	return id, nil
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidParameter:
		status = http.StatusBadRequest
	case errors.CodeUndefinedTest:
		status = http.StatusConflict
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("api: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
