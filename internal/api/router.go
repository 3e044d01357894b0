package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/config"
)

const maxBodyBytes = 1 << 20

// NewRouter builds the gin engine with every route registered.
func NewRouter(mode string, h *Handler, logger *zap.Logger) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(logger))
	r.Use(func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		slots := v1.Group("/slots")
		{
			slots.GET("", h.ListSlots)
			slots.POST("", h.CreateSlot)
			slots.PUT("/:id", h.UpdateSlot)
			slots.DELETE("/:id", h.DeleteSlot)
			slots.POST("/:id/move", h.MoveSlot)
		}

		v1.GET("/today", h.Today)
		v1.GET("/grid", h.Grid)
		v1.GET("/conflicts", h.Conflicts)
		v1.GET("/free", h.FreeCells)
		v1.GET("/stats", h.Stats)
		v1.POST("/generate", h.Generate)

		v1.GET("/references", h.References)
		v1.GET("/courses", h.ListCourses)
		v1.GET("/teachers", h.ListTeachers)
		v1.GET("/classrooms", h.ListClassrooms)
		v1.GET("/students", h.ListStudents)

		v1.GET("/export.xlsx", h.ExportXLSX)
		v1.GET("/export.ics", h.ExportICS)
	}

	return r
}

// Server runs the HTTP API.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewServer creates a Server for svc.
func NewServer(cfg config.ServerConfig, svc Timetable, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(cfg.Mode, NewHandler(svc), logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
