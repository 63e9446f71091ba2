package ui

import (
	"context"
	"log"
	"net/http"
	"time"

	"terlab/app"
	"terlab/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP API of the engagement analytics service
type Server struct {
	router      *gin.Engine
	sessions    *app.SessionService
	posts       *app.PostService
	analysis    *app.AnalysisService
	maxUploadMB int64
}

// NewServer wires handlers onto a gin engine
func NewServer(sessions *app.SessionService, posts *app.PostService, analysis *app.AnalysisService, maxUploadMB int64) *Server {
	s := &Server{
		router:      gin.Default(),
		sessions:    sessions,
		posts:       posts,
		analysis:    analysis,
		maxUploadMB: maxUploadMB,
	}
	s.router.MaxMultipartMemory = maxUploadMB << 20

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/metric", s.handleMetric)

	sessions := api.Group("/sessions")
	sessions.GET("", s.handleListSessions)
	sessions.POST("", s.handleCreateSession)
	sessions.GET("/active", s.handleActiveSession)

	scoped := sessions.Group("/:id", middleware.SessionParam())
	scoped.GET("", s.handleGetSession)
	scoped.PUT("", s.handleUpdateSession)
	scoped.DELETE("", s.handleDeleteSession)
	scoped.POST("/activate", s.handleActivateSession)
	scoped.POST("/import", s.handleImport)
	scoped.GET("/posts", s.handleListPosts)
	scoped.GET("/posts/archived", s.handleListArchivedPosts)
	scoped.GET("/stats", s.handleStats)
	scoped.GET("/stats/distribution", s.handleDistribution)
	scoped.GET("/stats/timeline", s.handleTimeline)
	scoped.GET("/stats/advanced", s.handleAdvancedStats)
	scoped.GET("/stats/interpretation", s.handleInterpretation)
	scoped.GET("/stats/report.xlsx", s.handleReportWorkbook)

	api.GET("/posts/:id", s.handleGetPost)
	api.PATCH("/posts/:id", s.handleUpdatePost)
	api.DELETE("/posts/:id", s.handleDeletePost)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[Server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
