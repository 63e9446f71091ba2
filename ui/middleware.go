package ui

import (
	"log"

	"terlab/ui/middleware"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	maxBytes := s.maxUploadMB << 20
	log.Printf("[Server] Request bodies limited to %d MB", s.maxUploadMB)
	s.router.Use(middleware.LimitBody(maxBytes))
}
