package ui

import (
	"net/http"

	"terlab/app"
	"terlab/domain/metric"
	"terlab/internal/errors"
	"terlab/ui/middleware"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleMetric computes the engagement metric for posted counts
func (s *Server) handleMetric(c *gin.Context) {
	var counts metric.Counts
	if err := c.ShouldBindJSON(&counts); err != nil {
		respondError(c, errors.InvalidInput("invalid counts: "+err.Error()))
		return
	}
	if counts.Likes < 0 || counts.Bookmarks < 0 || counts.Replies < 0 ||
		counts.Retweets < 0 || counts.Quotes < 0 || counts.Views < 0 {
		respondError(c, errors.ValidationError("counts must not be negative"))
		return
	}
	c.JSON(http.StatusOK, metric.Compute(counts))
}

type createSessionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	sess, err := s.sessions.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (s *Server) handleListSessions(c *gin.Context) {
	sessions, err := s.sessions.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleUpdateSession(c *gin.Context) {
	var upd app.SessionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, errors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	sess, err := s.sessions.Update(c.Request.Context(), middleware.SessionID(c), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Request.Context(), middleware.SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleActivateSession(c *gin.Context) {
	sess, err := s.sessions.Activate(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) handleActiveSession(c *gin.Context) {
	sess, err := s.sessions.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// handleImport replaces a session's posts with an uploaded xlsx or csv file
func (s *Server) handleImport(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		if statusForError(err) == http.StatusRequestEntityTooLarge {
			respondError(c, err)
			return
		}
		respondError(c, errors.InvalidInput("multipart field 'file' is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, "failed to open upload"))
		return
	}
	defer file.Close()

	result, err := s.sessions.Import(c.Request.Context(), middleware.SessionID(c), file, header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"imported": len(result.Posts),
		"rows":     result.Rows,
		"skipped":  result.Skipped,
	})
}
