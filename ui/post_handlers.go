package ui

import (
	"context"
	"net/http"

	"terlab/app"
	"terlab/domain/core"
	"terlab/domain/post"
	"terlab/internal/errors"
	"terlab/ui/middleware"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListPosts(c *gin.Context) {
	s.listPosts(c, s.posts.ListBySession)
}

func (s *Server) handleListArchivedPosts(c *gin.Context) {
	s.listPosts(c, s.posts.ListArchived)
}

func (s *Server) listPosts(c *gin.Context, list func(context.Context, core.SessionID) ([]post.Post, error)) {
	ctx := c.Request.Context()
	id := middleware.SessionID(c)
	if _, err := s.sessions.Get(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	posts, err := list(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

func (s *Server) handleGetPost(c *gin.Context) {
	id, err := core.ParsePostID(c.Param("id"))
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	p, err := s.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// handleUpdatePost applies a partial edit and returns the post with its recomputed metric
func (s *Server) handleUpdatePost(c *gin.Context) {
	id, err := core.ParsePostID(c.Param("id"))
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	var upd app.PostUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, errors.InvalidInput("invalid update: "+err.Error()))
		return
	}

	p, err := s.posts.Update(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, err := core.ParsePostID(c.Param("id"))
	if err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	if err := s.posts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
