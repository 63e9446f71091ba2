package ui

import (
	"bytes"
	"fmt"
	"net/http"

	"terlab/adapters/excel"
	"terlab/app"
	"terlab/ui/middleware"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleStats returns the descriptive overview with the top posts
func (s *Server) handleStats(c *gin.Context) {
	ov, err := s.analysis.Overview(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (s *Server) handleDistribution(c *gin.Context) {
	d, err := s.analysis.Distribution(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleTimeline(c *gin.Context) {
	tl, err := s.analysis.Timeline(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tl)
}

// handleAdvancedStats returns the full report. Insufficient data is a regular
// 200 response carrying the diagnostic shape.
func (s *Server) handleAdvancedStats(c *gin.Context) {
	report, err := s.analysis.Report(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleInterpretation(c *gin.Context) {
	report, err := s.analysis.Report(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", app.InterpretationHTML(report))
}

func (s *Server) handleReportWorkbook(c *gin.Context) {
	id := middleware.SessionID(c)
	report, err := s.analysis.Report(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteReport(&buf, report); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="engagement-report-%s.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
