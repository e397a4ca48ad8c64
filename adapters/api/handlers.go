package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coarank/app"
	"coarank/domain/coa"
	"coarank/internal/report"
)

// RankRequest is the POST /api/rank payload
type RankRequest struct {
	Situation  coa.Situation   `json:"situation" binding:"required"`
	Candidates []coa.Candidate `json:"candidates" binding:"required"`
	Options    *app.Options    `json:"options,omitempty"`
}

func (r RankRequest) options() app.Options {
	if r.Options != nil {
		return *r.Options
	}
	return app.DefaultOptions()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRank(c *gin.Context) {
	var req RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.service.RankDetailed(c.Request.Context(), req.Situation, req.Candidates, req.options())
	if err != nil {
		s.logger.Error("rank request failed: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRankReport(c *gin.Context) {
	var req RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.service.RankDetailed(c.Request.Context(), req.Situation, req.Candidates, req.options())
	if err != nil {
		s.logger.Error("rank report request failed: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(req.Situation, result))
}
