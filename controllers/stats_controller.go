package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/conduit/service"
	"github.com/cppla/conduit/utils"
)

// StatsController provides site statistics and the tag list.
type StatsController struct {
	stats *service.StatsService
	tags  *service.TagService
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(stats *service.StatsService, tags *service.TagService) *StatsController {
	return &StatsController{stats: stats, tags: tags}
}

// GetStats returns aggregate counts.
func (s *StatsController) GetStats(ctx *gin.Context) {
	st, err := s.stats.Stats(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, err, 40, "failed to load stats")
		return
	}
	utils.Success(ctx, st)
}

// ListTags returns every tag name.
func (s *StatsController) ListTags(ctx *gin.Context) {
	tags, err := s.tags.AllTags(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, err, 41, "failed to list tags")
		return
	}
	utils.Success(ctx, gin.H{"tags": tags})
}
