package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/conduit/middleware"
	"github.com/cppla/conduit/service"
	"github.com/cppla/conduit/utils"
)

// ProfileController exposes profiles and the follow graph.
type ProfileController struct {
	profiles *service.ProfileService
}

// NewProfileController creates a new ProfileController instance.
func NewProfileController(profiles *service.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// GetProfile returns a user's public profile.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	profile, err := p.profiles.GetProfile(ctx.Request.Context(), ctx.Param("username"), middleware.UserID(ctx))
	if err != nil {
		utils.Fail(ctx, err, 11, "failed to load profile")
		return
	}
	utils.Success(ctx, gin.H{"profile": profile})
}

// Follow makes the caller follow the user.
func (p *ProfileController) Follow(ctx *gin.Context) {
	profile, err := p.profiles.Follow(ctx.Request.Context(), ctx.Param("username"), middleware.UserID(ctx))
	if err != nil {
		utils.Fail(ctx, err, 12, "failed to follow user")
		return
	}
	utils.Success(ctx, gin.H{"profile": profile})
}

// Unfollow removes the follow edge.
func (p *ProfileController) Unfollow(ctx *gin.Context) {
	profile, err := p.profiles.Unfollow(ctx.Request.Context(), ctx.Param("username"), middleware.UserID(ctx))
	if err != nil {
		utils.Fail(ctx, err, 13, "failed to unfollow user")
		return
	}
	utils.Success(ctx, gin.H{"profile": profile})
}
