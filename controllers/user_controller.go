package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/conduit/middleware"
	"github.com/cppla/conduit/service"
	"github.com/cppla/conduit/utils"
)

// UserController handles registration, login and account management.
type UserController struct {
	users *service.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

// Register creates an account and returns it with a token.
func (u *UserController) Register(ctx *gin.Context) {
	var req struct {
		User struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	acct, err := u.users.Register(ctx.Request.Context(), service.Registration{
		Username: utils.SanitizePlain(req.User.Username),
		Email:    strings.TrimSpace(req.User.Email),
		Password: req.User.Password,
	})
	if err != nil {
		utils.Fail(ctx, err, 1, "failed to create user")
		return
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"user": acct})
}

// Login authenticates with email and password.
func (u *UserController) Login(ctx *gin.Context) {
	var req struct {
		User struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	acct, err := u.users.Login(ctx.Request.Context(), service.Credentials{Email: req.User.Email, Password: req.User.Password})
	if err != nil {
		utils.Fail(ctx, err, 3, "failed to login")
		return
	}
	utils.Success(ctx, gin.H{"user": acct})
}

// Logout revokes the presented token.
func (u *UserController) Logout(ctx *gin.Context) {
	if err := u.users.Logout(ctx.Request.Context(), middleware.Token(ctx)); err != nil {
		utils.Fail(ctx, err, 7, "failed to logout")
		return
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the caller's account.
func (u *UserController) Me(ctx *gin.Context) {
	acct, err := u.users.Current(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		utils.Fail(ctx, err, 8, "failed to load user")
		return
	}
	utils.Success(ctx, gin.H{"user": acct})
}

// UpdateProfile edits the caller's account.
func (u *UserController) UpdateProfile(ctx *gin.Context) {
	var req struct {
		User struct {
			Username *string `json:"username"`
			Email    *string `json:"email"`
			Password *string `json:"password"`
			Bio      *string `json:"bio"`
			Image    *string `json:"image"`
		} `json:"user"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40009, "invalid request payload")
		return
	}

	acct, err := u.users.Update(ctx.Request.Context(), middleware.UserID(ctx), service.AccountUpdate{
		Username: sanitizedPtr(req.User.Username, utils.SanitizePlain),
		Email:    sanitizedPtr(req.User.Email, strings.TrimSpace),
		Password: req.User.Password,
		Bio:      sanitizedPtr(req.User.Bio, utils.SanitizePlain),
		Image:    sanitizedPtr(req.User.Image, strings.TrimSpace),
	})
	if err != nil {
		utils.Fail(ctx, err, 9, "failed to update user")
		return
	}
	utils.Success(ctx, gin.H{"user": acct})
}

// ListUsers returns every user's public profile.
func (u *UserController) ListUsers(ctx *gin.Context) {
	profiles, err := u.users.List(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		utils.Fail(ctx, err, 10, "failed to list users")
		return
	}
	utils.Success(ctx, gin.H{"users": profiles})
}
