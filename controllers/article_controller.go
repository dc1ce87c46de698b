package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/conduit/middleware"
	"github.com/cppla/conduit/service"
	"github.com/cppla/conduit/store"
	"github.com/cppla/conduit/utils"
)

// ArticleController exposes articles, favorites and comments.
type ArticleController struct {
	articles *service.ArticleService
}

// NewArticleController creates a new ArticleController instance.
func NewArticleController(articles *service.ArticleService) *ArticleController {
	return &ArticleController{articles: articles}
}

// ListArticles returns a page of articles filtered by tag, author or favoriter.
func (a *ArticleController) ListArticles(ctx *gin.Context) {
	limit, offset := parseLimitOffset(ctx.Query("limit"), ctx.Query("offset"))
	views, count, err := a.articles.ListArticles(ctx.Request.Context(), middleware.UserID(ctx), service.ArticleFilter{
		Tag:       ctx.Query("tag"),
		Author:    ctx.Query("author"),
		Favorited: ctx.Query("favorited"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		utils.Fail(ctx, err, 20, "failed to list articles")
		return
	}
	utils.Success(ctx, gin.H{"articles": views, "articlesCount": count})
}

// Feed returns articles by authors the caller follows.
func (a *ArticleController) Feed(ctx *gin.Context) {
	limit, offset := parseLimitOffset(ctx.Query("limit"), ctx.Query("offset"))
	views, count, err := a.articles.Feed(ctx.Request.Context(), middleware.UserID(ctx), limit, offset)
	if err != nil {
		utils.Fail(ctx, err, 21, "failed to load feed")
		return
	}
	utils.Success(ctx, gin.H{"articles": views, "articlesCount": count})
}

// GetArticle returns a single article.
func (a *ArticleController) GetArticle(ctx *gin.Context) {
	view, err := a.articles.GetArticle(ctx.Request.Context(), ctx.Param("slug"), middleware.UserID(ctx))
	if err != nil {
		utils.Fail(ctx, err, 22, "failed to load article")
		return
	}
	utils.Success(ctx, gin.H{"article": view})
}

// CreateArticle publishes an article for the caller.
func (a *ArticleController) CreateArticle(ctx *gin.Context) {
	var req struct {
		Article struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Body        string   `json:"body"`
			TagList     []string `json:"tagList"`
		} `json:"article"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	tags := make([]string, 0, len(req.Article.TagList))
	for _, t := range req.Article.TagList {
		tags = append(tags, utils.SanitizePlain(t))
	}
	view, err := a.articles.CreateArticle(ctx.Request.Context(), middleware.UserID(ctx), service.NewArticle{
		Title:       utils.SanitizePlain(req.Article.Title),
		Description: utils.SanitizePlain(req.Article.Description),
		Body:        utils.Sanitize(req.Article.Body),
		TagList:     tags,
	})
	if err != nil {
		utils.Fail(ctx, err, 23, "failed to create article")
		return
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"article": view})
}

// UpdateArticle edits the caller's article.
func (a *ArticleController) UpdateArticle(ctx *gin.Context) {
	var req struct {
		Article struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Body        *string `json:"body"`
		} `json:"article"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	view, err := a.articles.UpdateArticle(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("slug"), store.ArticlePatch{
		Title:       sanitizedPtr(req.Article.Title, utils.SanitizePlain),
		Description: sanitizedPtr(req.Article.Description, utils.SanitizePlain),
		Body:        sanitizedPtr(req.Article.Body, utils.Sanitize),
	})
	if err != nil {
		utils.Fail(ctx, err, 24, "failed to update article")
		return
	}
	utils.Success(ctx, gin.H{"article": view})
}

// DeleteArticle removes the caller's article.
func (a *ArticleController) DeleteArticle(ctx *gin.Context) {
	if err := a.articles.DeleteArticle(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("slug")); err != nil {
		utils.Fail(ctx, err, 25, "failed to delete article")
		return
	}
	utils.Success(ctx, gin.H{"message": "article deleted"})
}

// FavoriteArticle favorites an article for the caller.
func (a *ArticleController) FavoriteArticle(ctx *gin.Context) {
	view, err := a.articles.FavoriteArticle(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("slug"))
	if err != nil {
		utils.Fail(ctx, err, 26, "failed to favorite article")
		return
	}
	utils.Success(ctx, gin.H{"article": view})
}

// UnfavoriteArticle removes the caller's favorite.
func (a *ArticleController) UnfavoriteArticle(ctx *gin.Context) {
	view, err := a.articles.UnfavoriteArticle(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("slug"))
	if err != nil {
		utils.Fail(ctx, err, 27, "failed to unfavorite article")
		return
	}
	utils.Success(ctx, gin.H{"article": view})
}

// ListComments returns an article's comments.
func (a *ArticleController) ListComments(ctx *gin.Context) {
	views, err := a.articles.ListComments(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("slug"))
	if err != nil {
		utils.Fail(ctx, err, 28, "failed to list comments")
		return
	}
	utils.Success(ctx, gin.H{"comments": views})
}

// AddComment comments on an article as the caller.
func (a *ArticleController) AddComment(ctx *gin.Context) {
	var req struct {
		Comment struct {
			Body string `json:"body"`
		} `json:"comment"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40029, "invalid request payload")
		return
	}

	view, err := a.articles.AddComment(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("slug"), utils.Sanitize(req.Comment.Body))
	if err != nil {
		utils.Fail(ctx, err, 29, "failed to add comment")
		return
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"comment": view})
}

// DeleteComment removes one of the caller's comments.
func (a *ArticleController) DeleteComment(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid comment id")
		return
	}
	if err := a.articles.DeleteComment(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("slug"), uint(id)); err != nil {
		utils.Fail(ctx, err, 30, "failed to delete comment")
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
