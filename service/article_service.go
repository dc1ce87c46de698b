// Package service composes the stores into the operations the HTTP layer exposes. Every
// public method runs as one unit of work.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/cppla/conduit/models"
	"github.com/cppla/conduit/store"
	"github.com/cppla/conduit/utils"
)

// ArticleFilter narrows ListArticles. Empty strings are inactive.
type ArticleFilter struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// NewArticle is the input of CreateArticle.
type NewArticle struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Body        string `validate:"required"`
	TagList     []string
}

// ArticleService is the aggregation engine over articles, tags, favorites and comments.
type ArticleService struct {
	uow   store.UnitOfWork
	cache *utils.Cache
}

// NewArticleService creates an ArticleService. cache may be nil.
func NewArticleService(uow store.UnitOfWork, cache *utils.Cache) *ArticleService {
	return &ArticleService{uow: uow, cache: cache}
}

// ListArticles returns a page of articles newest first. The returned count is the size of
// the page, not the number of matching articles.
func (s *ArticleService) ListArticles(ctx context.Context, callerID string, f ArticleFilter) ([]ArticleView, int, error) {
	if err := checkPage(f.Limit, f.Offset); err != nil {
		return nil, 0, err
	}
	views := []ArticleView{}
	err := s.uow.Do(ctx, func(r store.Repos) error {
		var authors *store.AuthorFilter
		if f.Author != "" {
			author, err := optionalUser(ctx, r, f.Author)
			if err != nil {
				return err
			}
			if author != nil {
				authors = store.SingleAuthor(author.ID)
			}
		}

		var favorites map[uint]struct{}
		if f.Favorited != "" {
			fan, err := optionalUser(ctx, r, f.Favorited)
			if err != nil {
				return err
			}
			if fan != nil {
				if favorites, err = r.Favorites.ArticleIDs(ctx, fan.ID); err != nil {
					return err
				}
			}
		}

		var tag *models.Tag
		if f.Tag != "" {
			var err error
			if tag, err = r.Tags.GetIfExists(ctx, f.Tag); err != nil {
				return err
			}
			if tag == nil {
				return nil
			}
		}

		articles, err := r.Articles.List(ctx, authors, f.Limit, f.Offset)
		if err != nil {
			return err
		}
		for i := range articles {
			a := &articles[i]
			if favorites != nil {
				if _, ok := favorites[a.ID]; !ok {
					continue
				}
			}
			if tag != nil {
				has, err := r.Tags.HasTag(ctx, a, tag)
				if err != nil {
					return err
				}
				if !has {
					continue
				}
			}
			v, err := articleView(ctx, r, a, callerID)
			if err != nil {
				return err
			}
			views = append(views, v)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return views, len(views), nil
}

// Feed lists articles written by the users callerID follows.
func (s *ArticleService) Feed(ctx context.Context, callerID string, limit, offset int) ([]ArticleView, int, error) {
	if err := checkPage(limit, offset); err != nil {
		return nil, 0, err
	}
	views := []ArticleView{}
	err := s.uow.Do(ctx, func(r store.Repos) error {
		edges, err := r.Follows.FolloweesOf(ctx, callerID)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(edges))
		for _, e := range edges {
			ids = append(ids, e.FolloweeID)
		}
		articles, err := r.Articles.List(ctx, &store.AuthorFilter{AuthorIDs: ids}, limit, offset)
		if err != nil {
			return err
		}
		for i := range articles {
			v, err := articleView(ctx, r, &articles[i], callerID)
			if err != nil {
				return err
			}
			views = append(views, v)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return views, len(views), nil
}

// GetArticle returns the article at slug. callerID may be empty.
func (s *ArticleService) GetArticle(ctx context.Context, slug, callerID string) (ArticleView, error) {
	var view ArticleView
	err := s.uow.Do(ctx, func(r store.Repos) error {
		a, err := r.Articles.BySlug(ctx, slug)
		if err != nil {
			return err
		}
		view, err = articleView(ctx, r, a, callerID)
		return err
	})
	return view, err
}

// CreateArticle publishes an article owned by callerID and links its tags in input order.
func (s *ArticleService) CreateArticle(ctx context.Context, callerID string, in NewArticle) (ArticleView, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := utils.ValidateStruct(in); err != nil {
		return ArticleView{}, err
	}
	var view ArticleView
	err := s.uow.Do(ctx, func(r store.Repos) error {
		a, err := r.Articles.Create(ctx, callerID, in.Title, in.Description, in.Body)
		if err != nil {
			return err
		}
		for _, name := range uniqueTagNames(in.TagList) {
			tag, err := r.Tags.GetOrCreate(ctx, name)
			if err != nil {
				return err
			}
			if err := r.Tags.Link(ctx, a, tag); err != nil {
				return err
			}
		}
		view, err = articleView(ctx, r, a, callerID)
		return err
	})
	if err != nil {
		return ArticleView{}, err
	}
	s.cache.InvalidateByPrefix(ctx, tagsCachePrefix)
	utils.Logger.Info("article created", zap.String("slug", view.Slug), zap.String("author_id", callerID))
	return view, nil
}

// UpdateArticle applies patch to the article at slug. Only its author may do this; a new
// title changes the slug.
func (s *ArticleService) UpdateArticle(ctx context.Context, callerID, slug string, patch store.ArticlePatch) (ArticleView, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return ArticleView{}, utils.InvalidInput("title must not be blank")
	}
	var view ArticleView
	err := s.uow.Do(ctx, func(r store.Repos) error {
		a, err := ownedArticle(ctx, r, slug, callerID)
		if err != nil {
			return err
		}
		if a, err = r.Articles.Update(ctx, a, patch); err != nil {
			return err
		}
		view, err = articleView(ctx, r, a, callerID)
		return err
	})
	if err != nil {
		return ArticleView{}, err
	}
	utils.Logger.Info("article updated", zap.String("slug", slug), zap.String("new_slug", view.Slug))
	return view, nil
}

// DeleteArticle removes the article at slug with its comments, favorites and tag links.
func (s *ArticleService) DeleteArticle(ctx context.Context, callerID, slug string) error {
	err := s.uow.Do(ctx, func(r store.Repos) error {
		a, err := ownedArticle(ctx, r, slug, callerID)
		if err != nil {
			return err
		}
		return r.Articles.Delete(ctx, a)
	})
	if err != nil {
		return err
	}
	utils.Logger.Info("article deleted", zap.String("slug", slug), zap.String("user_id", callerID))
	return nil
}

// FavoriteArticle marks the article as favorited by callerID. Favoriting twice is a Conflict.
func (s *ArticleService) FavoriteArticle(ctx context.Context, callerID, slug string) (ArticleView, error) {
	return s.toggleFavorite(ctx, callerID, slug, func(r store.Repos, a *models.Article) error {
		return r.Favorites.Favorite(ctx, a, callerID)
	})
}

// UnfavoriteArticle removes callerID's favorite, if any.
func (s *ArticleService) UnfavoriteArticle(ctx context.Context, callerID, slug string) (ArticleView, error) {
	return s.toggleFavorite(ctx, callerID, slug, func(r store.Repos, a *models.Article) error {
		return r.Favorites.Unfavorite(ctx, a, callerID)
	})
}

func (s *ArticleService) toggleFavorite(ctx context.Context, callerID, slug string, apply func(store.Repos, *models.Article) error) (ArticleView, error) {
	var view ArticleView
	err := s.uow.Do(ctx, func(r store.Repos) error {
		a, err := r.Articles.BySlug(ctx, slug)
		if err != nil {
			return err
		}
		if err := apply(r, a); err != nil {
			return err
		}
		view, err = articleView(ctx, r, a, callerID)
		return err
	})
	return view, err
}

// AddComment attaches a comment by callerID to the article at slug.
func (s *ArticleService) AddComment(ctx context.Context, callerID, slug, body string) (CommentView, error) {
	if strings.TrimSpace(body) == "" {
		return CommentView{}, utils.InvalidInput("body must not be blank")
	}
	var view CommentView
	err := s.uow.Do(ctx, func(r store.Repos) error {
		a, err := r.Articles.BySlug(ctx, slug)
		if err != nil {
			return err
		}
		c, err := r.Comments.Create(ctx, callerID, a, body)
		if err != nil {
			return err
		}
		view, err = commentView(ctx, r, c, callerID)
		return err
	})
	return view, err
}

// ListComments returns the article's comments oldest first. callerID may be empty.
func (s *ArticleService) ListComments(ctx context.Context, callerID, slug string) ([]CommentView, error) {
	views := []CommentView{}
	err := s.uow.Do(ctx, func(r store.Repos) error {
		a, err := r.Articles.BySlug(ctx, slug)
		if err != nil {
			return err
		}
		comments, err := r.Comments.ListFor(ctx, a)
		if err != nil {
			return err
		}
		for i := range comments {
			v, err := commentView(ctx, r, &comments[i], callerID)
			if err != nil {
				return err
			}
			views = append(views, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// DeleteComment removes a comment of the article at slug. Only the comment's author may.
func (s *ArticleService) DeleteComment(ctx context.Context, callerID, slug string, commentID uint) error {
	return s.uow.Do(ctx, func(r store.Repos) error {
		a, err := r.Articles.BySlug(ctx, slug)
		if err != nil {
			return err
		}
		comments, err := r.Comments.ListFor(ctx, a)
		if err != nil {
			return err
		}
		for i := range comments {
			c := &comments[i]
			if c.ID != commentID {
				continue
			}
			if c.AuthorID != callerID {
				return utils.Forbidden("only the author can delete this comment")
			}
			return r.Comments.Delete(ctx, c)
		}
		return utils.NotFound("comment %d not found", commentID)
	})
}

func ownedArticle(ctx context.Context, r store.Repos, slug, callerID string) (*models.Article, error) {
	a, err := r.Articles.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if a.AuthorID != callerID {
		return nil, utils.Forbidden("only the author can modify this article")
	}
	return a, nil
}

// optionalUser resolves username, returning nil when no such user exists.
func optionalUser(ctx context.Context, r store.Repos, username string) (*models.User, error) {
	u, err := r.Users.ByUsername(ctx, username)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func uniqueTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func checkPage(limit, offset int) error {
	if limit < 0 || offset < 0 {
		return utils.InvalidInput("limit and offset must not be negative")
	}
	return nil
}
