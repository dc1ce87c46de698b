package service

import (
	"context"

	"github.com/cppla/conduit/models"
	"github.com/cppla/conduit/store"
)

// Profile is the public face of a user as seen by a caller.
type Profile struct {
	Username  string  `json:"username"`
	Bio       string  `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

// ArticleView is an article with its tags, favorite state and author profile.
type ArticleView struct {
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Body           string   `json:"body"`
	TagList        []string `json:"tagList"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	Favorited      bool     `json:"favorited"`
	FavoritesCount int64    `json:"favoritesCount"`
	Author         Profile  `json:"author"`
}

// CommentView is a comment with its author profile.
type CommentView struct {
	ID        uint    `json:"id"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	Body      string  `json:"body"`
	Author    Profile `json:"author"`
}

// profileOf builds u's profile for callerID. following is false for anonymous callers and
// for users looking at themselves.
func profileOf(ctx context.Context, r store.Repos, u *models.User, callerID string) (Profile, error) {
	p := Profile{Username: u.Username, Bio: u.Bio, Image: u.Image}
	if callerID == "" || callerID == u.ID {
		return p, nil
	}
	following, err := r.Follows.IsFollowing(ctx, u.ID, callerID)
	if err != nil {
		return Profile{}, err
	}
	p.Following = following
	return p, nil
}

func articleView(ctx context.Context, r store.Repos, a *models.Article, callerID string) (ArticleView, error) {
	tags, err := r.Tags.TagsOf(ctx, a)
	if err != nil {
		return ArticleView{}, err
	}
	count, err := r.Favorites.Count(ctx, a)
	if err != nil {
		return ArticleView{}, err
	}
	favorited := false
	if callerID != "" {
		if favorited, err = r.Favorites.IsFavorited(ctx, a, callerID); err != nil {
			return ArticleView{}, err
		}
	}
	author, err := r.Users.ByID(ctx, a.AuthorID)
	if err != nil {
		return ArticleView{}, err
	}
	profile, err := profileOf(ctx, r, author, callerID)
	if err != nil {
		return ArticleView{}, err
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return ArticleView{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        names,
		CreatedAt:      models.FormatTimestamp(a.CreatedAt),
		UpdatedAt:      models.FormatTimestamp(a.UpdatedAt),
		Favorited:      favorited,
		FavoritesCount: count,
		Author:         profile,
	}, nil
}

func commentView(ctx context.Context, r store.Repos, c *models.Comment, callerID string) (CommentView, error) {
	author, err := r.Users.ByID(ctx, c.AuthorID)
	if err != nil {
		return CommentView{}, err
	}
	profile, err := profileOf(ctx, r, author, callerID)
	if err != nil {
		return CommentView{}, err
	}
	return CommentView{
		ID:        c.ID,
		CreatedAt: models.FormatTimestamp(c.CreatedAt),
		UpdatedAt: models.FormatTimestamp(c.UpdatedAt),
		Body:      c.Body,
		Author:    profile,
	}, nil
}
