package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/conduit/models"
	"github.com/cppla/conduit/utils"
)

type articleRepo struct {
	db *gorm.DB
}

// Create derives the slug from title. Collisions are reported by the unique index as Conflict;
// no retry or pre-check happens here.
func (r *articleRepo) Create(ctx context.Context, authorID, title, description, body string) (*models.Article, error) {
	a := models.Article{
		Slug:        utils.Slugify(title),
		Title:       title,
		Description: description,
		Body:        body,
		AuthorID:    authorID,
	}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, conflictOr(err, "article with slug %q already exists", a.Slug)
	}
	return &a, nil
}

// Update applies the non-nil fields. A new title also replaces the slug.
func (r *articleRepo) Update(ctx context.Context, a *models.Article, patch ArticlePatch) (*models.Article, error) {
	if patch.Title != nil {
		a.Title = *patch.Title
		a.Slug = utils.Slugify(*patch.Title)
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Body != nil {
		a.Body = *patch.Body
	}
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return nil, conflictOr(err, "article with slug %q already exists", a.Slug)
	}
	return a, nil
}

func (r *articleRepo) BySlug(ctx context.Context, slug string) (*models.Article, error) {
	var a models.Article
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&a).Error; err != nil {
		return nil, notFoundOr(err, "article %q not found", slug)
	}
	return &a, nil
}

// Delete removes the article together with its tag links, favorites and comments.
func (r *articleRepo) Delete(ctx context.Context, a *models.Article) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("article_id = ?", a.ID).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}
	if err := db.Where("article_id = ?", a.ID).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}
	if err := db.Where("article_id = ?", a.ID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return db.Delete(a).Error
}

// List returns newest articles first; id breaks ties between equal timestamps.
func (r *articleRepo) List(ctx context.Context, filter *AuthorFilter, limit, offset int) ([]models.Article, error) {
	articles := []models.Article{}
	if limit == 0 || (filter != nil && len(filter.AuthorIDs) == 0) {
		return articles, nil
	}
	q := r.db.WithContext(ctx).Model(&models.Article{}).Order("created_at DESC").Order("id DESC")
	if filter != nil {
		q = q.Where("author_id IN ?", filter.AuthorIDs)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).Count(&n).Error
	return n, err
}
