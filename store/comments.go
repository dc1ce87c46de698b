package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/conduit/models"
)

type commentRepo struct {
	db *gorm.DB
}

func (r *commentRepo) Create(ctx context.Context, authorID string, a *models.Article, body string) (*models.Comment, error) {
	c := models.Comment{ArticleID: a.ID, AuthorID: authorID, Body: body}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListFor returns comments oldest first.
func (r *commentRepo) ListFor(ctx context.Context, a *models.Article) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).Where("article_id = ?", a.ID).Order("created_at ASC").Order("id ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepo) Delete(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Delete(c).Error
}

func (r *commentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&n).Error
	return n, err
}
