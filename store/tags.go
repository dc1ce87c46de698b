package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cppla/conduit/models"
)

type tagRepo struct {
	db *gorm.DB
}

// GetOrCreate matches name exactly, without case folding.
func (r *tagRepo) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	t, err := r.GetIfExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}
	created := models.Tag{Name: name}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, conflictOr(err, "tag %q already exists", name)
	}
	return &created, nil
}

// GetIfExists returns nil, nil when no tag has that name.
func (r *tagRepo) GetIfExists(ctx context.Context, name string) (*models.Tag, error) {
	var t models.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Link is not idempotent: linking the same pair twice is a Conflict.
func (r *tagRepo) Link(ctx context.Context, a *models.Article, t *models.Tag) error {
	link := models.ArticleTag{ArticleID: a.ID, TagID: t.ID}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return conflictOr(err, "article already tagged %q", t.Name)
	}
	return nil
}

// TagsOf returns tags in the order they were linked.
func (r *tagRepo) TagsOf(ctx context.Context, a *models.Article) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.*").
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Where("article_tags.article_id = ?", a.ID).
		Order("article_tags.id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepo) HasTag(ctx context.Context, a *models.Article, t *models.Tag) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ArticleTag{}).
		Where("article_id = ? AND tag_id = ?", a.ID, t.ID).
		Count(&n).Error
	return n > 0, err
}

// AllNames has no ordering contract; ids keep it stable.
func (r *tagRepo) AllNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Order("id ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
