package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/conduit/models"
)

type favoriteRepo struct {
	db *gorm.DB
}

// Favorite inserts the pair; favoriting twice is a Conflict.
func (r *favoriteRepo) Favorite(ctx context.Context, a *models.Article, userID string) error {
	fav := models.Favorite{UserID: userID, ArticleID: a.ID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return conflictOr(err, "article %q already favorited", a.Slug)
	}
	return nil
}

// Unfavorite removes the pair; an absent pair is a no-op.
func (r *favoriteRepo) Unfavorite(ctx context.Context, a *models.Article, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, a.ID).
		Delete(&models.Favorite{}).Error
}

func (r *favoriteRepo) IsFavorited(ctx context.Context, a *models.Article, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND article_id = ?", userID, a.ID).
		Count(&n).Error
	return n > 0, err
}

func (r *favoriteRepo) Count(ctx context.Context, a *models.Article) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("article_id = ?", a.ID).Count(&n).Error
	return n, err
}

func (r *favoriteRepo) ArticleIDs(ctx context.Context, userID string) (map[uint]struct{}, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID).Pluck("article_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
