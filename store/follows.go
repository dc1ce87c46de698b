package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/conduit/models"
)

type followRepo struct {
	db *gorm.DB
}

// Follow inserts the edge follower -> followee. Self-follows are not rejected here.
func (r *followRepo) Follow(ctx context.Context, followeeID, followerID string) error {
	edge := models.Following{FollowerID: followerID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).Create(&edge).Error; err != nil {
		return conflictOr(err, "already following")
	}
	return nil
}

func (r *followRepo) Unfollow(ctx context.Context, followeeID, followerID string) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Following{}).Error
}

// IsFollowing reports whether followerID follows followeeID.
func (r *followRepo) IsFollowing(ctx context.Context, followeeID, followerID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Following{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&n).Error
	return n > 0, err
}

func (r *followRepo) FolloweesOf(ctx context.Context, followerID string) ([]models.Following, error) {
	edges := []models.Following{}
	err := r.db.WithContext(ctx).Where("follower_id = ?", followerID).Order("created_at ASC").Find(&edges).Error
	if err != nil {
		return nil, err
	}
	return edges, nil
}
