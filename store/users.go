package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/conduit/models"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return conflictOr(err, "username or email already registered")
	}
	return nil
}

func (r *userRepo) ByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFoundOr(err, "user %s not found", id)
	}
	return &u, nil
}

func (r *userRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFoundOr(err, "user %q not found", username)
	}
	return &u, nil
}

func (r *userRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFoundOr(err, "user with email %q not found", email)
	}
	return &u, nil
}

func (r *userRepo) ByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User, patch UserUpdate) (*models.User, error) {
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Salt != nil {
		u.Salt = *patch.Salt
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Image != nil {
		u.Image = patch.Image
	}
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, conflictOr(err, "username or email already registered")
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}
