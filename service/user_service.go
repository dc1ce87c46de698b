package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cppla/conduit/models"
	"github.com/cppla/conduit/store"
	"github.com/cppla/conduit/utils"
)

// Registration is the input of Register.
type Registration struct {
	Username string `validate:"required,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Credentials is the input of Login.
type Credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// AccountUpdate carries optional account changes; nil fields are left untouched.
type AccountUpdate struct {
	Username *string
	Email    *string
	Password *string
	Bio      *string
	Image    *string
}

// Account is the signed-in user together with a fresh token.
type Account struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      string  `json:"bio"`
	Image    *string `json:"image"`
}

// UserService registers, authenticates and edits accounts.
type UserService struct {
	uow     store.UnitOfWork
	hasher  *utils.PasswordHasher
	tokens  *utils.TokenProvider
	revoker *utils.TokenRevoker
}

// NewUserService creates a UserService.
func NewUserService(uow store.UnitOfWork, hasher *utils.PasswordHasher, tokens *utils.TokenProvider, revoker *utils.TokenRevoker) *UserService {
	return &UserService{uow: uow, hasher: hasher, tokens: tokens, revoker: revoker}
}

// Register creates an account. A taken username or email is a Conflict.
func (s *UserService) Register(ctx context.Context, in Registration) (Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := utils.ValidateStruct(in); err != nil {
		return Account{}, err
	}
	salt, err := s.hasher.NewSalt()
	if err != nil {
		return Account{}, err
	}
	digest, err := s.hasher.Hash(in.Password, salt)
	if err != nil {
		return Account{}, err
	}

	user := &models.User{Username: in.Username, Email: in.Email, PasswordHash: digest, Salt: salt}
	err = s.uow.Do(ctx, func(r store.Repos) error {
		if err := ensureFree(ctx, r, "", &in.Username, &in.Email); err != nil {
			return err
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return Account{}, err
	}
	utils.Logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return s.account(user)
}

// Login checks credentials. An unknown email is NotFound; a wrong password is Unauthorized.
func (s *UserService) Login(ctx context.Context, in Credentials) (Account, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return Account{}, err
	}
	var user *models.User
	err := s.uow.Do(ctx, func(r store.Repos) error {
		var err error
		user, err = r.Users.ByEmail(ctx, strings.TrimSpace(in.Email))
		return err
	})
	if err != nil {
		return Account{}, err
	}
	if !s.hasher.Verify(in.Password, user.PasswordHash, user.Salt) {
		return Account{}, utils.Unauthorized("invalid email or password")
	}
	return s.account(user)
}

// Current returns the account of userID.
func (s *UserService) Current(ctx context.Context, userID string) (Account, error) {
	var user *models.User
	err := s.uow.Do(ctx, func(r store.Repos) error {
		var err error
		user, err = r.Users.ByID(ctx, userID)
		return err
	})
	if err != nil {
		return Account{}, err
	}
	return s.account(user)
}

// Update edits userID's account. A new username or email must not belong to someone else.
func (s *UserService) Update(ctx context.Context, userID string, in AccountUpdate) (Account, error) {
	in.Username = trimmedPtr(in.Username)
	in.Email = trimmedPtr(in.Email)
	if in.Username != nil && *in.Username == "" {
		return Account{}, utils.InvalidInput("username must not be blank")
	}
	if in.Email != nil {
		if err := utils.ValidateVar(*in.Email, "required,email", "email"); err != nil {
			return Account{}, err
		}
	}
	patch := store.UserUpdate{Username: in.Username, Email: in.Email, Bio: in.Bio, Image: in.Image}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return Account{}, utils.InvalidInput("password must be at least 8 characters")
		}
		salt, err := s.hasher.NewSalt()
		if err != nil {
			return Account{}, err
		}
		digest, err := s.hasher.Hash(*in.Password, salt)
		if err != nil {
			return Account{}, err
		}
		patch.PasswordHash, patch.Salt = &digest, &salt
	}

	var user *models.User
	err := s.uow.Do(ctx, func(r store.Repos) error {
		current, err := r.Users.ByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := ensureFree(ctx, r, userID, in.Username, in.Email); err != nil {
			return err
		}
		user, err = r.Users.Update(ctx, current, patch)
		return err
	})
	if err != nil {
		return Account{}, err
	}
	return s.account(user)
}

// List returns every user's public profile, oldest account first.
func (s *UserService) List(ctx context.Context, callerID string) ([]Profile, error) {
	profiles := []Profile{}
	err := s.uow.Do(ctx, func(r store.Repos) error {
		users, err := r.Users.List(ctx)
		if err != nil {
			return err
		}
		for i := range users {
			p, err := profileOf(ctx, r, &users[i], callerID)
			if err != nil {
				return err
			}
			profiles = append(profiles, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Logout revokes token until it would have expired.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return utils.Unauthorized("invalid token")
	}
	expiresAt := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	s.revoker.Revoke(ctx, token, expiresAt)
	utils.Logger.Info("user logged out", zap.String("user_id", claims.Subject))
	return nil
}

func (s *UserService) account(u *models.User) (Account, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return Account{}, err
	}
	return Account{Email: u.Email, Token: token, Username: u.Username, Bio: u.Bio, Image: u.Image}, nil
}

// ensureFree fails with Conflict when username or email belongs to a user other than selfID.
func ensureFree(ctx context.Context, r store.Repos, selfID string, username, email *string) error {
	if username != nil {
		u, err := r.Users.ByUsername(ctx, *username)
		if err == nil && u.ID != selfID {
			return utils.Conflict(nil, "username %q is already taken", *username)
		}
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return err
		}
	}
	if email != nil {
		u, err := r.Users.ByEmail(ctx, *email)
		if err == nil && u.ID != selfID {
			return utils.Conflict(nil, "email %q is already registered", *email)
		}
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return err
		}
	}
	return nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
