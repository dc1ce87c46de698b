package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/cppla/conduit/store"
	"github.com/cppla/conduit/utils"
)

// ProfileService reads profiles and edits the follow graph.
type ProfileService struct {
	uow store.UnitOfWork
}

// NewProfileService creates a ProfileService.
func NewProfileService(uow store.UnitOfWork) *ProfileService {
	return &ProfileService{uow: uow}
}

// GetProfile returns username's profile as seen by callerID, which may be empty.
func (s *ProfileService) GetProfile(ctx context.Context, username, callerID string) (Profile, error) {
	var p Profile
	err := s.uow.Do(ctx, func(r store.Repos) error {
		u, err := r.Users.ByUsername(ctx, username)
		if err != nil {
			return err
		}
		p, err = profileOf(ctx, r, u, callerID)
		return err
	})
	return p, err
}

// Follow makes callerID follow username. Following twice is a Conflict.
func (s *ProfileService) Follow(ctx context.Context, username, callerID string) (Profile, error) {
	p, err := s.edge(ctx, username, callerID, func(r store.Repos, followeeID string) error {
		return r.Follows.Follow(ctx, followeeID, callerID)
	})
	if err == nil {
		utils.Logger.Info("user followed", zap.String("follower_id", callerID), zap.String("followee", username))
	}
	return p, err
}

// Unfollow removes the edge if present.
func (s *ProfileService) Unfollow(ctx context.Context, username, callerID string) (Profile, error) {
	return s.edge(ctx, username, callerID, func(r store.Repos, followeeID string) error {
		return r.Follows.Unfollow(ctx, followeeID, callerID)
	})
}

func (s *ProfileService) edge(ctx context.Context, username, callerID string, apply func(store.Repos, string) error) (Profile, error) {
	var p Profile
	err := s.uow.Do(ctx, func(r store.Repos) error {
		u, err := r.Users.ByUsername(ctx, username)
		if err != nil {
			return err
		}
		if err := apply(r, u.ID); err != nil {
			return err
		}
		p, err = profileOf(ctx, r, u, callerID)
		return err
	})
	return p, err
}
