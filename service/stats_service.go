package service

import (
	"context"

	"github.com/cppla/conduit/store"
)

// Stats are site-wide totals.
type Stats struct {
	UserCount    int64 `json:"user_count"`
	ArticleCount int64 `json:"article_count"`
	CommentCount int64 `json:"comment_count"`
	TagCount     int64 `json:"tag_count"`
}

// StatsService computes Stats.
type StatsService struct {
	uow store.UnitOfWork
}

// NewStatsService creates a StatsService.
func NewStatsService(uow store.UnitOfWork) *StatsService {
	return &StatsService{uow: uow}
}

// Stats counts users, articles, comments and tags.
func (s *StatsService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.uow.Do(ctx, func(r store.Repos) error {
		var err error
		if st.UserCount, err = r.Users.Count(ctx); err != nil {
			return err
		}
		if st.ArticleCount, err = r.Articles.Count(ctx); err != nil {
			return err
		}
		if st.CommentCount, err = r.Comments.Count(ctx); err != nil {
			return err
		}
		names, err := r.Tags.AllNames(ctx)
		if err != nil {
			return err
		}
		st.TagCount = int64(len(names))
		return nil
	})
	return st, err
}
