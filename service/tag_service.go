package service

import (
	"context"
	"time"

	"github.com/cppla/conduit/store"
	"github.com/cppla/conduit/utils"
)

const (
	tagsCachePrefix = "cache:tags:"
	tagsCacheKey    = tagsCachePrefix + "all"
	tagsCacheTTL    = 10 * time.Minute
)

// TagService lists tag names, through the cache when one is configured.
type TagService struct {
	uow   store.UnitOfWork
	cache *utils.Cache
}

// NewTagService creates a TagService. cache may be nil.
func NewTagService(uow store.UnitOfWork, cache *utils.Cache) *TagService {
	return &TagService{uow: uow, cache: cache}
}

// AllTags returns every tag name. Callers must not rely on the order.
func (s *TagService) AllTags(ctx context.Context) ([]string, error) {
	var names []string
	if s.cache.GetJSON(ctx, tagsCacheKey, &names) {
		return names, nil
	}
	err := s.uow.Do(ctx, func(r store.Repos) error {
		var err error
		names, err = r.Tags.AllNames(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	s.cache.SetJSON(ctx, tagsCacheKey, names, tagsCacheTTL)
	return names, nil
}
