// Package store holds the persistence contracts the services depend on, and their gorm
// implementations. Services see only the interfaces in this file.
package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/cppla/conduit/models"
)

// DefaultLimit and DefaultOffset apply when a listing request leaves them unset.
const (
	DefaultLimit  = 20
	DefaultOffset = 0
)

// UserUpdate carries optional profile changes; nil fields are left untouched.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Salt         *string
	Bio          *string
	Image        *string
}

// Users resolves and maintains accounts.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	Update(ctx context.Context, u *models.User, patch UserUpdate) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ArticlePatch carries optional article changes; nil fields are left untouched.
type ArticlePatch struct {
	Title       *string
	Description *string
	Body        *string
}

// AuthorFilter restricts listings. A nil filter matches everything; a non-nil filter
// matches articles whose author is in AuthorIDs, so an empty set matches nothing.
type AuthorFilter struct {
	AuthorIDs []string
}

// SingleAuthor filters to one author.
func SingleAuthor(id string) *AuthorFilter {
	return &AuthorFilter{AuthorIDs: []string{id}}
}

// Articles stores articles and derives slugs from titles.
type Articles interface {
	Create(ctx context.Context, authorID, title, description, body string) (*models.Article, error)
	Update(ctx context.Context, a *models.Article, patch ArticlePatch) (*models.Article, error)
	BySlug(ctx context.Context, slug string) (*models.Article, error)
	Delete(ctx context.Context, a *models.Article) error
	List(ctx context.Context, filter *AuthorFilter, limit, offset int) ([]models.Article, error)
	Count(ctx context.Context) (int64, error)
}

// Tags is the tag catalog and the article/tag join.
type Tags interface {
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
	GetIfExists(ctx context.Context, name string) (*models.Tag, error)
	Link(ctx context.Context, a *models.Article, t *models.Tag) error
	TagsOf(ctx context.Context, a *models.Article) ([]models.Tag, error)
	HasTag(ctx context.Context, a *models.Article, t *models.Tag) (bool, error)
	AllNames(ctx context.Context) ([]string, error)
}

// Favorites is the user/article favorite ledger.
type Favorites interface {
	Favorite(ctx context.Context, a *models.Article, userID string) error
	Unfavorite(ctx context.Context, a *models.Article, userID string) error
	IsFavorited(ctx context.Context, a *models.Article, userID string) (bool, error)
	Count(ctx context.Context, a *models.Article) (int64, error)
	ArticleIDs(ctx context.Context, userID string) (map[uint]struct{}, error)
}

// Follows is the directed follow graph.
type Follows interface {
	Follow(ctx context.Context, followeeID, followerID string) error
	Unfollow(ctx context.Context, followeeID, followerID string) error
	IsFollowing(ctx context.Context, followeeID, followerID string) (bool, error)
	FolloweesOf(ctx context.Context, followerID string) ([]models.Following, error)
}

// Comments stores comments per article.
type Comments interface {
	Create(ctx context.Context, authorID string, a *models.Article, body string) (*models.Comment, error)
	ListFor(ctx context.Context, a *models.Article) ([]models.Comment, error)
	Delete(ctx context.Context, c *models.Comment) error
	Count(ctx context.Context) (int64, error)
}

// Repos bundles the contracts bound to one unit of work.
type Repos struct {
	Users     Users
	Articles  Articles
	Tags      Tags
	Favorites Favorites
	Follows   Follows
	Comments  Comments
}

// UnitOfWork runs fn against repos that share one transaction. fn's error rolls
// everything back; a nil return commits.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}

// GormStore implements UnitOfWork on a gorm database.
type GormStore struct {
	db *gorm.DB
}

// New wraps db.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Do runs fn inside a database transaction.
func (s *GormStore) Do(ctx context.Context, fn func(r Repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func reposFor(db *gorm.DB) Repos {
	return Repos{
		Users:     &userRepo{db: db},
		Articles:  &articleRepo{db: db},
		Tags:      &tagRepo{db: db},
		Favorites: &favoriteRepo{db: db},
		Follows:   &followRepo{db: db},
		Comments:  &commentRepo{db: db},
	}
}
