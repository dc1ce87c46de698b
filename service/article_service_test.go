package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cppla/conduit/models"
	"github.com/cppla/conduit/store"
	"github.com/cppla/conduit/store/storetest"
	"github.com/cppla/conduit/utils"
)

type fixture struct {
	db       *gorm.DB
	store    *store.GormStore
	articles *ArticleService
	profiles *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, db := storetest.NewStore(t)
	return &fixture{
		db:       db,
		store:    s,
		articles: NewArticleService(s, nil),
		profiles: NewProfileService(s),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	return storetest.CreateUser(t, f.db, username)
}

func (f *fixture) publish(t *testing.T, authorID, title string, tags ...string) ArticleView {
	t.Helper()
	v, err := f.articles.CreateArticle(context.Background(), authorID, NewArticle{
		Title:       title,
		Description: title + " description",
		Body:        title + " body",
		TagList:     tags,
	})
	require.NoError(t, err)
	return v
}

func viewSlugs(views []ArticleView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Slug)
	}
	return out
}

func TestCreateArticleBuildsView(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	v := f.publish(t, alice.ID, "How to Train Your Dragon", "dragons", "training", "dragons")
	assert.Equal(t, "how-to-train-your-dragon", v.Slug)
	assert.Equal(t, []string{"dragons", "training"}, v.TagList)
	assert.Equal(t, "alice", v.Author.Username)
	assert.Equal(t, "alice bio", v.Author.Bio)
	assert.False(t, v.Author.Following)
	assert.False(t, v.Favorited)
	assert.Zero(t, v.FavoritesCount)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, v.CreatedAt)
	assert.Equal(t, v.CreatedAt, v.UpdatedAt)

	got, err := f.articles.GetArticle(context.Background(), v.Slug, "")
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestCreateArticleRejectsBlankFields(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.articles.CreateArticle(context.Background(), alice.ID, NewArticle{Title: "t"})
	assert.True(t, errors.Is(err, utils.ErrInvalidInput), "got %v", err)
}

func TestCreateArticleDuplicateTitleIsConflict(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	f.publish(t, alice.ID, "Same")

	_, err := f.articles.CreateArticle(context.Background(), alice.ID, NewArticle{Title: "Same", Description: "d", Body: "b"})
	assert.True(t, errors.Is(err, utils.ErrConflict), "got %v", err)
}

func TestGetArticleUnknownSlug(t *testing.T) {
	f := newFixture(t)
	_, err := f.articles.GetArticle(context.Background(), "missing", "")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestOnlyAuthorMayUpdateOrDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.publish(t, alice.ID, "Original Title")

	body := "hijacked"
	_, err := f.articles.UpdateArticle(ctx, bob.ID, v.Slug, store.ArticlePatch{Body: &body})
	assert.True(t, errors.Is(err, utils.ErrForbidden), "got %v", err)
	err = f.articles.DeleteArticle(ctx, bob.ID, v.Slug)
	assert.True(t, errors.Is(err, utils.ErrForbidden), "got %v", err)

	title := "Renamed Title"
	updated, err := f.articles.UpdateArticle(ctx, alice.ID, v.Slug, store.ArticlePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed-title", updated.Slug)
	assert.Equal(t, "Original Title body", updated.Body)

	_, err = f.articles.GetArticle(ctx, v.Slug, "")
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	require.NoError(t, f.articles.DeleteArticle(ctx, alice.ID, updated.Slug))
	_, err = f.articles.GetArticle(ctx, updated.Slug, "")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestUpdateArticleRejectsBlankTitle(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	v := f.publish(t, alice.ID, "Title")

	blank := "  "
	_, err := f.articles.UpdateArticle(context.Background(), alice.ID, v.Slug, store.ArticlePatch{Title: &blank})
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))
}

func TestFavoriteToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.publish(t, alice.ID, "Likeable")

	fav, err := f.articles.FavoriteArticle(ctx, bob.ID, v.Slug)
	require.NoError(t, err)
	assert.True(t, fav.Favorited)
	assert.EqualValues(t, 1, fav.FavoritesCount)

	_, err = f.articles.FavoriteArticle(ctx, bob.ID, v.Slug)
	assert.True(t, errors.Is(err, utils.ErrConflict), "got %v", err)

	unfav, err := f.articles.UnfavoriteArticle(ctx, bob.ID, v.Slug)
	require.NoError(t, err)
	assert.False(t, unfav.Favorited)
	assert.Zero(t, unfav.FavoritesCount)

	_, err = f.articles.FavoriteArticle(ctx, bob.ID, "missing")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestFeedContainsOnlyFollowedAuthors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a")
	b := f.user(t, "b")
	c := f.user(t, "c")
	fromB := f.publish(t, b.ID, "From B")
	f.publish(t, c.ID, "From C")

	empty, n, err := f.articles.Feed(ctx, a.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Zero(t, n)

	_, err = f.profiles.Follow(ctx, "b", a.ID)
	require.NoError(t, err)

	feed, n, err := f.articles.Feed(ctx, a.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, feed, 1)
	assert.Equal(t, fromB.Slug, feed[0].Slug)
	assert.True(t, feed[0].Author.Following)
}

func TestListArticlesByTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	x := f.publish(t, alice.ID, "X", "t1")
	y := f.publish(t, alice.ID, "Y", "t1", "t2")
	f.publish(t, alice.ID, "Z", "t2")

	views, n, err := f.articles.ListArticles(ctx, "", ArticleFilter{Tag: "t1", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{x.Slug, y.Slug}, viewSlugs(views))

	views, n, err = f.articles.ListArticles(ctx, "", ArticleFilter{Tag: "nope", Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, views)
}

func TestListArticlesByAuthorAndFavorited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	a1 := f.publish(t, alice.ID, "A1")
	f.publish(t, alice.ID, "A2")
	b1 := f.publish(t, bob.ID, "B1")

	byAlice, _, err := f.articles.ListArticles(ctx, "", ArticleFilter{Author: "alice", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a1"}, viewSlugs(byAlice))

	unknownAuthor, _, err := f.articles.ListArticles(ctx, "", ArticleFilter{Author: "ghost", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, unknownAuthor, 3, "unknown author leaves the filter inactive")

	_, err = f.articles.FavoriteArticle(ctx, bob.ID, a1.Slug)
	require.NoError(t, err)
	_, err = f.articles.FavoriteArticle(ctx, bob.ID, b1.Slug)
	require.NoError(t, err)

	favs, n, err := f.articles.ListArticles(ctx, bob.ID, ArticleFilter{Favorited: "bob", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{b1.Slug, a1.Slug}, viewSlugs(favs))
	for _, v := range favs {
		assert.True(t, v.Favorited)
	}

	both, _, err := f.articles.ListArticles(ctx, "", ArticleFilter{Author: "alice", Favorited: "bob", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{a1.Slug}, viewSlugs(both))
}

func TestListArticlesPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	for _, title := range []string{"p1", "p2", "p3", "p4", "p5"} {
		f.publish(t, alice.ID, title)
	}

	first, n, err := f.articles.ListArticles(ctx, "", ArticleFilter{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"p5", "p4"}, viewSlugs(first))

	second, n, err := f.articles.ListArticles(ctx, "", ArticleFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"p3", "p2"}, viewSlugs(second))

	last, n, err := f.articles.ListArticles(ctx, "", ArticleFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "count is the page size")
	assert.Equal(t, []string{"p1"}, viewSlugs(last))

	_, _, err = f.articles.ListArticles(ctx, "", ArticleFilter{Limit: -1})
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))
}

func TestCommentOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	v := f.publish(t, alice.ID, "Discuss")

	c, err := f.articles.AddComment(ctx, bob.ID, v.Slug, "nice")
	require.NoError(t, err)
	assert.Equal(t, "bob", c.Author.Username)
	assert.False(t, c.Author.Following, "self view never follows")

	err = f.articles.DeleteComment(ctx, alice.ID, v.Slug, c.ID)
	assert.True(t, errors.Is(err, utils.ErrForbidden), "got %v", err)

	err = f.articles.DeleteComment(ctx, bob.ID, v.Slug, c.ID+100)
	assert.True(t, errors.Is(err, utils.ErrNotFound), "got %v", err)

	require.NoError(t, f.articles.DeleteComment(ctx, bob.ID, v.Slug, c.ID))
	list, err := f.articles.ListComments(ctx, "", v.Slug)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListCommentsShowsFollowState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	v := f.publish(t, alice.ID, "Thread")

	_, err := f.articles.AddComment(ctx, bob.ID, v.Slug, "first")
	require.NoError(t, err)
	_, err = f.articles.AddComment(ctx, alice.ID, v.Slug, "second")
	require.NoError(t, err)
	_, err = f.profiles.Follow(ctx, "bob", carol.ID)
	require.NoError(t, err)

	list, err := f.articles.ListComments(ctx, carol.ID, v.Slug)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Body)
	assert.True(t, list[0].Author.Following)
	assert.Equal(t, "second", list[1].Body)
	assert.False(t, list[1].Author.Following)

	_, err = f.articles.AddComment(ctx, bob.ID, v.Slug, " ")
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))
	_, err = f.articles.ListComments(ctx, "", "missing")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestPublishFavoriteAndRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u1 := f.user(t, "u1")
	u2 := f.user(t, "u2")

	v := f.publish(t, u1.ID, "Shared Article", "a", "b")
	_, err := f.articles.FavoriteArticle(ctx, u2.ID, v.Slug)
	require.NoError(t, err)

	anon, err := f.articles.GetArticle(ctx, v.Slug, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, anon.FavoritesCount)
	assert.ElementsMatch(t, []string{"a", "b"}, anon.TagList)
	assert.False(t, anon.Favorited)

	asU2, err := f.articles.GetArticle(ctx, v.Slug, u2.ID)
	require.NoError(t, err)
	assert.True(t, asU2.Favorited)
	assert.EqualValues(t, 1, asU2.FavoritesCount)
}

func TestCreateArticleRejectsWhitespaceTitle(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.articles.CreateArticle(context.Background(), alice.ID, NewArticle{Title: "   ", Description: "d", Body: "b"})
	assert.True(t, errors.Is(err, utils.ErrInvalidInput), "got %v", err)

	v := f.publish(t, alice.ID, "  Padded Title  ")
	assert.Equal(t, "padded-title", v.Slug)
	assert.Equal(t, "Padded Title", v.Title)
}
