package feed

import (
	"context"
	"errors"
	"testing"

	"zavio/cache"
	"zavio/datasource"
	"zavio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

type fakeDS struct {
	datasource.DataSource

	pages     map[int][]models.Post
	total     int
	pageCalls []int

	likeResult models.LikeResult
	likeErr    error
	likeCalls  int

	detail *models.Post
}

func (f *fakeDS) Posts(ctx context.Context, page, limit int) ([]models.Post, models.PageMeta, error) {
	f.pageCalls = append(f.pageCalls, page)
	totalPages := (f.total + limit - 1) / limit
	meta := models.PageMeta{Page: page, Limit: limit, Total: f.total, TotalPages: totalPages}
	return f.pages[page], meta, nil
}

func (f *fakeDS) LikePost(ctx context.Context, postID string) (models.LikeResult, error) {
	f.likeCalls++
	return f.likeResult, f.likeErr
}

func (f *fakeDS) LikeComment(ctx context.Context, commentID string) (models.LikeResult, error) {
	f.likeCalls++
	return f.likeResult, f.likeErr
}

func (f *fakeDS) PostDetail(ctx context.Context, postID string) (*models.Post, error) {
	post := *f.detail
	return &post, nil
}

func newTestFeed(ds *fakeDS) *DefaultFeedService {
	return &DefaultFeedService{
		DS:     ds,
		Cache:  cache.New(zap.NewNop()),
		ChatID: 1,
		Logger: zap.NewNop(),
	}
}

func post(id string, likes int, liked bool) models.Post {
	return models.Post{ID: id, Content: "content " + id, Likes: likes, LikedByMe: liked}
}

func TestLoadMoreAccumulatesPages(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{
		total: 45, // 3 pages of 20
		pages: map[int][]models.Post{
			1: {post("p1", 0, false)},
			2: {post("p2", 0, false)},
			3: {post("p3", 0, false)},
		},
	}
	s := newTestFeed(ds)

	page, err := s.Feed(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.False(t, page.Exhausted())

	page, err = s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	assert.Equal(t, 2, page.Meta.Page)

	page, err = s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 3)
	assert.True(t, page.Exhausted())

	// Past the last page LoadMore is a no-op.
	page, err = s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 3)
	assert.Equal(t, []int{1, 2, 3}, ds.pageCalls)
}

func TestRefreshDropsAccumulatedWindow(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{
		total: 25,
		pages: map[int][]models.Post{
			1: {post("p1", 0, false)},
			2: {post("p2", 0, false)},
		},
	}
	s := newTestFeed(ds)

	_, err := s.Feed(ctx)
	require.NoError(t, err)
	_, err = s.LoadMore(ctx)
	require.NoError(t, err)

	page, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.Equal(t, 1, page.Meta.Page)
}

func TestToggleLikeAdoptsServerCount(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{
		total: 1,
		pages: map[int][]models.Post{1: {post("p1", 3, false)}},
		// Someone else liked it too since the last fetch.
		likeResult: models.LikeResult{Liked: true, LikesCount: 5},
	}
	s := newTestFeed(ds)

	_, err := s.Feed(ctx)
	require.NoError(t, err)

	result, err := s.ToggleLikePost(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 5, result.LikesCount)

	page, err := s.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.True(t, page.Posts[0].LikedByMe)
	assert.Equal(t, 5, page.Posts[0].Likes, "server count wins over the local +1")
}

func TestToggleLikeRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{
		total:   1,
		pages:   map[int][]models.Post{1: {post("p1", 3, false)}},
		likeErr: errors.New("network down"),
	}
	s := newTestFeed(ds)

	_, err := s.Feed(ctx)
	require.NoError(t, err)

	_, err = s.ToggleLikePost(ctx, "p1")
	require.Error(t, err)

	page, err := s.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.False(t, page.Posts[0].LikedByMe)
	assert.Equal(t, 3, page.Posts[0].Likes, "failed toggle leaves no trace")
}

func TestToggleUnlikeDecrements(t *testing.T) {
	ctx := context.Background()
	ds := &fakeDS{
		total:      1,
		pages:      map[int][]models.Post{1: {post("p1", 4, true)}},
		likeResult: models.LikeResult{Liked: false, LikesCount: 3},
	}
	s := newTestFeed(ds)

	_, err := s.Feed(ctx)
	require.NoError(t, err)

	result, err := s.ToggleLikePost(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 3, result.LikesCount)
}

func TestToggleLikeCommentUpdatesCachedDetail(t *testing.T) {
	ctx := context.Background()
	detail := models.Post{
		ID: "p1",
		Comments: []models.Comment{
			{ID: "c1", Likes: 1, LikedByMe: false},
			{ID: "c2", Likes: 0, LikedByMe: false},
		},
	}
	ds := &fakeDS{
		detail:     &detail,
		likeResult: models.LikeResult{Liked: true, LikesCount: 2},
	}
	s := newTestFeed(ds)

	_, err := s.PostDetail(ctx, "p1")
	require.NoError(t, err)

	result, err := s.ToggleLikeComment(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.True(t, result.Liked)

	cached, err := s.PostDetail(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, cached.Comments[0].LikedByMe)
	assert.Equal(t, 2, cached.Comments[0].Likes)
	assert.False(t, cached.Comments[1].LikedByMe, "other comments untouched")
}
