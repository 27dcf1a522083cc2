// Package feed mediates the social feed: accumulated pagination, post and
// comment creation, and optimistic like toggles.
package feed

import (
	"context"
	"fmt"

	"zavio/cache"
	"zavio/datasource"
	"zavio/models"

	"go.uber.org/zap"
)

// PageSize is the feed page length requested from the backend.
const PageSize = 20

// FeedService defines the social feed operations.
type FeedService interface {
	Feed(ctx context.Context) (models.PostPage, error)
	LoadMore(ctx context.Context) (models.PostPage, error)
	Refresh(ctx context.Context) (models.PostPage, error)
	CreatePost(ctx context.Context, content, image string) (*models.Post, error)
	PostDetail(ctx context.Context, postID string) (*models.Post, error)
	AddComment(ctx context.Context, postID, content string) (*models.Comment, error)
	ToggleLikePost(ctx context.Context, postID string) (models.LikeResult, error)
	ToggleLikeComment(ctx context.Context, postID, commentID string) (models.LikeResult, error)
}

// DefaultFeedService implements FeedService for one chat.
type DefaultFeedService struct {
	DS     datasource.DataSource
	Cache  *cache.Cache
	ChatID int64
	Logger *zap.Logger
}

func (s *DefaultFeedService) feedKey() string { return cache.PostsKey(s.ChatID) }

// Feed returns the accumulated feed window, fetching the first page when
// nothing is cached yet.
func (s *DefaultFeedService) Feed(ctx context.Context) (models.PostPage, error) {
	return cache.Get(ctx, s.Cache, s.feedKey(), cache.StalePosts, func(ctx context.Context) (models.PostPage, error) {
		return s.fetchPage(ctx, 1)
	})
}

// LoadMore appends the next page to the accumulated window. It is a no-op
// once the server reports no further pages.
func (s *DefaultFeedService) LoadMore(ctx context.Context) (models.PostPage, error) {
	current, err := s.Feed(ctx)
	if err != nil {
		return models.PostPage{}, err
	}
	if current.Exhausted() {
		return current, nil
	}

	next, err := s.fetchPage(ctx, current.Meta.Page+1)
	if err != nil {
		return models.PostPage{}, err
	}
	merged := models.PostPage{
		Posts: append(append([]models.Post(nil), current.Posts...), next.Posts...),
		Meta:  next.Meta,
	}
	s.Cache.Set(s.feedKey(), merged)
	return merged, nil
}

// Refresh drops the accumulated window and refetches the first page.
func (s *DefaultFeedService) Refresh(ctx context.Context) (models.PostPage, error) {
	s.Cache.Invalidate(s.feedKey())
	return s.Feed(ctx)
}

func (s *DefaultFeedService) fetchPage(ctx context.Context, page int) (models.PostPage, error) {
	posts, meta, err := s.DS.Posts(ctx, page, PageSize)
	if err != nil {
		return models.PostPage{}, err
	}
	return models.PostPage{Posts: posts, Meta: meta}, nil
}

// CreatePost publishes a post and invalidates the feed so the next read
// shows it.
func (s *DefaultFeedService) CreatePost(ctx context.Context, content, image string) (*models.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("post content is required")
	}
	post, err := s.DS.CreatePost(ctx, content, image)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(s.feedKey())
	return post, nil
}

// PostDetail returns a post with its comments through the cache.
func (s *DefaultFeedService) PostDetail(ctx context.Context, postID string) (*models.Post, error) {
	post, err := cache.Get(ctx, s.Cache, cache.PostKey(s.ChatID, postID), cache.StalePosts, func(ctx context.Context) (models.Post, error) {
		fetched, err := s.DS.PostDetail(ctx, postID)
		if err != nil {
			return models.Post{}, err
		}
		return *fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// AddComment appends a comment and invalidates the affected entries.
func (s *DefaultFeedService) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}
	comment, err := s.DS.AddComment(ctx, postID, content)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(cache.PostKey(s.ChatID, postID), s.feedKey())
	return comment, nil
}
