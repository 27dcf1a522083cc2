package feed

import (
	"context"

	"zavio/cache"
	"zavio/models"
)

// ToggleLikePost flips the like on a post optimistically: the feed entry is
// updated as if the call already succeeded, rolled back verbatim when it
// fails, and overwritten with the server-reported state when it succeeds.
func (s *DefaultFeedService) ToggleLikePost(ctx context.Context, postID string) (models.LikeResult, error) {
	result, err := cache.Optimistic(ctx, s.Cache, s.feedKey(),
		func(page models.PostPage) models.PostPage {
			return mapPosts(page, postID, toggleLike)
		},
		func(ctx context.Context) (models.LikeResult, error) {
			return s.DS.LikePost(ctx, postID)
		},
		func(page models.PostPage, res models.LikeResult) models.PostPage {
			return mapPosts(page, postID, func(p models.Post) models.Post {
				p.LikedByMe = res.Liked
				p.Likes = res.LikesCount
				return p
			})
		},
	)
	if err != nil {
		return models.LikeResult{}, err
	}

	// Keep a cached detail view consistent with the feed.
	detailKey := cache.PostKey(s.ChatID, postID)
	if detail, ok := cache.Lookup[models.Post](s.Cache, detailKey); ok {
		detail.LikedByMe = result.Liked
		detail.Likes = result.LikesCount
		s.Cache.Set(detailKey, detail)
	}
	return result, nil
}

// ToggleLikeComment flips the like on a comment within the cached post
// detail, with the same optimistic protocol.
func (s *DefaultFeedService) ToggleLikeComment(ctx context.Context, postID, commentID string) (models.LikeResult, error) {
	return cache.Optimistic(ctx, s.Cache, cache.PostKey(s.ChatID, postID),
		func(post models.Post) models.Post {
			return mapComments(post, commentID, toggleCommentLike)
		},
		func(ctx context.Context) (models.LikeResult, error) {
			return s.DS.LikeComment(ctx, commentID)
		},
		func(post models.Post, res models.LikeResult) models.Post {
			return mapComments(post, commentID, func(c models.Comment) models.Comment {
				c.LikedByMe = res.Liked
				c.Likes = res.LikesCount
				return c
			})
		},
	)
}

func toggleLike(p models.Post) models.Post {
	if p.LikedByMe {
		p.LikedByMe = false
		if p.Likes > 0 {
			p.Likes--
		}
	} else {
		p.LikedByMe = true
		p.Likes++
	}
	return p
}

func toggleCommentLike(c models.Comment) models.Comment {
	if c.LikedByMe {
		c.LikedByMe = false
		if c.Likes > 0 {
			c.Likes--
		}
	} else {
		c.LikedByMe = true
		c.Likes++
	}
	return c
}

// mapPosts returns a copy of page with fn applied to the matching post.
func mapPosts(page models.PostPage, postID string, fn func(models.Post) models.Post) models.PostPage {
	posts := make([]models.Post, len(page.Posts))
	for i, p := range page.Posts {
		if p.ID == postID {
			p = fn(p)
		}
		posts[i] = p
	}
	return models.PostPage{Posts: posts, Meta: page.Meta}
}

// mapComments returns a copy of post with fn applied to the matching comment.
func mapComments(post models.Post, commentID string, fn func(models.Comment) models.Comment) models.Post {
	comments := make([]models.Comment, len(post.Comments))
	for i, c := range post.Comments {
		if c.ID == commentID {
			c = fn(c)
		}
		comments[i] = c
	}
	post.Comments = comments
	return post
}
