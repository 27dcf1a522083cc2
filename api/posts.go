package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"zavio/models"
)

type postsResponse struct {
	Data []models.Post   `json:"data"`
	Meta models.PageMeta `json:"meta"`
}

type createPostResponse struct {
	Success bool        `json:"success"`
	Data    models.Post `json:"data"`
}

type likeResponse struct {
	Success    bool `json:"success"`
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type commentResponse struct {
	Success bool           `json:"success"`
	Data    models.Comment `json:"data"`
}

// Posts fetches one page of the feed.
func (c *Client) Posts(ctx context.Context, page, limit int) ([]models.Post, models.PageMeta, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	var resp postsResponse
	if err := c.get(ctx, "/api/posts", query, &resp); err != nil {
		return nil, models.PageMeta{}, err
	}
	return resp.Data, resp.Meta, nil
}

// CreatePost publishes a new post. The image is an opaque URI.
func (c *Client) CreatePost(ctx context.Context, content, image string) (*models.Post, error) {
	body := map[string]string{"content": content}
	if image != "" {
		body["image"] = image
	}
	var resp createPostResponse
	if err := c.post(ctx, "/api/posts", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// PostDetail fetches a single post with its comments.
func (c *Client) PostDetail(ctx context.Context, postID string) (*models.Post, error) {
	var resp models.Post
	if err := c.get(ctx, fmt.Sprintf("/api/posts/%s", url.PathEscape(postID)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LikePost toggles the caller's like on a post and returns the
// server-authoritative state.
func (c *Client) LikePost(ctx context.Context, postID string) (models.LikeResult, error) {
	var resp likeResponse
	if err := c.post(ctx, fmt.Sprintf("/api/posts/%s/like", url.PathEscape(postID)), nil, &resp); err != nil {
		return models.LikeResult{}, err
	}
	return models.LikeResult{Liked: resp.Liked, LikesCount: resp.LikesCount}, nil
}

// AddComment adds a comment to a post.
func (c *Client) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	body := map[string]string{"content": content}
	var resp commentResponse
	if err := c.post(ctx, fmt.Sprintf("/api/posts/%s/comments", url.PathEscape(postID)), body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// LikeComment toggles the caller's like on a comment.
func (c *Client) LikeComment(ctx context.Context, commentID string) (models.LikeResult, error) {
	var resp likeResponse
	if err := c.post(ctx, fmt.Sprintf("/api/comments/%s/like", url.PathEscape(commentID)), nil, &resp); err != nil {
		return models.LikeResult{}, err
	}
	return models.LikeResult{Liked: resp.Liked, LikesCount: resp.LikesCount}, nil
}
