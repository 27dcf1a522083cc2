package devserver

import (
	"net/http"
	"sort"
	"time"

	"zavio/models"
	"zavio/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// decoratePost stamps the caller's like state onto a post and its comments.
func (s *Server) decoratePost(p models.Post, userID string) models.Post {
	liked := s.userLikes(userID)
	p.LikedByMe = liked[p.ID]
	if len(p.Comments) > 0 {
		comments := make([]models.Comment, len(p.Comments))
		copy(comments, p.Comments)
		for i := range comments {
			comments[i].LikedByMe = liked[comments[i].ID]
		}
		p.Comments = comments
	}
	return p
}

func (s *Server) handlePosts(c *gin.Context) {
	page, limit := pageParams(c, 1, 20)

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)

	ordered := make([]models.Post, len(s.posts))
	copy(ordered, s.posts)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Timestamp > ordered[j].Timestamp
	})
	window, meta := paginate(ordered, page, limit)
	for i := range window {
		window[i] = s.decoratePost(window[i], acct.user.ID)
	}
	c.JSON(http.StatusOK, gin.H{"data": window, "meta": meta})
}

func (s *Server) handleCreatePost(c *gin.Context) {
	var payload struct {
		Content string `json:"content"`
		Image   string `json:"image"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if payload.Content == "" {
		utils.JSONError(c, http.StatusBadRequest, "Post content is required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)

	post := models.Post{
		ID:         uuid.New().String(),
		UserID:     acct.user.ID,
		UserName:   acct.user.Name,
		UserAvatar: acct.user.Avatar,
		Content:    payload.Content,
		Image:      payload.Image,
		Timestamp:  time.Now().Unix(),
	}
	s.posts = append(s.posts, post)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": post})
}

func (s *Server) handlePostDetail(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)

	for _, p := range s.posts {
		if p.ID == c.Param("id") {
			c.JSON(http.StatusOK, s.decoratePost(p, acct.user.ID))
			return
		}
	}
	utils.JSONError(c, http.StatusNotFound, "Post not found", "")
}

func (s *Server) handleLikePost(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)
	liked := s.userLikes(acct.user.ID)

	for i := range s.posts {
		p := &s.posts[i]
		if p.ID != c.Param("id") {
			continue
		}
		if liked[p.ID] {
			delete(liked, p.ID)
			if p.Likes > 0 {
				p.Likes--
			}
		} else {
			liked[p.ID] = true
			p.Likes++
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "liked": liked[p.ID], "likesCount": p.Likes})
		return
	}
	utils.JSONError(c, http.StatusNotFound, "Post not found", "")
}

func (s *Server) handleAddComment(c *gin.Context) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if payload.Content == "" {
		utils.JSONError(c, http.StatusBadRequest, "Comment content is required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)

	for i := range s.posts {
		p := &s.posts[i]
		if p.ID != c.Param("id") {
			continue
		}
		comment := models.Comment{
			ID:         uuid.New().String(),
			PostID:     p.ID,
			UserID:     acct.user.ID,
			UserName:   acct.user.Name,
			UserAvatar: acct.user.Avatar,
			Content:    payload.Content,
			Timestamp:  time.Now().Unix(),
		}
		p.Comments = append(p.Comments, comment)
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment})
		return
	}
	utils.JSONError(c, http.StatusNotFound, "Post not found", "")
}

func (s *Server) handleLikeComment(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)
	liked := s.userLikes(acct.user.ID)

	for i := range s.posts {
		for j := range s.posts[i].Comments {
			cm := &s.posts[i].Comments[j]
			if cm.ID != c.Param("id") {
				continue
			}
			if liked[cm.ID] {
				delete(liked, cm.ID)
				if cm.Likes > 0 {
					cm.Likes--
				}
			} else {
				liked[cm.ID] = true
				cm.Likes++
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "liked": liked[cm.ID], "likesCount": cm.Likes})
			return
		}
	}
	utils.JSONError(c, http.StatusNotFound, "Comment not found", "")
}
