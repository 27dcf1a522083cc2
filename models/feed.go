package models

// Comment is a reply on a post. LikedByMe is computed server-side for the
// authenticated caller.
type Comment struct {
	ID         string `json:"id"`
	PostID     string `json:"postId,omitempty"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar,omitempty"`
	Content    string `json:"content"`
	Timestamp  int64  `json:"timestamp"`
	Likes      int    `json:"likes"`
	LikedByMe  bool   `json:"likedByMe"`
}

// Post is a social feed entry.
type Post struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar,omitempty"`
	Content    string    `json:"content"`
	Image      string    `json:"image,omitempty"`
	Timestamp  int64     `json:"timestamp"`
	Likes      int       `json:"likes"`
	LikedByMe  bool      `json:"likedByMe"`
	Comments   []Comment `json:"comments,omitempty"`
}

// PageMeta describes a paginated listing.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PostPage is an accumulated feed window: every page fetched so far plus
// the meta of the most recent fetch.
type PostPage struct {
	Posts []Post   `json:"posts"`
	Meta  PageMeta `json:"meta"`
}

// Exhausted reports whether the server has no further pages.
func (p PostPage) Exhausted() bool {
	return p.Meta.TotalPages > 0 && p.Meta.Page >= p.Meta.TotalPages
}

// LikeResult is the server-authoritative outcome of a like toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}
