package datasource

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"zavio/models"
	"zavio/store"
	"zavio/utils"

	"github.com/google/uuid"
)

// Local is the legacy offline generation: seeded mock data, mutations
// applied in memory and persisted straight to the key-value store under the
// local-mode bookings/posts keys. There is no network and no real auth.
type Local struct {
	mu       sync.Mutex
	session  *store.Session
	user     models.User
	fields   []models.Field
	posts    []models.Post
	bookings []models.Booking
	// liked tracks the current user's likes by post/comment id.
	liked map[string]bool
}

// NewLocal seeds the offline generation, reloading any posts and bookings a
// previous run persisted.
func NewLocal(ctx context.Context, session *store.Session) (*Local, error) {
	l := &Local{
		session: session,
		user:    SeedUser(),
		fields:  SeedFields(),
		posts:   SeedPosts(),
		liked:   make(map[string]bool),
	}
	if session != nil {
		if user, err := session.User(ctx); err == nil && user != nil {
			l.user = *user
		}
		if posts, err := session.Posts(ctx); err == nil && len(posts) > 0 {
			l.posts = posts
		}
		if bookings, err := session.Bookings(ctx); err == nil {
			l.bookings = bookings
		}
	}
	return l, nil
}

func (l *Local) persist(ctx context.Context) {
	if l.session == nil {
		return
	}
	// Best effort: the in-memory state stays authoritative for this run.
	_ = l.session.SetPosts(ctx, l.posts)
	_ = l.session.SetBookings(ctx, l.bookings)
	user := l.user
	_ = l.session.SetUser(ctx, &user)
}

func (l *Local) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	user := l.user
	return &models.Session{Token: "local-session", User: &user}, nil
}

func (l *Local) Register(ctx context.Context, email, password, name, phone string) (*models.Session, error) {
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("email, password and name are required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.user = models.User{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Credits: 0,
	}
	l.persist(ctx)
	user := l.user
	return &models.Session{Token: "local-session", User: &user}, nil
}

func (l *Local) Profile(ctx context.Context) (*models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	user := l.user
	return &user, nil
}

func (l *Local) PublicProfile(ctx context.Context, userID string) (*models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if userID == l.user.ID {
		user := l.user
		return &user, nil
	}
	for _, p := range l.posts {
		if p.UserID == userID {
			return &models.User{ID: p.UserID, Name: p.UserName, Avatar: p.UserAvatar}, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", userID)
}

func (l *Local) UpdateInterests(ctx context.Context, interests []string) (*models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.user.Interests = append([]string(nil), interests...)
	l.persist(ctx)
	user := l.user
	return &user, nil
}

func (l *Local) TopUpCredits(ctx context.Context, amount float64) (*models.User, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("top-up amount must be positive")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.user.Credits = utils.RoundMoney(l.user.Credits + amount)
	l.persist(ctx)
	user := l.user
	return &user, nil
}

func (l *Local) Sports(ctx context.Context) ([]string, error) {
	return SeedSports(), nil
}

func (l *Local) Fields(ctx context.Context) ([]models.Field, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Field(nil), l.fields...), nil
}

func (l *Local) FieldDetail(ctx context.Context, fieldID int64) (*models.Field, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	field, ok := l.findField(fieldID)
	if !ok {
		return nil, fmt.Errorf("venue not found")
	}
	return &field, nil
}

func (l *Local) findField(fieldID int64) (models.Field, bool) {
	for _, f := range l.fields {
		if f.ID == fieldID {
			return f, true
		}
	}
	return models.Field{}, false
}

func (l *Local) Availability(ctx context.Context, fieldID int64, date string, duration int) ([]models.AvailableSlot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	field, ok := l.findField(fieldID)
	if !ok {
		return nil, fmt.Errorf("venue not found")
	}
	return BuildSlots(field, date, duration, l.bookings), nil
}

func (l *Local) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, *models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	field, ok := l.findField(req.FieldID)
	if !ok {
		return nil, nil, fmt.Errorf("venue not found")
	}
	start, err := utils.ClockToMinutes(req.StartTime)
	if err != nil {
		return nil, nil, err
	}
	if overlapsBooking(req.FieldID, req.Date, start, start+req.Duration, l.bookings) {
		return nil, nil, fmt.Errorf("slot is no longer available")
	}

	price := SlotPrice(field, req.Duration)
	if l.user.Credits < price {
		return nil, nil, fmt.Errorf("insufficient credits: need %.2f, have %.2f", price, l.user.Credits)
	}

	endTime, err := utils.EndClock(req.StartTime, req.Duration)
	if err != nil {
		return nil, nil, err
	}
	booking := models.Booking{
		ID:        uuid.New().String(),
		FieldID:   field.ID,
		FieldName: field.Name,
		UserID:    l.user.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   endTime,
		Duration:  req.Duration,
		Status:    models.BookingConfirmed,
		Price:     price,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	l.user.Credits = utils.RoundMoney(l.user.Credits - price)
	l.bookings = append(l.bookings, booking)
	l.persist(ctx)

	user := l.user
	return &booking, &user, nil
}

func (l *Local) Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Booking
	for _, b := range l.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (l *Local) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.bookings {
		if l.bookings[i].ID != bookingID {
			continue
		}
		if l.bookings[i].Status == models.BookingCancelled {
			return nil, 0, fmt.Errorf("booking is already cancelled")
		}
		l.bookings[i].Status = models.BookingCancelled
		refund := l.bookings[i].Price
		l.user.Credits = utils.RoundMoney(l.user.Credits + refund)
		l.persist(ctx)
		booking := l.bookings[i]
		return &booking, refund, nil
	}
	return nil, 0, fmt.Errorf("booking not found")
}

func (l *Local) ValidateQR(ctx context.Context, qrCodeID string) (*models.QRValidation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.fields {
		if f.QRCodeID != qrCodeID {
			continue
		}
		now := time.Now()
		date := now.Format("2006-01-02")
		minutes := now.Hour()*60 + now.Minute()
		for _, b := range l.bookings {
			if b.FieldID != f.ID || b.Date != date || b.Status != models.BookingConfirmed {
				continue
			}
			start, err := utils.ClockToMinutes(b.StartTime)
			if err != nil {
				continue
			}
			if minutes >= start && minutes < start+b.Duration {
				booking := b
				return &models.QRValidation{
					AccessGranted: true,
					Message:       "Access granted, enjoy your game",
					Field:         f,
					Booking:       &booking,
				}, nil
			}
		}
		return &models.QRValidation{
			AccessGranted: false,
			Message:       "No active booking for this venue right now",
			Field:         f,
		}, nil
	}
	return nil, fmt.Errorf("venue not found")
}

func (l *Local) Posts(ctx context.Context, page, limit int) ([]models.Post, models.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	total := len(l.posts)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	meta := models.PageMeta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}

	startIdx := (page - 1) * limit
	if startIdx >= total {
		return nil, meta, nil
	}
	endIdx := startIdx + limit
	if endIdx > total {
		endIdx = total
	}
	out := make([]models.Post, 0, endIdx-startIdx)
	for _, p := range l.posts[startIdx:endIdx] {
		out = append(out, l.decorate(p))
	}
	return out, meta, nil
}

// decorate stamps the current user's like state onto a copy of the post.
func (l *Local) decorate(p models.Post) models.Post {
	p.LikedByMe = l.liked[p.ID]
	comments := make([]models.Comment, len(p.Comments))
	for i, c := range p.Comments {
		c.LikedByMe = l.liked[c.ID]
		comments[i] = c
	}
	p.Comments = comments
	return p
}

func (l *Local) CreatePost(ctx context.Context, content, image string) (*models.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("post content is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	post := models.Post{
		ID:         uuid.New().String(),
		UserID:     l.user.ID,
		UserName:   l.user.Name,
		UserAvatar: l.user.Avatar,
		Content:    content,
		Image:      image,
		Timestamp:  time.Now().Unix(),
	}
	l.posts = append([]models.Post{post}, l.posts...)
	l.persist(ctx)
	return &post, nil
}

func (l *Local) PostDetail(ctx context.Context, postID string) (*models.Post, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.posts {
		if p.ID == postID {
			post := l.decorate(p)
			return &post, nil
		}
	}
	return nil, fmt.Errorf("post not found")
}

func (l *Local) LikePost(ctx context.Context, postID string) (models.LikeResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.posts {
		if l.posts[i].ID != postID {
			continue
		}
		if l.liked[postID] {
			delete(l.liked, postID)
			if l.posts[i].Likes > 0 {
				l.posts[i].Likes--
			}
		} else {
			l.liked[postID] = true
			l.posts[i].Likes++
		}
		l.persist(ctx)
		return models.LikeResult{Liked: l.liked[postID], LikesCount: l.posts[i].Likes}, nil
	}
	return models.LikeResult{}, fmt.Errorf("post not found")
}

func (l *Local) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.posts {
		if l.posts[i].ID != postID {
			continue
		}
		comment := models.Comment{
			ID:         uuid.New().String(),
			PostID:     postID,
			UserID:     l.user.ID,
			UserName:   l.user.Name,
			UserAvatar: l.user.Avatar,
			Content:    content,
			Timestamp:  time.Now().Unix(),
		}
		l.posts[i].Comments = append(l.posts[i].Comments, comment)
		l.persist(ctx)
		return &comment, nil
	}
	return nil, fmt.Errorf("post not found")
}

func (l *Local) LikeComment(ctx context.Context, commentID string) (models.LikeResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.posts {
		for j := range l.posts[i].Comments {
			c := &l.posts[i].Comments[j]
			if c.ID != commentID {
				continue
			}
			if l.liked[commentID] {
				delete(l.liked, commentID)
				if c.Likes > 0 {
					c.Likes--
				}
			} else {
				l.liked[commentID] = true
				c.Likes++
			}
			l.persist(ctx)
			return models.LikeResult{Liked: l.liked[commentID], LikesCount: c.Likes}, nil
		}
	}
	return models.LikeResult{}, fmt.Errorf("comment not found")
}
