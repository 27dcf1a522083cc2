// Package devserver is a self-contained stand-in for the Zavio backend:
// the full REST surface the client speaks, backed by in-memory state. It
// exists for local development and for exercising the gateway in tests; it
// is not the production backend.
package devserver

import (
	"sync"
	"time"

	"zavio/datasource"
	"zavio/middleware"
	"zavio/models"
	"zavio/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user         models.User
	passwordHash []byte
}

// Server holds the stub backend's state.
type Server struct {
	mu       sync.Mutex
	logger   *zap.Logger
	accounts map[string]*account // by user id
	byEmail  map[string]string   // email -> user id
	tokens   map[string]string   // bearer token -> user id
	fields   []models.Field
	bookings []models.Booking
	posts    []models.Post
	likes    map[string]map[string]bool // user id -> liked post/comment ids
}

// NewServer seeds the stub with the demo catalogue and one demo account
// (password "password").
func NewServer(logger *zap.Logger) *Server {
	s := &Server{
		logger:   logger,
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
		tokens:   make(map[string]string),
		fields:   datasource.SeedFields(),
		posts:    datasource.SeedPosts(),
		likes:    make(map[string]map[string]bool),
	}
	demo := datasource.SeedUser()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	s.accounts[demo.ID] = &account{user: demo, passwordHash: hash}
	s.byEmail[demo.Email] = demo.ID
	return s
}

// Router assembles the gin engine with the standard middleware chain.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	auth := middleware.BearerAuthMiddleware(s.resolveToken)

	users := router.Group("/api/users")
	{
		users.POST("/auth/login", s.handleLogin)
		users.POST("/auth/register", s.handleRegister)
		users.GET("/auth/profile", auth, s.handleProfile)
		users.PATCH("/auth/profile", auth, s.handleUpdateInterests)
		users.POST("/credits/top-up", auth, s.handleTopUp)
		users.GET("/me/activity", auth, s.handleActivity)
		users.GET("/:id/profile", auth, s.handlePublicProfile)
	}

	router.GET("/api/sports", s.handleSports)

	mobile := router.Group("/api/mobile", auth)
	{
		mobile.GET("/fields", s.handleFields)
		mobile.GET("/fields/:id", s.handleFieldDetail)
		mobile.GET("/fields/:id/availability", s.handleAvailability)
		mobile.POST("/bookings", s.handleCreateBooking)
		mobile.GET("/bookings", s.handleBookings)
		mobile.PATCH("/bookings/:id/cancel", s.handleCancelBooking)
		mobile.GET("/qr/:code", s.handleValidateQR)
	}

	posts := router.Group("/api", auth)
	{
		posts.GET("/posts", s.handlePosts)
		posts.POST("/posts", s.handleCreatePost)
		posts.GET("/posts/:id", s.handlePostDetail)
		posts.POST("/posts/:id/like", s.handleLikePost)
		posts.POST("/posts/:id/comments", s.handleAddComment)
		posts.POST("/comments/:id/like", s.handleLikeComment)
	}

	return router
}

func (s *Server) resolveToken(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	return userID, ok
}

// currentUser returns the account resolved by the auth middleware.
func (s *Server) currentUser(c *gin.Context) *account {
	userID := c.GetString("userID")
	return s.accounts[userID]
}

func (s *Server) userLikes(userID string) map[string]bool {
	liked, ok := s.likes[userID]
	if !ok {
		liked = make(map[string]bool)
		s.likes[userID] = liked
	}
	return liked
}
