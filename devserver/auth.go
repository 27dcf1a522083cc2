package devserver

import (
	"net/http"
	"time"

	"zavio/datasource"
	"zavio/models"
	"zavio/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if payload.Email == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.byEmail[payload.Email]
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}
	acct := s.accounts[userID]
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(payload.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}

	token := uuid.New().String()
	s.tokens[token] = userID
	c.JSON(http.StatusOK, gin.H{"token": token, "user": acct.user})
}

func (s *Server) handleRegister(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email, password and name are required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[payload.Email]; exists {
		utils.JSONError(c, http.StatusConflict, "An account with this email already exists", "")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create account", "")
		return
	}
	user := models.User{
		ID:         uuid.New().String(),
		Name:       payload.Name,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Credits:    0,
		JoinedDate: time.Now().Format("2006-01-02"),
	}
	s.accounts[user.ID] = &account{user: user, passwordHash: hash}
	s.byEmail[user.Email] = user.ID

	token := uuid.New().String()
	s.tokens[token] = user.ID
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (s *Server) handleProfile(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": acct.user})
}

func (s *Server) handleUpdateInterests(c *gin.Context) {
	var payload struct {
		Interests []string `json:"interests"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)
	acct.user.Interests = append([]string(nil), payload.Interests...)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": acct.user})
}

func (s *Server) handleTopUp(c *gin.Context) {
	var payload struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if payload.Amount <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Top-up amount must be positive", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)
	acct.user.Credits = utils.RoundMoney(acct.user.Credits + payload.Amount)
	c.JSON(http.StatusOK, gin.H{"message": "Credits added", "user": acct.user})
}

func (s *Server) handlePublicProfile(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[c.Param("id")]
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
		return
	}
	public := models.User{
		ID:        acct.user.ID,
		Name:      acct.user.Name,
		Avatar:    acct.user.Avatar,
		Interests: acct.user.Interests,
	}
	c.JSON(http.StatusOK, gin.H{"user": public})
}

func (s *Server) handleSports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": datasource.SeedSports()})
}

func (s *Server) handleActivity(c *gin.Context) {
	page, limit := pageParams(c, 1, 20)

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)
	var entries []models.ActivityEntry
	for _, b := range s.bookings {
		if b.UserID != acct.user.ID {
			continue
		}
		entries = append(entries, models.ActivityEntry{
			ID:        b.ID,
			Type:      "booking",
			Message:   b.FieldName + " on " + b.Date + " at " + b.StartTime,
			CreatedAt: b.CreatedAt,
		})
	}
	data, meta := paginate(entries, page, limit)
	c.JSON(http.StatusOK, gin.H{"data": data, "meta": meta})
}
