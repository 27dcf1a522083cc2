package devserver

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"zavio/datasource"
	"zavio/models"
	"zavio/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Server) handleCreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", "")
		return
	}
	start, err := utils.ClockToMinutes(req.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start time, expected HH:MM", "")
		return
	}
	if req.Duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)

	var field *models.Field
	for i := range s.fields {
		if s.fields[i].ID == req.FieldID {
			field = &s.fields[i]
			break
		}
	}
	if field == nil {
		utils.JSONError(c, http.StatusNotFound, "Field not found", "")
		return
	}

	// The requested slot must still be derivable from current state;
	// anything else means it was taken or never existed.
	available := false
	for _, slot := range datasource.BuildSlots(*field, req.Date, req.Duration, s.bookings) {
		if slot.StartTime == req.StartTime {
			available = true
			break
		}
	}
	if !available {
		utils.JSONError(c, http.StatusConflict, "The requested slot is no longer available", "")
		return
	}

	price := datasource.SlotPrice(*field, req.Duration)
	if acct.user.Credits < price {
		utils.JSONError(c, http.StatusPaymentRequired,
			fmt.Sprintf("Insufficient credits: need %.2f, have %.2f", price, acct.user.Credits), "")
		return
	}

	booking := models.Booking{
		ID:        uuid.New().String(),
		FieldID:   field.ID,
		FieldName: field.Name,
		UserID:    acct.user.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   utils.MinutesToClock(start + req.Duration),
		Duration:  req.Duration,
		Status:    models.BookingConfirmed,
		Price:     price,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.bookings = append(s.bookings, booking)
	acct.user.Credits = utils.RoundMoney(acct.user.Credits - price)

	s.logger.Info("booking created",
		zap.String("bookingID", booking.ID), zap.String("user", acct.user.ID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking, "user": acct.user})
}

func (s *Server) handleBookings(c *gin.Context) {
	status := c.Query("status")
	date := c.Query("date")

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)

	bookings := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID != acct.user.ID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		if date != "" && b.Date != date {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].StartTime < bookings[j].StartTime
	})
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (s *Server) handleCancelBooking(c *gin.Context) {
	bookingID := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)

	for i := range s.bookings {
		b := &s.bookings[i]
		if b.ID != bookingID || b.UserID != acct.user.ID {
			continue
		}
		if b.Status == models.BookingCancelled {
			utils.JSONError(c, http.StatusConflict, "Booking is already cancelled", "")
			return
		}
		b.Status = models.BookingCancelled
		acct.user.Credits = utils.RoundMoney(acct.user.Credits + b.Price)
		c.JSON(http.StatusOK, gin.H{"booking": *b, "refund": b.Price})
		return
	}
	utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
}

func (s *Server) handleValidateQR(c *gin.Context) {
	code := c.Param("code")

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentUser(c)

	for _, f := range s.fields {
		if f.QRCodeID != code {
			continue
		}
		now := time.Now()
		date := now.Format("2006-01-02")
		minutes := now.Hour()*60 + now.Minute()
		for _, b := range s.bookings {
			if b.FieldID != f.ID || b.UserID != acct.user.ID || b.Date != date {
				continue
			}
			if b.Status != models.BookingConfirmed {
				continue
			}
			start, err := utils.ClockToMinutes(b.StartTime)
			if err != nil {
				continue
			}
			if minutes >= start && minutes < start+b.Duration {
				booking := b
				c.JSON(http.StatusOK, models.QRValidation{
					AccessGranted: true,
					Message:       "Access granted, enjoy your game",
					Field:         f,
					Booking:       &booking,
				})
				return
			}
		}
		c.JSON(http.StatusOK, models.QRValidation{
			AccessGranted: false,
			Message:       "No active booking for this venue right now",
			Field:         f,
		})
		return
	}
	utils.JSONError(c, http.StatusNotFound, "Venue not found", "")
}
