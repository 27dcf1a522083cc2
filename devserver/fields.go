package devserver

import (
	"net/http"
	"strconv"
	"time"

	"zavio/datasource"
	"zavio/utils"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleFields(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"fields": s.fields, "count": len(s.fields)})
}

func (s *Server) handleFieldDetail(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid field id", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.fields {
		if f.ID == fieldID {
			c.JSON(http.StatusOK, gin.H{"field": f})
			return
		}
	}
	utils.JSONError(c, http.StatusNotFound, "Field not found", "")
}

func (s *Server) handleAvailability(c *gin.Context) {
	fieldID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid field id", "")
		return
	}
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid or missing date, expected YYYY-MM-DD", "")
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid or missing duration", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.fields {
		if f.ID == fieldID {
			slots := datasource.BuildSlots(f, date, duration, s.bookings)
			c.JSON(http.StatusOK, gin.H{"availableSlots": slots})
			return
		}
	}
	utils.JSONError(c, http.StatusNotFound, "Field not found", "")
}
