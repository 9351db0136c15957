package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	staffRepo "luggagelite/database/repository/staff"
	"luggagelite/utils"
)

const staffTokenTTL = 12 * time.Hour

// StaffAuthHandler issues staff JWTs. Customer tokens come from the
// separate identity service; this service only authenticates counter staff.
type StaffAuthHandler struct {
	Repo staffRepo.StaffRepository
}

// LoginHandler handles POST /staff/login.
func (h *StaffAuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	staff, err := h.Repo.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(input.Password)); err != nil {
		logger.Warn("staff login failed", zap.String("email", input.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(staff.ID, utils.TokenRoleStaff, staffTokenTTL)
	if err != nil {
		logger.Error("failed to sign staff token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"staff": gin.H{
			"id":         staff.ID,
			"name":       staff.Name,
			"station_id": staff.StationID,
			"role":       staff.Role,
		},
	})
}
