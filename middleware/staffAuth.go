package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	staffRepo "luggagelite/database/repository/staff"
	"luggagelite/models"
	"luggagelite/utils"
)

// JWTAuthStaffMiddleware authenticates counter staff requests. The token
// subject is resolved against the staff collection so the handler gets the
// live station assignment and role, not whatever the token was minted with.
// On success the staff record is stored in the context under "staff".
func JWTAuthStaffMiddleware(repo staffRepo.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil || subject == "" || role != utils.TokenRoleStaff {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		staff, err := repo.GetByID(c.Request.Context(), subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication error",
				"code":  0,
			})
			return
		}

		c.Set("staff", staff)
		c.Next()
	}
}

// StaffFromContext returns the staff record set by JWTAuthStaffMiddleware.
func StaffFromContext(c *gin.Context) *models.Staff {
	if v, ok := c.Get("staff"); ok {
		if staff, ok := v.(*models.Staff); ok {
			return staff
		}
	}
	return nil
}
