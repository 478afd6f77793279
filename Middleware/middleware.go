package Middleware

import (
	"net/http"

	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Utils/Token"

	"github.com/gin-gonic/gin"
)

func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := Token.TokenValid(c)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Token Invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetIdentity loads the authenticated user and stores {id, role} in the
// context for the controllers.
func SetIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := Token.ExtractTokenID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := Models.GetUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if user.IsFrozen {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User Frozen"})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", user.Role)
		c.Next()
	}
}

func PermissionCheckAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists || role.(Models.Role) != Models.RoleAdmin {
			c.String(http.StatusForbidden, "Unauthorized Not Enough Permission")
			c.Abort()
			return
		}
		c.Next()
	}
}
