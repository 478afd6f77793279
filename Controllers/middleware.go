package Controllers

import (
	"github.com/A11we11/serenity/Models"

	"github.com/gin-gonic/gin"
)

// identity reads the {id, role} pair stored by Middleware.SetIdentity.
func identity(c *gin.Context) (uint, Models.Role) {
	userID, _ := c.Get("userID")
	userRole, _ := c.Get("userRole")

	uid, _ := userID.(uint)
	role, _ := userRole.(Models.Role)
	return uid, role
}
