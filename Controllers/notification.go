package Controllers

import (
	"net/http"

	"github.com/A11we11/serenity/Models"

	"github.com/gin-gonic/gin"
)

// FetchNotificationHistory returns the caller's 50 most recent
// notification audit rows.
func FetchNotificationHistory(c *gin.Context) {
	userID, _ := identity(c)

	var notifications []Models.Notification
	if err := Models.DB.Where("user_id = ?", userID).Order("created_at desc").Limit(50).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, notifications)
}
