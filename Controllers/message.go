package Controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/A11we11/serenity/FirebaseMessaging"
	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Notifications"
	"github.com/A11we11/serenity/SSE"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// isParticipant reports whether the user is the consultation's patient
// or its assigned doctor. Thread membership is by identity, not role.
func isParticipant(consultation *Models.Consultation, userID uint) bool {
	if consultation.PatientID == userID {
		return true
	}
	return consultation.DoctorID != nil && *consultation.DoctorID == userID
}

func CreateMessage(c *gin.Context) {
	userID, _ := identity(c)

	var input struct {
		ConsultationID uint               `json:"consultation_id" binding:"required"`
		Type           Models.MessageType `json:"type"`
		Content        string             `json:"content" binding:"required"`
		Attachments    []string           `json:"attachments"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var consultation Models.Consultation
	if err := Models.DB.First(&consultation, input.ConsultationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !isParticipant(&consultation, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this consultation"})
		return
	}

	message := Models.Message{
		ConsultationID: consultation.ID,
		SenderID:       userID,
		Type:           input.Type,
		Content:        input.Content,
		Attachments:    datatypes.JSON("[]"),
	}
	if message.Type == "" {
		message.Type = Models.MessageText
	}
	if input.Attachments != nil {
		message.Attachments, _ = json.Marshal(input.Attachments)
	}

	if err := Models.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sender, _ := Models.GetUserByID(userID)

	// Notify the other party of the thread.
	var recipientID uint
	if consultation.PatientID == userID {
		if consultation.DoctorID != nil {
			recipientID = *consultation.DoctorID
		}
	} else {
		recipientID = consultation.PatientID
	}

	if recipientID != 0 {
		if recipient, err := Models.GetUserByID(recipientID); err == nil {
			if recipient.Phone != "" {
				Notifications.SendMessageNotification(recipient, sender.Name, consultation.ID)
			}
			FirebaseMessaging.PushToUser(recipient.ID, "New message", sender.Name+" sent you a message")
		}
	}
	SSE.Broadcaster.Broadcast("refresh")

	c.JSON(http.StatusOK, gin.H{"message": message, "sender": sender.Summary()})
}

func FetchConsultationMessages(c *gin.Context) {
	consultationID, ok := parseIDParam(c, "consultationId")
	if !ok {
		return
	}
	userID, _ := identity(c)

	var consultation Models.Consultation
	if err := Models.DB.First(&consultation, consultationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !isParticipant(&consultation, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this consultation"})
		return
	}

	var messages []Models.Message
	if err := Models.DB.Where("consultation_id = ?", consultation.ID).Order("created_at asc").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := map[uint]Models.UserSummary{}
	output := make([]gin.H, 0, len(messages))
	for _, message := range messages {
		output = append(output, gin.H{
			"message": message,
			"sender":  summaryByID(message.SenderID, summaries),
		})
	}

	c.JSON(http.StatusOK, output)
}

func MarkMessageAsRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, _ := identity(c)

	var message Models.Message
	if err := Models.DB.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// The sender cannot mark their own message read.
	if message.SenderID == userID {
		c.JSON(http.StatusOK, message)
		return
	}

	var consultation Models.Consultation
	if err := Models.DB.First(&consultation, message.ConsultationID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !isParticipant(&consultation, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this message"})
		return
	}

	now := time.Now()
	message.IsRead = true
	message.ReadAt = &now

	if err := Models.DB.Save(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, message)
}

func FetchUnreadCount(c *gin.Context) {
	userID, _ := identity(c)

	count, err := Models.CountUnreadMessages(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
