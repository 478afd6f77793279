package Notifications

import (
	"encoding/json"
	"log"
	"time"

	"github.com/A11we11/serenity/Constants"
	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Whatsapp"
)

// The dispatcher is fire-and-forget: delivery failures are logged and
// recorded on the audit row, never surfaced to the operation that
// triggered the send. When no gateway is configured the send degrades
// to a local audit row marked as not delivered.

func SendSMS(recipient, message string, userID uint) {
	send(Models.ChannelSMS, recipient, message, userID)
}

func SendWhatsApp(recipient, message string, userID uint) {
	send(Models.ChannelWhatsApp, recipient, message, userID)
}

func send(channel Models.NotificationChannel, recipient, message string, userID uint) {
	if Constants.MessagingGoService == "" {
		log.Printf("[%s Mock] To: %s, Message: %s", channel, recipient, message)
		record(channel, recipient, message, userID, false, map[string]interface{}{"mock": true})
		return
	}

	var err error
	switch channel {
	case Models.ChannelWhatsApp:
		err = Whatsapp.SendMessage(recipient, message)
	default:
		err = Whatsapp.SendSMS(recipient, message)
	}

	if err != nil {
		log.Printf("Failed to send %s to %s: %v", channel, recipient, err)
		record(channel, recipient, message, userID, false, map[string]interface{}{"error": err.Error()})
		return
	}

	record(channel, recipient, message, userID, true, map[string]interface{}{"gateway": Constants.MessagingGoService})
}

func record(channel Models.NotificationChannel, recipient, message string, userID uint, sent bool, metadata map[string]interface{}) {
	notification := Models.Notification{
		UserID:    userID,
		Type:      channel,
		Recipient: recipient,
		Message:   message,
		Sent:      sent,
	}
	if sent {
		now := time.Now()
		notification.SentAt = &now
	}
	if raw, err := json.Marshal(metadata); err == nil {
		notification.Metadata = raw
	}

	if err := Models.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to record notification for user %d: %v", userID, err)
	}
}
