package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationChannel string

const (
	ChannelSMS      NotificationChannel = "SMS"
	ChannelWhatsApp NotificationChannel = "WHATSAPP"
	ChannelEmail    NotificationChannel = "EMAIL"
)

// Notification is an append-only delivery audit row. Only the
// dispatcher that created a row ever writes it.
type Notification struct {
	gorm.Model
	UserID    uint                `json:"user_id"`
	Type      NotificationChannel `gorm:"size:16" json:"type"`
	Recipient string              `json:"recipient"`
	Message   string              `gorm:"type:text" json:"message"`
	Sent      bool                `json:"sent"`
	SentAt    *time.Time          `json:"sent_at" gorm:"default:null"`
	Metadata  datatypes.JSON      `json:"metadata"`
}
