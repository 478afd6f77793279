package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MessageType string

const (
	MessageText     MessageType = "TEXT"
	MessageVideo    MessageType = "VIDEO"
	MessageImage    MessageType = "IMAGE"
	MessageDocument MessageType = "DOCUMENT"
)

type Message struct {
	gorm.Model
	ConsultationID uint           `json:"consultation_id"`
	SenderID       uint           `json:"sender_id"`
	Type           MessageType    `gorm:"size:16;default:TEXT" json:"type"`
	Content        string         `gorm:"type:text" json:"content"`
	Attachments    datatypes.JSON `json:"attachments"`
	IsRead         bool           `json:"is_read"`
	ReadAt         *time.Time     `json:"read_at" gorm:"default:null"`
}

// CountUnreadMessages counts unread messages addressed to the user:
// messages in consultations the user belongs to, written by the other
// party, not yet marked read.
func CountUnreadMessages(userID uint) (int64, error) {
	var consultationIDs []uint
	if err := DB.Model(&Consultation{}).
		Where("patient_id = ? OR doctor_id = ?", userID, userID).
		Select("id").Find(&consultationIDs).Error; err != nil {
		return 0, err
	}

	if len(consultationIDs) == 0 {
		return 0, nil
	}

	var count int64
	if err := DB.Model(&Message{}).
		Where("consultation_id IN ? AND sender_id <> ? AND is_read = ?", consultationIDs, userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
