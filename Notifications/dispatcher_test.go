package Notifications

import (
	"testing"

	"github.com/A11we11/serenity/Constants"
	"github.com/A11we11/serenity/Models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	Models.Migrate(db)
	Models.DB = db

	Constants.MessagingGoService = ""
}

func TestSendSMS_NoGatewayDegradesToMockRecord(t *testing.T) {
	setupTestDB(t)

	SendSMS("+201234567890", "hello", 42)

	var notifications []Models.Notification
	assert.NoError(t, Models.DB.Find(&notifications).Error)
	assert.Len(t, notifications, 1)

	row := notifications[0]
	assert.Equal(t, uint(42), row.UserID)
	assert.Equal(t, Models.ChannelSMS, row.Type)
	assert.Equal(t, "+201234567890", row.Recipient)
	assert.Equal(t, "hello", row.Message)
	assert.False(t, row.Sent)
	assert.Nil(t, row.SentAt)
}

func TestSendWhatsApp_RecordsChannel(t *testing.T) {
	setupTestDB(t)

	SendWhatsApp("+201234567890", "hi there", 7)

	var row Models.Notification
	assert.NoError(t, Models.DB.First(&row).Error)
	assert.Equal(t, Models.ChannelWhatsApp, row.Type)
	assert.False(t, row.Sent)
}

func TestStatusMessage_KnownStatuses(t *testing.T) {
	cases := map[Models.ConsultationStatus]string{
		Models.StatusInProgress:       "Your consultation is now being reviewed by your doctor.",
		Models.StatusAwaitingResponse: "Your doctor has responded! Check the app for their recommendations.",
		Models.StatusCompleted:        "Your consultation has been completed. You can view the summary in the app.",
		Models.StatusCancelled:        "Your consultation has been cancelled. If you need help, please create a new consultation.",
	}

	for status, expected := range cases {
		message := StatusMessage(status, 12)
		assert.Contains(t, message, expected)
		assert.Contains(t, message, "Consultation ID: 12")
	}
}

func TestStatusMessage_FallbackForUnknownStatus(t *testing.T) {
	message := StatusMessage(Models.ConsultationStatus("ARCHIVED"), 99)
	assert.Contains(t, message, "Your consultation status has been updated.")
	assert.Contains(t, message, "Consultation ID: 99")
}

func TestTemplates_RecordAuditRows(t *testing.T) {
	setupTestDB(t)

	patient := Models.User{Name: "paula", Phone: "+201111111111"}
	patient.ID = 5

	SendConsultationConfirmation(patient, 31)
	SendDoctorAssigned(patient, 31, "Dr. Dana")
	SendMessageNotification(patient, "Dr. Dana", 31)

	var count int64
	assert.NoError(t, Models.DB.Model(&Models.Notification{}).Where("user_id = ?", 5).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	var assigned Models.Notification
	assert.NoError(t, Models.DB.Where("type = ?", Models.ChannelWhatsApp).First(&assigned).Error)
	assert.Contains(t, assigned.Message, "Dr. Dana")
}
