package Notifications

import (
	"fmt"
	"time"

	"github.com/A11we11/serenity/Models"
)

func SendConsultationConfirmation(patient Models.User, consultationID uint) {
	message := fmt.Sprintf("Your consultation has been submitted successfully!\n\nConsultation ID: %d\n\nA doctor will review your case shortly. You'll receive updates via SMS and in the app.", consultationID)

	SendSMS(patient.Phone, message, patient.ID)
}

func SendDoctorAssigned(patient Models.User, consultationID uint, doctorName string) {
	message := fmt.Sprintf("Good news! %s has been assigned to your consultation.\n\nConsultation ID: %d\n\nThey will review your case and respond soon.", doctorName, consultationID)

	SendWhatsApp(patient.Phone, message, patient.ID)
}

// StatusMessage maps a consultation status to the patient-facing text
// sent when the status changes. Unknown values get a generic fallback.
func StatusMessage(status Models.ConsultationStatus, consultationID uint) string {
	var text string
	switch status {
	case Models.StatusInProgress:
		text = "Your consultation is now being reviewed by your doctor."
	case Models.StatusAwaitingResponse:
		text = "Your doctor has responded! Check the app for their recommendations."
	case Models.StatusCompleted:
		text = "Your consultation has been completed. You can view the summary in the app."
	case Models.StatusCancelled:
		text = "Your consultation has been cancelled. If you need help, please create a new consultation."
	default:
		text = "Your consultation status has been updated."
	}
	return fmt.Sprintf("%s\n\nConsultation ID: %d", text, consultationID)
}

func SendStatusUpdate(patient Models.User, consultationID uint, status Models.ConsultationStatus) {
	SendSMS(patient.Phone, StatusMessage(status, consultationID), patient.ID)
}

func SendMessageNotification(recipient Models.User, senderName string, consultationID uint) {
	message := fmt.Sprintf("New message from %s\n\nConsultation ID: %d\n\nOpen the app to read and reply.", senderName, consultationID)

	SendWhatsApp(recipient.Phone, message, recipient.ID)
}

func SendFollowUpReminder(patient Models.User, consultationID uint, followUpDate time.Time) {
	message := fmt.Sprintf("Reminder: You have a follow-up scheduled for %s.\n\nConsultation ID: %d\n\nPlease check the app for details.", followUpDate.Format("2006/01/02 3:04 PM"), consultationID)

	SendSMS(patient.Phone, message, patient.ID)
}
