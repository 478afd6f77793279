package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Notifications"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// FollowUpReminder sends reminder messages for upcoming follow-ups
type FollowUpReminder struct {
	DB *gorm.DB
}

// NewFollowUpReminder creates a new follow-up reminder service
func NewFollowUpReminder(db *gorm.DB) *FollowUpReminder {
	return &FollowUpReminder{
		DB: db,
	}
}

// StartReminderCron starts the cron job that checks for due follow-ups
func (fr *FollowUpReminder) StartReminderCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(15).Minutes().Do(func() {
		log.Println("Running follow-up reminder check...")
		if err := fr.SendFollowUpReminders(); err != nil {
			log.Printf("Error sending follow-up reminders: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Follow-up reminder cron job started")

	return scheduler
}

// SendFollowUpReminders notifies patients about follow-ups due within
// the next 24 hours. Each follow-up is reminded once; rows whose
// dispatch fails stay unmarked and are retried on the next tick.
func (fr *FollowUpReminder) SendFollowUpReminders() error {
	now := time.Now()
	windowEnd := now.Add(24 * time.Hour)

	var followUps []Models.FollowUp

	result := fr.DB.
		Where("reminder_sent = ? AND scheduled_date BETWEEN ? AND ?", false, now, windowEnd).
		Find(&followUps)

	if result.Error != nil {
		return fmt.Errorf("failed to query upcoming follow-ups: %w", result.Error)
	}

	for _, followUp := range followUps {
		var consultation Models.Consultation
		if err := fr.DB.First(&consultation, followUp.ConsultationID).Error; err != nil {
			log.Printf("Failed to find consultation for follow-up ID %d: %v", followUp.ID, err)
			continue
		}

		var patient Models.User
		if err := fr.DB.First(&patient, consultation.PatientID).Error; err != nil {
			log.Printf("Failed to find patient for follow-up ID %d: %v", followUp.ID, err)
			continue
		}

		if patient.Phone == "" {
			continue
		}

		Notifications.SendFollowUpReminder(patient, consultation.ID, followUp.ScheduledDate)

		if err := fr.DB.Model(&Models.FollowUp{}).Where("id = ?", followUp.ID).Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to mark follow-up %d as reminded: %v", followUp.ID, err)
			continue
		}

		log.Printf("Reminder sent to %s for follow-up at %s", patient.Name, followUp.ScheduledDate)
	}

	return nil
}
