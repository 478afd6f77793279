package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConsultationStatus values. PENDING is the initial state; any explicit
// update may move the status to any other value (there is no enforced
// transition table, matching the product behaviour).
type ConsultationStatus string

const (
	StatusPending          ConsultationStatus = "PENDING"
	StatusInProgress       ConsultationStatus = "IN_PROGRESS"
	StatusAwaitingResponse ConsultationStatus = "AWAITING_RESPONSE"
	StatusCompleted        ConsultationStatus = "COMPLETED"
	StatusCancelled        ConsultationStatus = "CANCELLED"
)

type Consultation struct {
	gorm.Model
	PatientID        uint               `json:"patient_id"`
	DoctorID         *uint              `json:"doctor_id" gorm:"default:null"`
	ChiefComplaint   string             `gorm:"type:text" json:"chief_complaint"`
	Symptoms         datatypes.JSON     `json:"symptoms"`
	Duration         string             `json:"duration"`
	MedicalHistory   datatypes.JSON     `json:"medical_history"`
	Medications      datatypes.JSON     `json:"medications"`
	Allergies        datatypes.JSON     `json:"allergies"`
	VitalSigns       datatypes.JSON     `json:"vital_signs"`
	VideoURL         string             `json:"video_url"`
	Priority         string             `gorm:"size:16;default:normal" json:"priority"`
	Status           ConsultationStatus `gorm:"size:32;default:PENDING" json:"status"`
	Diagnosis        string             `gorm:"type:text" json:"diagnosis"`
	Prescription     datatypes.JSON     `json:"prescription"`
	Recommendations  string             `gorm:"type:text" json:"recommendations"`
	FollowUpRequired bool               `json:"follow_up_required"`
	FollowUpDate     *time.Time         `json:"follow_up_date" gorm:"default:null"`
	CompletedAt      *time.Time         `json:"completed_at" gorm:"default:null"`
	Messages         []Message          `json:"messages,omitempty"`
	Photos           []Photo            `json:"photos,omitempty"`
	FollowUps        []FollowUp         `json:"follow_ups,omitempty"`
}

type FollowUp struct {
	gorm.Model
	ConsultationID uint      `json:"consultation_id"`
	ScheduledDate  time.Time `json:"scheduled_date"`
	Notes          string    `gorm:"type:text" json:"notes"`
	ReminderSent   bool      `json:"reminder_sent"`
}

// CountConsultationMessages and CountConsultationPhotos feed the
// message/photo counters on the consultation list view.
func CountConsultationMessages(consultationID uint) int64 {
	var count int64
	DB.Model(&Message{}).Where("consultation_id = ?", consultationID).Count(&count)
	return count
}

func CountConsultationPhotos(consultationID uint) int64 {
	var count int64
	DB.Model(&Photo{}).Where("consultation_id = ?", consultationID).Count(&count)
	return count
}
