package Controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/A11we11/serenity/FirebaseMessaging"
	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Notifications"
	"github.com/A11we11/serenity/SSE"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(value), true
}

func summaryByID(userID uint, cache map[uint]Models.UserSummary) Models.UserSummary {
	if summary, ok := cache[userID]; ok {
		return summary
	}
	user, err := Models.GetUserByID(userID)
	if err != nil {
		return Models.UserSummary{ID: userID}
	}
	cache[userID] = user.Summary()
	return cache[userID]
}

type PrescriptionItem struct {
	Medication   string `json:"medication" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	Frequency    string `json:"frequency" binding:"required"`
	Duration     string `json:"duration" binding:"required"`
	Instructions string `json:"instructions"`
}

func CreateConsultation(c *gin.Context) {
	userID, _ := identity(c)

	var input struct {
		ChiefComplaint string   `json:"chief_complaint" binding:"required"`
		Symptoms       []string `json:"symptoms" binding:"required,min=1"`
		Duration       string   `json:"duration" binding:"required"`
		MedicalHistory *struct {
			Conditions    []string `json:"conditions"`
			Surgeries     []string `json:"surgeries"`
			FamilyHistory []string `json:"family_history"`
		} `json:"medical_history"`
		Medications []struct {
			Name      string `json:"name"`
			Dosage    string `json:"dosage"`
			Frequency string `json:"frequency"`
		} `json:"medications"`
		Allergies []struct {
			Allergen string `json:"allergen"`
			Reaction string `json:"reaction"`
		} `json:"allergies"`
		VitalSigns *struct {
			Temperature   *float64 `json:"temperature"`
			BloodPressure string   `json:"blood_pressure"`
			HeartRate     *int     `json:"heart_rate"`
			Weight        *float64 `json:"weight"`
		} `json:"vital_signs"`
		VideoURL string `json:"video_url"`
		Priority string `json:"priority"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consultation := Models.Consultation{
		PatientID:      userID,
		ChiefComplaint: input.ChiefComplaint,
		Duration:       input.Duration,
		VideoURL:       input.VideoURL,
		Priority:       input.Priority,
		Status:         Models.StatusPending,
		MedicalHistory: datatypes.JSON("{}"),
		Medications:    datatypes.JSON("[]"),
		Allergies:      datatypes.JSON("[]"),
		VitalSigns:     datatypes.JSON("{}"),
		Prescription:   datatypes.JSON("[]"),
	}
	consultation.Symptoms, _ = json.Marshal(input.Symptoms)
	if input.MedicalHistory != nil {
		consultation.MedicalHistory, _ = json.Marshal(input.MedicalHistory)
	}
	if input.Medications != nil {
		consultation.Medications, _ = json.Marshal(input.Medications)
	}
	if input.Allergies != nil {
		consultation.Allergies, _ = json.Marshal(input.Allergies)
	}
	if input.VitalSigns != nil {
		consultation.VitalSigns, _ = json.Marshal(input.VitalSigns)
	}
	if consultation.Priority == "" {
		consultation.Priority = "normal"
	}

	if err := Models.DB.Create(&consultation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	patient, err := Models.GetUserByID(userID)
	if err == nil && patient.Phone != "" {
		Notifications.SendConsultationConfirmation(patient, consultation.ID)
	}

	c.JSON(http.StatusOK, gin.H{"consultation": consultation, "patient": patient.Summary()})
}

func FetchConsultations(c *gin.Context) {
	userID, role := identity(c)

	query := Models.DB.Model(&Models.Consultation{})
	switch role {
	case Models.RolePatient:
		query = query.Where("patient_id = ?", userID)
	case Models.RoleDoctor:
		query = query.Where("doctor_id = ?", userID)
	}

	var consultations []Models.Consultation
	if err := query.Order("created_at desc").Find(&consultations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := map[uint]Models.UserSummary{}
	output := make([]gin.H, 0, len(consultations))
	for _, consultation := range consultations {
		entry := gin.H{
			"consultation":  consultation,
			"patient":       summaryByID(consultation.PatientID, summaries),
			"message_count": Models.CountConsultationMessages(consultation.ID),
			"photo_count":   Models.CountConsultationPhotos(consultation.ID),
		}
		if consultation.DoctorID != nil {
			entry["doctor"] = summaryByID(*consultation.DoctorID, summaries)
		}
		output = append(output, entry)
	}

	c.JSON(http.StatusOK, output)
}

func GetConsultation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, role := identity(c)

	var consultation Models.Consultation
	if err := Models.DB.First(&consultation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !Models.CanAccessConsultation(&consultation, userID, role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this consultation"})
		return
	}

	var messages []Models.Message
	if err := Models.DB.Where("consultation_id = ?", consultation.ID).Order("created_at asc").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var photos []Models.Photo
	if err := Models.DB.Where("consultation_id = ?", consultation.ID).Order("created_at desc").Find(&photos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var followUps []Models.FollowUp
	if err := Models.DB.Where("consultation_id = ?", consultation.ID).Order("scheduled_date asc").Find(&followUps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := map[uint]Models.UserSummary{}
	messageOutput := make([]gin.H, 0, len(messages))
	for _, message := range messages {
		messageOutput = append(messageOutput, gin.H{
			"message": message,
			"sender":  summaryByID(message.SenderID, summaries),
		})
	}

	output := gin.H{
		"consultation": consultation,
		"patient":      summaryByID(consultation.PatientID, summaries),
		"messages":     messageOutput,
		"photos":       photos,
		"follow_ups":   followUps,
	}
	if consultation.DoctorID != nil {
		output["doctor"] = summaryByID(*consultation.DoctorID, summaries)
	}

	c.JSON(http.StatusOK, output)
}

func UpdateConsultation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, role := identity(c)

	var input struct {
		Status           *Models.ConsultationStatus `json:"status"`
		Diagnosis        *string                    `json:"diagnosis"`
		Prescription     *[]PrescriptionItem        `json:"prescription"`
		Recommendations  *string                    `json:"recommendations"`
		FollowUpRequired *bool                      `json:"follow_up_required"`
		FollowUpDate     *time.Time                 `json:"follow_up_date"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Authorization and mutation run inside one transaction so a
	// concurrent assign/update cannot slip between the check and the
	// write.
	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var consultation Models.Consultation
	if err := tx.First(&consultation, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !Models.CanAccessConsultation(&consultation, userID, role) {
		tx.Rollback()
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this consultation"})
		return
	}

	if (input.Diagnosis != nil || input.Prescription != nil) && role != Models.RoleDoctor {
		tx.Rollback()
		c.JSON(http.StatusForbidden, gin.H{"error": "Only doctors can update diagnosis and prescription"})
		return
	}

	statusTouched := input.Status != nil
	if input.Status != nil {
		consultation.Status = *input.Status
		if consultation.Status == Models.StatusCompleted {
			now := time.Now()
			consultation.CompletedAt = &now
		} else {
			consultation.CompletedAt = nil
		}
	}
	if input.Diagnosis != nil {
		consultation.Diagnosis = *input.Diagnosis
	}
	if input.Prescription != nil {
		consultation.Prescription, _ = json.Marshal(*input.Prescription)
	}
	if input.Recommendations != nil {
		consultation.Recommendations = *input.Recommendations
	}
	if input.FollowUpRequired != nil {
		consultation.FollowUpRequired = *input.FollowUpRequired
	}
	if input.FollowUpDate != nil {
		consultation.FollowUpDate = input.FollowUpDate
	}

	if err := tx.Save(&consultation).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	patient, err := Models.GetUserByID(consultation.PatientID)
	if statusTouched {
		if err == nil && patient.Phone != "" {
			Notifications.SendStatusUpdate(patient, consultation.ID, consultation.Status)
		}
		FirebaseMessaging.PushToUser(consultation.PatientID, "Consultation update",
			fmt.Sprintf("Consultation %d is now %s", consultation.ID, consultation.Status))
		SSE.Broadcaster.Broadcast("refresh")
	}

	c.JSON(http.StatusOK, gin.H{"consultation": consultation, "patient": patient.Summary()})
}

// AssignDoctor is gated by the admin route group; the engine itself
// applies no actor check here.
func AssignDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	doctorID, ok := parseIDParam(c, "doctorId")
	if !ok {
		return
	}

	doctor, err := Models.GetUserByID(doctorID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var consultation Models.Consultation
	if err := tx.First(&consultation, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// Assignment forces the case into review regardless of prior state.
	consultation.DoctorID = &doctor.ID
	consultation.Status = Models.StatusInProgress
	consultation.CompletedAt = nil

	if err := tx.Save(&consultation).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	patient, err := Models.GetUserByID(consultation.PatientID)
	if err == nil && patient.Phone != "" {
		Notifications.SendDoctorAssigned(patient, consultation.ID, "Dr. "+doctor.Name)
	}
	SSE.Broadcaster.Broadcast("refresh")

	c.JSON(http.StatusOK, gin.H{"consultation": consultation, "doctor": doctor.Summary()})
}

func CreateFollowUp(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
		Notes         string    `json:"notes"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var consultation Models.Consultation
	if err := Models.DB.First(&consultation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	followUp := Models.FollowUp{
		ConsultationID: consultation.ID,
		ScheduledDate:  input.ScheduledDate,
		Notes:          input.Notes,
	}

	// The reminder itself is sent later by the follow-up cron.
	if err := Models.DB.Create(&followUp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, followUp)
}
