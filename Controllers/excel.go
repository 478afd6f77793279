package Controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/A11we11/serenity/Models"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

// ExportConsultationsExcel writes the consultations ledger to an xlsx
// file for back-office review. Admin only.
func ExportConsultationsExcel(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var consultations []Models.Consultation

	if input.DateFrom != "" && input.DateTo != "" {
		if err := Models.DB.Model(&Models.Consultation{}).
			Where("DATE(created_at) BETWEEN ? AND ?", input.DateFrom, input.DateTo).
			Find(&consultations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else {
		if err := Models.DB.Model(&Models.Consultation{}).Find(&consultations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	headers := map[string]string{
		"A1": "ID",
		"B1": "Created",
		"C1": "Patient",
		"D1": "Doctor",
		"E1": "Status",
		"F1": "Priority",
		"G1": "Chief Complaint",
		"H1": "Completed",
	}
	file := excelize.NewFile()
	sheet := "Consultations"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	summaries := map[uint]Models.UserSummary{}
	for i := 0; i < len(consultations); i++ {
		appendRowConsultation(sheet, file, i, consultations, summaries)
	}

	filename := "./Consultations.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowConsultation(sheet string, file *excelize.File, index int, rows []Models.Consultation, summaries map[uint]Models.UserSummary) {
	rowCount := index + 2
	consultation := rows[index]

	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), consultation.ID)
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), consultation.CreatedAt.Format("2006-01-02"))
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), summaryByID(consultation.PatientID, summaries).Name)
	if consultation.DoctorID != nil {
		file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), summaryByID(*consultation.DoctorID, summaries).Name)
	}
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), string(consultation.Status))
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), consultation.Priority)
	file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), consultation.ChiefComplaint)
	if consultation.CompletedAt != nil {
		file.SetCellValue(sheet, fmt.Sprintf("H%v", rowCount), consultation.CompletedAt.Format("2006-01-02"))
	}
}
