package Controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/A11we11/serenity/Constants"
	"github.com/A11we11/serenity/Models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func UploadPhoto(c *gin.Context) {
	userID, _ := identity(c)

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	if err := os.MkdirAll(Constants.PhotoUploadDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create upload directory"})
		return
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(Constants.PhotoUploadDir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save the file"})
		return
	}

	photo := Models.Photo{
		UserID:   userID,
		URL:      "/Uploads/Photos/" + filename,
		Caption:  c.PostForm("caption"),
		BodyPart: c.PostForm("body_part"),
		Angle:    c.PostForm("angle"),
	}

	if raw := c.PostForm("consultation_id"); raw != "" {
		consultationID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultation_id"})
			return
		}
		id := uint(consultationID)
		photo.ConsultationID = &id
	}

	photo.Metadata, _ = json.Marshal(map[string]interface{}{
		"originalName": file.Filename,
		"mimeType":     file.Header.Get("Content-Type"),
		"size":         file.Size,
	})

	if err := Models.DB.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, photo)
}

func FetchMyPhotos(c *gin.Context) {
	userID, _ := identity(c)

	var photos []Models.Photo
	if err := Models.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&photos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, photos)
}

func FetchConsultationPhotos(c *gin.Context) {
	consultationID, ok := parseIDParam(c, "consultationId")
	if !ok {
		return
	}

	var photos []Models.Photo
	if err := Models.DB.Where("consultation_id = ?", consultationID).Order("created_at desc").Find(&photos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, photos)
}

// comparisonPhotos is the shared query behind the comparison views:
// the owner's photos, optionally narrowed by body part and angle,
// newest first.
func comparisonPhotos(userID uint, bodyPart, angle string) ([]Models.Photo, error) {
	query := Models.DB.Where("user_id = ?", userID)
	if bodyPart != "" {
		query = query.Where("body_part = ?", bodyPart)
	}
	if angle != "" {
		query = query.Where("angle = ?", angle)
	}

	var photos []Models.Photo
	err := query.Order("created_at desc").Find(&photos).Error
	return photos, err
}

func FetchComparison(c *gin.Context) {
	userID, _ := identity(c)

	photos, err := comparisonPhotos(userID, c.Query("bodyPart"), c.Query("angle"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	output := make([]gin.H, 0, len(photos))
	for _, photo := range photos {
		entry := gin.H{"photo": photo}
		if photo.ConsultationID != nil {
			var consultation Models.Consultation
			if err := Models.DB.Select("id, created_at, status").First(&consultation, *photo.ConsultationID).Error; err == nil {
				entry["consultation"] = gin.H{
					"id":         consultation.ID,
					"created_at": consultation.CreatedAt,
					"status":     consultation.Status,
				}
			}
		}
		output = append(output, entry)
	}

	c.JSON(http.StatusOK, output)
}

func FetchComparisonPairs(c *gin.Context) {
	userID, _ := identity(c)

	bodyPart := c.Query("bodyPart")
	if bodyPart == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bodyPart is required"})
		return
	}
	angle := c.Query("angle")

	photos, err := comparisonPhotos(userID, bodyPart, angle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"body_part":      bodyPart,
		"angle":          angle,
		"total_photos":   len(photos),
		"photos_by_date": Models.GroupPhotosByDate(photos),
		"photos":         photos,
	})
}

func DeletePhoto(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, _ := identity(c)

	var photo Models.Photo
	err := Models.DB.First(&photo, id).Error

	// A photo owned by someone else is reported the same way as a
	// missing one so callers cannot probe for existence.
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && photo.UserID != userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The stored file itself is cleaned up out of band.
	if err := Models.DB.Delete(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}

func FetchBodyPartStats(c *gin.Context) {
	userID, _ := identity(c)

	var photos []Models.Photo
	if err := Models.DB.Where("user_id = ?", userID).Find(&photos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, Models.AggregateBodyParts(photos))
}
