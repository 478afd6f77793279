package Controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/A11we11/serenity/Constants"
	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Utils/Token"

	"github.com/stretchr/testify/assert"
)

func TestUploadPhoto(t *testing.T) {
	setupTestDB(t)
	router := testRouter()

	Constants.PhotoUploadDir = t.TempDir()

	patient := createTestUser(t, "paula", Models.RolePatient, "")

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	part, err := writer.CreateFormFile("photo", "knee.jpg")
	assert.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	assert.NoError(t, err)
	assert.NoError(t, writer.WriteField("body_part", "knee"))
	assert.NoError(t, writer.WriteField("angle", "front"))
	assert.NoError(t, writer.WriteField("caption", "week one"))
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/protected/photos/upload", &buffer)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	token, err := Token.GenerateToken(patient.ID)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	mustStatus(t, recorder, http.StatusOK)

	var photo Models.Photo
	decodeBody(t, recorder, &photo)
	assert.Equal(t, patient.ID, photo.UserID)
	assert.Equal(t, "knee", photo.BodyPart)
	assert.Equal(t, "front", photo.Angle)
	assert.Equal(t, ".jpg", filepath.Ext(photo.URL))
	assert.Nil(t, photo.ConsultationID)
	assert.Contains(t, string(photo.Metadata), "knee.jpg")
}

func TestDeletePhoto_OwnershipHiddenAsNotFound(t *testing.T) {
	setupTestDB(t)
	router := testRouter()

	owner := createTestUser(t, "paula", Models.RolePatient, "")
	other := createTestUser(t, "pete", Models.RolePatient, "")

	photo := Models.Photo{UserID: owner.ID, URL: "/Uploads/Photos/a.jpg", BodyPart: "knee", Angle: "front"}
	assert.NoError(t, Models.DB.Create(&photo).Error)

	path := fmt.Sprintf("/api/protected/photos/%d", photo.ID)

	// Someone else's photo is indistinguishable from a missing one.
	mustStatus(t, doRequest(t, router, "DELETE", path, nil, &other), http.StatusNotFound)

	var still Models.Photo
	assert.NoError(t, Models.DB.First(&still, photo.ID).Error)

	mustStatus(t, doRequest(t, router, "DELETE", path, nil, &owner), http.StatusOK)

	err := Models.DB.First(&still, photo.ID).Error
	assert.Error(t, err)

	mustStatus(t, doRequest(t, router, "DELETE", path, nil, &owner), http.StatusNotFound)
}

func TestFetchComparisonPairs(t *testing.T) {
	setupTestDB(t)
	router := testRouter()

	patient := createTestUser(t, "paula", Models.RolePatient, "")

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	seed := []Models.Photo{
		{UserID: patient.ID, URL: "/Uploads/Photos/1.jpg", BodyPart: "knee", Angle: "front"},
		{UserID: patient.ID, URL: "/Uploads/Photos/2.jpg", BodyPart: "knee", Angle: "front"},
		{UserID: patient.ID, URL: "/Uploads/Photos/3.jpg", BodyPart: "knee", Angle: "side"},
		{UserID: patient.ID, URL: "/Uploads/Photos/4.jpg", BodyPart: "elbow", Angle: "front"},
	}
	for i := range seed {
		assert.NoError(t, Models.DB.Create(&seed[i]).Error)
		Models.DB.Model(&seed[i]).Update("created_at", base.AddDate(0, 0, i))
	}

	recorder := doRequest(t, router, "GET", "/api/protected/photos/comparison/pairs?bodyPart=knee", nil, &patient)
	mustStatus(t, recorder, http.StatusOK)

	var body struct {
		BodyPart     string                    `json:"body_part"`
		Angle        string                    `json:"angle"`
		TotalPhotos  int                       `json:"total_photos"`
		PhotosByDate map[string][]Models.Photo `json:"photos_by_date"`
	}
	decodeBody(t, recorder, &body)
	assert.Equal(t, "knee", body.BodyPart)
	assert.Equal(t, 3, body.TotalPhotos)
	assert.Len(t, body.PhotosByDate, 3)
	assert.Len(t, body.PhotosByDate["2026-08-01"], 1)

	// Narrowing by angle drops the side shot.
	recorder = doRequest(t, router, "GET", "/api/protected/photos/comparison/pairs?bodyPart=knee&angle=front", nil, &patient)
	mustStatus(t, recorder, http.StatusOK)
	decodeBody(t, recorder, &body)
	assert.Equal(t, 2, body.TotalPhotos)

	// The body part is mandatory.
	recorder = doRequest(t, router, "GET", "/api/protected/photos/comparison/pairs", nil, &patient)
	mustStatus(t, recorder, http.StatusBadRequest)
}

func TestFetchBodyPartStats(t *testing.T) {
	setupTestDB(t)
	router := testRouter()

	patient := createTestUser(t, "paula", Models.RolePatient, "")
	other := createTestUser(t, "pete", Models.RolePatient, "")

	seed := []Models.Photo{
		{UserID: patient.ID, URL: "/Uploads/Photos/1.jpg", BodyPart: "knee", Angle: "front"},
		{UserID: patient.ID, URL: "/Uploads/Photos/2.jpg", BodyPart: "knee", Angle: "side"},
		{UserID: patient.ID, URL: "/Uploads/Photos/3.jpg", BodyPart: "elbow", Angle: "front"},
		{UserID: other.ID, URL: "/Uploads/Photos/4.jpg", BodyPart: "knee", Angle: "front"},
	}
	for i := range seed {
		assert.NoError(t, Models.DB.Create(&seed[i]).Error)
	}

	recorder := doRequest(t, router, "GET", "/api/protected/photos/stats", nil, &patient)
	mustStatus(t, recorder, http.StatusOK)

	var stats map[string]Models.BodyPartStat
	decodeBody(t, recorder, &stats)
	assert.Len(t, stats, 2)
	assert.Equal(t, 2, stats["knee"].Count)
	assert.Equal(t, 1, stats["elbow"].Count)
	assert.Contains(t, stats["knee"].Angles, "front")
	assert.Contains(t, stats["knee"].Angles, "side")
}
