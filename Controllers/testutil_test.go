package Controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/A11we11/serenity/Middleware"
	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Utils/Token"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Setenv("API_SECRET", "serenity-test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	Models.Migrate(db)
	Models.DB = db
}

func testRouter() *gin.Engine {
	router := gin.New()

	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	authorized.Use(Middleware.SetIdentity())
	{
		authorized.POST("/consultations", CreateConsultation)
		authorized.GET("/consultations", FetchConsultations)
		authorized.GET("/consultations/:id", GetConsultation)
		authorized.PUT("/consultations/:id", UpdateConsultation)
		authorized.POST("/consultations/:id/followups", CreateFollowUp)

		authorized.POST("/messages", CreateMessage)
		authorized.GET("/messages/consultation/:consultationId", FetchConsultationMessages)
		authorized.PUT("/messages/:id/read", MarkMessageAsRead)
		authorized.GET("/messages/unread/count", FetchUnreadCount)

		authorized.POST("/photos/upload", UploadPhoto)
		authorized.GET("/photos", FetchMyPhotos)
		authorized.GET("/photos/comparison", FetchComparison)
		authorized.GET("/photos/comparison/pairs", FetchComparisonPairs)
		authorized.GET("/photos/stats", FetchBodyPartStats)
		authorized.DELETE("/photos/:id", DeletePhoto)

		authorized.GET("/notifications/history", FetchNotificationHistory)
	}

	admin := router.Group("/api/protected")
	admin.Use(Middleware.JwtAuthMiddleware())
	admin.Use(Middleware.SetIdentity())
	admin.Use(Middleware.PermissionCheckAdmin())
	{
		admin.PUT("/consultations/:id/assign/:doctorId", AssignDoctor)
	}

	return router
}

func createTestUser(t *testing.T, name string, role Models.Role, phone string) Models.User {
	user := Models.User{Name: name, Email: name + "@example.com", Phone: phone, Password: "secret123", Role: role}
	if _, err := user.SaveUser(); err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, user *Models.User) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, err := Token.GenerateToken(user.ID)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	if err := json.Unmarshal(recorder.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}

func mustStatus(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, recorder.Code, recorder.Body.String())
	}
}
