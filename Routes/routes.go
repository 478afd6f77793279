package Routes

import (
	"github.com/A11we11/serenity/Controllers"
	"github.com/A11we11/serenity/Middleware"
	"github.com/A11we11/serenity/SSE"
	"github.com/A11we11/serenity/Whatsapp"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/register", Controllers.Register)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	authorized.Use(Middleware.SetIdentity())
	{
		// User-related routes
		authorized.GET("/user", Controllers.CurrentUser)
		authorized.POST("/SaveFcmToken", Controllers.SaveFcmToken)

		// Consultation lifecycle
		authorized.POST("/consultations", Controllers.CreateConsultation)
		authorized.GET("/consultations", Controllers.FetchConsultations)
		authorized.GET("/consultations/:id", Controllers.GetConsultation)
		authorized.PUT("/consultations/:id", Controllers.UpdateConsultation)
		authorized.POST("/consultations/:id/followups", Controllers.CreateFollowUp)

		// Message thread
		authorized.POST("/messages", Controllers.CreateMessage)
		authorized.GET("/messages/consultation/:consultationId", Controllers.FetchConsultationMessages)
		authorized.PUT("/messages/:id/read", Controllers.MarkMessageAsRead)
		authorized.GET("/messages/unread/count", Controllers.FetchUnreadCount)

		// Photo ledger
		authorized.POST("/photos/upload", Controllers.UploadPhoto)
		authorized.GET("/photos", Controllers.FetchMyPhotos)
		authorized.GET("/photos/consultation/:consultationId", Controllers.FetchConsultationPhotos)
		authorized.GET("/photos/comparison", Controllers.FetchComparison)
		authorized.GET("/photos/comparison/pairs", Controllers.FetchComparisonPairs)
		authorized.GET("/photos/stats", Controllers.FetchBodyPartStats)
		authorized.DELETE("/photos/:id", Controllers.DeletePhoto)

		// Notification history
		authorized.GET("/notifications/history", Controllers.FetchNotificationHistory)

		// SSE (Server-Sent Events) route
		authorized.GET("/RequestSSE", SSE.RequestSSE)
	}

	// Admin-only routes
	admin := router.Group("/api/protected")
	admin.Use(Middleware.JwtAuthMiddleware())
	admin.Use(Middleware.SetIdentity())
	admin.Use(Middleware.PermissionCheckAdmin())
	{
		admin.PUT("/consultations/:id/assign/:doctorId", Controllers.AssignDoctor)
		admin.POST("/ExportConsultationsExcel", Controllers.ExportConsultationsExcel)

		// WhatsApp gateway passthrough
		admin.GET("/CheckWhatsAppLogin", Whatsapp.CheckLogin)
		admin.GET("/GetWhatsAppQRCode", Whatsapp.GetQRCode)
	}

	// Static file serving
	authorized.Static("/Uploads/Photos", "./Uploads/Photos")
	router.Static("/Web", "./Static")
}
