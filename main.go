package main

import (
	"os"

	"github.com/A11we11/serenity/CronJobs"
	"github.com/A11we11/serenity/FirebaseMessaging"
	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Routes"
	"github.com/A11we11/serenity/Whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	Models.ConnectDataBase()
	FirebaseMessaging.Setup()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://serenity.health", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	},
	))
	Routes.ConfigRoutes(router)

	reminderService := CronJobs.NewFollowUpReminder(Models.DB)
	scheduler := reminderService.StartReminderCron()
	_ = scheduler

	go Whatsapp.Listen()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3005"
	}
	router.Run(":" + port)
}
