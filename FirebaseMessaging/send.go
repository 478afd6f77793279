package FirebaseMessaging

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/A11we11/serenity/Models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

var (
	app             *firebase.App
	messagingClient *messaging.Client
)

func Setup() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Println("FIREBASE_SERVICE_ACCOUNT_PATH not set, will use application default credentials")
	}

	ctx := context.Background()
	var err error

	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(ctx, nil, opt)
	} else {
		app, err = firebase.NewApp(ctx, nil)
	}

	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	messagingClient, err = app.Messaging(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase messaging client: %v", err)
	}

	log.Println("Firebase messaging client initialized successfully")
}

// Push sends an app notification to every registered device of the
// request. A nil client (Setup never ran, e.g. in tests) is a no-op.
func Push(req Models.PushRequest) error {
	if messagingClient == nil {
		log.Printf("[Push Mock] %s: %s", req.Title, req.Body)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
	}

	message.Android = &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			Sound:    "default",
			Priority: messaging.PriorityHigh,
		},
	}

	message.APNS = &messaging.APNSConfig{
		Headers: map[string]string{
			"apns-priority": "10",
		},
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Alert: &messaging.ApsAlert{
					Title: req.Title,
					Body:  req.Body,
				},
				Sound: "default",
			},
		},
	}

	switch {
	case len(req.Tokens) == 1:
		message.Token = req.Tokens[0]
		_, err := messagingClient.Send(ctx, message)
		if err != nil {
			log.Printf("Error sending message: %v", err)
			return err
		}
	case len(req.Tokens) > 1:
		_, err := messagingClient.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens:       req.Tokens,
			Notification: message.Notification,
			Android:      message.Android,
			APNS:         message.APNS,
		})
		if err != nil {
			log.Printf("Error sending multicast message: %v", err)
			return err
		}
	}
	return nil
}

// PushToUser looks up the user's device tokens and pushes to all of
// them. Failures are logged only; pushes never block or fail a request.
func PushToUser(userID uint, title, body string) {
	tokens, err := Models.GetFCMsByID(userID)
	if err != nil || len(tokens) == 0 {
		return
	}
	if err := Push(Models.PushRequest{Tokens: tokens, Title: title, Body: body}); err != nil {
		log.Printf("Failed to push to user %d: %v", userID, err)
	}
}
