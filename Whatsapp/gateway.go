package Whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/A11we11/serenity/Constants"

	"github.com/gin-gonic/gin"
	whatsapp_chatbot_golang "github.com/green-api/whatsapp-chatbot-golang"
)

// Listen starts the green-api chatbot that receives patient replies.
// Replies are not threaded into consultations; the bot just points the
// patient back to the app.
func Listen() {
	instanceID := os.Getenv("GREEN_API_INSTANCE_ID")
	apiToken := os.Getenv("GREEN_API_TOKEN")
	if instanceID == "" || apiToken == "" {
		log.Println("Green API credentials not set, inbound WhatsApp listener disabled")
		return
	}

	bot := whatsapp_chatbot_golang.NewBot(instanceID, apiToken)

	bot.SetStartScene(StartScene{})

	bot.StartReceivingNotifications()
}

type StartScene struct {
}

func (s StartScene) Start(bot *whatsapp_chatbot_golang.Bot) {
	bot.IncomingMessageHandler(func(message *whatsapp_chatbot_golang.Notification) {
		text, _ := message.Text()
		log.Printf("Inbound WhatsApp message: %s", text)
		message.AnswerWithText("This number is not monitored. Please reply to your doctor inside the Serenity app.")
	})
}

func CheckLogin(c *gin.Context) {
	client := &http.Client{}
	method := "GET"

	url := Constants.MessagingGoService + "/app/devices"
	req, err := http.NewRequest(method, url, nil)

	if err != nil {
		fmt.Println(err)
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		fmt.Println(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
		return
	}
	var output struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Results []struct {
			Name   string `json:"name"`
			Device string `json:"device"`
		}
	}
	if err = json.Unmarshal(body, &output); err != nil {
		log.Println(err)
		return
	}

	if len(output.Results) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Not Logged In"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged In"})
}

func GetQRCode(c *gin.Context) {
	client := &http.Client{}
	method := "GET"

	urlLogin := Constants.MessagingGoService + "/app/login"
	req, err := http.NewRequest(method, urlLogin, nil)

	if err != nil {
		fmt.Println(err)
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		fmt.Println(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
	}

	var output struct {
		Results struct {
			QRLink string `json:"qr_link"`
		} `json:"results"`
	}

	if err = json.Unmarshal(body, &output); err != nil {
		log.Println(err)
	}

	req, err = http.NewRequest(method, output.Results.QRLink, nil)

	if err != nil {
		fmt.Println(err)
	}
	req.Header.Add("Content-Type", "application/json")

	res, err = client.Do(req)
	if err != nil {
		fmt.Println(err)
	}
	defer res.Body.Close()

	body, err = io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
	}
	c.Header("Content-Disposition", "attachment; filename=qr.png")
	c.Data(http.StatusOK, "application/octet-stream", body)
}

// SendMessage delivers a WhatsApp message through the gateway service.
func SendMessage(phone, message string) error {
	return post("/send/message", phone, message)
}

// SendSMS delivers a plain SMS through the gateway service.
func SendSMS(phone, message string) error {
	return post("/send/sms", phone, message)
}

func post(endpoint, phone, message string) error {
	client := &http.Client{}

	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", Constants.MessagingGoService+endpoint, bytes.NewBuffer(payload))
	if err != nil {
		log.Println(err)
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		log.Println(err)
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Println(err)
		return err
	}

	if res.StatusCode >= 300 {
		return fmt.Errorf("gateway returned %d: %s", res.StatusCode, string(body))
	}
	return nil
}
