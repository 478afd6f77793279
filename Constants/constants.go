package Constants

import "os"

// MessagingGoService is the base URL of the local WhatsApp/SMS gateway
// service. When empty, the dispatcher falls back to mock mode and only
// records notifications without delivering them.
var MessagingGoService = os.Getenv("MESSAGING_GATEWAY_URL")

var PhotoUploadDir = "./Uploads/Photos/"
