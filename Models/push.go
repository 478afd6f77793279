package Models

type PushRequest struct {
	Tokens []string `json:"tokens"` // Multiple device tokens
	Title  string   `json:"title"`  // Notification title
	Body   string   `json:"body"`   // Notification body
}
