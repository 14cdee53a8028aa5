package domain

import "time"

// Valores permitidos para Message.Sender.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}
