package dto

import (
	"time"
)

// SendMessageRequest is the JSON API send payload.
type SendMessageRequest struct {
	ToUser uint   `json:"to_user" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// ChatSendRequest is the send payload on the chat-thread path, where
// the recipient comes from the URL.
type ChatSendRequest struct {
	Text string `json:"text" binding:"required"`
}

type MessageResponse struct {
	ID        uint      `json:"id"`
	FromUser  uint      `json:"from_user"`
	ToUser    uint      `json:"to_user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Sender    UserInfo  `json:"sender"`
}

type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
