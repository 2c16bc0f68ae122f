package dto

import (
	"time"
)

type PostResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Image     *string   `json:"image"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
