package models

import (
	"time"
)

type Message struct {
	ID        uint      `gorm:"primaryKey"`
	FromUser  uint      `gorm:"not null;index"`
	ToUser    uint      `gorm:"not null;index"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time

	Sender    User `gorm:"foreignKey:FromUser"`
	Recipient User `gorm:"foreignKey:ToUser"`
}
