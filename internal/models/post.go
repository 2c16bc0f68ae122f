package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Text      string    `gorm:"not null"`
	Image     *string
	CreatedAt time.Time

	Author User `gorm:"foreignKey:UserID"`
}
