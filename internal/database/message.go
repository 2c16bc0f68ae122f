package database

import (
	"context"

	"github.com/zerix-app/zerix/internal/models"
)

func (d *Database) SaveMessage(ctx context.Context, message *models.Message) error {
	if err := d.db.WithContext(ctx).Create(message).Error; err != nil {
		return translate(err)
	}
	return nil
}

// ThreadBetween returns the most recent limit messages exchanged between
// the two users, regardless of direction. Ties on created_at break by
// row id.
func (d *Database) ThreadBetween(ctx context.Context, userA, userB uint, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.WithContext(ctx).
		Where("(from_user = ? AND to_user = ?) OR (from_user = ? AND to_user = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Reverse so the oldest of the kept window comes first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
