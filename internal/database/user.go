package database

import (
	"context"

	"github.com/zerix-app/zerix/internal/models"
)

func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (d *Database) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ListPeers returns every user except the given one, for starting a
// conversation.
func (d *Database) ListPeers(ctx context.Context, selfID uint) ([]models.User, error) {
	var users []models.User
	err := d.db.WithContext(ctx).
		Where("id != ?", selfID).
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
