package database

import (
	"context"

	"github.com/zerix-app/zerix/internal/models"
)

func (d *Database) CreatePost(ctx context.Context, post *models.Post) error {
	if err := d.db.WithContext(ctx).Create(post).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (d *Database) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post := models.Post{}
	if err := d.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ListFeed returns all posts joined with their authors, newest first.
func (d *Database) ListFeed(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := d.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListUserPosts returns one user's posts, newest first.
func (d *Database) ListUserPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
