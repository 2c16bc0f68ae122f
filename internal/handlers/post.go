package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zerix-app/zerix/internal/database"
	"github.com/zerix-app/zerix/internal/handlers/dto"
	"github.com/zerix-app/zerix/internal/middleware"
	"github.com/zerix-app/zerix/internal/models"
	"github.com/zerix-app/zerix/internal/uploads"
)

type PostHandler struct {
	db      *database.Database
	uploads *uploads.Store
	log     zerolog.Logger
}

func NewPostHandler(db *database.Database, uploads *uploads.Store, log zerolog.Logger) *PostHandler {
	return &PostHandler{db: db, uploads: uploads, log: log}
}

// CreatePost accepts a multipart form with a text field and an optional
// image file. The image is persisted before the insert; if that fails
// the whole operation aborts, so no post row references a missing file.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	text := strings.TrimSpace(c.PostForm("text"))

	var imageName *string
	if file, err := c.FormFile("image"); err == nil && file.Filename != "" {
		data, err := readUpload(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read image"})
			return
		}

		stored, err := h.uploads.Save(file.Filename, data)
		if err != nil {
			h.log.Error().Err(err).Msg("image save failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
			return
		}
		imageName = &stored
	}

	if text == "" && imageName == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post needs text or an image"})
		return
	}

	post := &models.Post{
		UserID:    userID,
		Text:      text,
		Image:     imageName,
		CreatedAt: time.Now(),
	}

	if err := h.db.CreatePost(c.Request.Context(), post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post_id": post.ID})
}

// ListFeed is public: all posts across all users, newest first.
func (h *PostHandler) ListFeed(c *gin.Context) {
	posts, err := h.db.ListFeed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": formatPosts(posts)})
}

// ListProfile returns the acting user's own posts, newest first.
func (h *PostHandler) ListProfile(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	posts, err := h.db.ListUserPosts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": formatPosts(posts)})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.db.GetPost(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	c.JSON(http.StatusOK, formatPost(post))
}

func formatPost(post *models.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:        post.ID,
		Text:      post.Text,
		Image:     post.Image,
		Username:  post.Author.Username,
		CreatedAt: post.CreatedAt,
	}
}

func formatPosts(posts []models.Post) []dto.PostResponse {
	result := make([]dto.PostResponse, len(posts))
	for i := range posts {
		result[i] = formatPost(&posts[i])
	}
	return result
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
