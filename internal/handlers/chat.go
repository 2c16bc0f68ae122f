package handlers

import (
	"errors"
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
)

// DefaultHistoryLimit caps how many messages of a thread are returned,
// newest kept.
const DefaultHistoryLimit = 200

type ChatHandler struct {
	db           *database.Database
	historyLimit int
	log          zerolog.Logger
}

func NewChatHandler(db *database.Database, historyLimit int, log zerolog.Logger) *ChatHandler {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &ChatHandler{db: db, historyLimit: historyLimit, log: log}
}

// ListPeers returns everyone except the acting user, as a roster for
// starting a conversation.
func (h *ChatHandler) ListPeers(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	users, err := h.db.ListPeers(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	result := make([]dto.UserInfo, len(users))
	for i, user := range users {
		result[i] = dto.UserInfo{ID: user.ID, Username: user.Username}
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

// GetThread returns the message history between the acting user and
// the user in the URL, oldest of the kept window first.
func (h *ChatHandler) GetThread(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	otherID, ok := h.resolvePeer(c)
	if !ok {
		return
	}

	messages, err := h.db.ThreadBetween(c.Request.Context(), userID, otherID, h.historyLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	result := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		result[i] = formatMessage(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}

// SendInThread handles sends on the chat-thread path, where the
// recipient is part of the URL.
func (h *ChatHandler) SendInThread(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	otherID, ok := h.resolvePeer(c)
	if !ok {
		return
	}

	var req dto.ChatSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.send(c, userID, otherID, req.Text)
}

// SendMessage handles the JSON API path, recipient in the body.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.db.GetUser(c.Request.Context(), req.ToUser); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	h.send(c, userID, req.ToUser, req.Text)
}

// send enforces the one rule for message text on every path: empty
// after trimming is rejected.
func (h *ChatHandler) send(c *gin.Context, fromID, toID uint, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text is required"})
		return
	}

	message := &models.Message{
		FromUser:  fromID,
		ToUser:    toID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	if err := h.db.SaveMessage(c.Request.Context(), message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message_id": message.ID})
}

// resolvePeer parses the otherId URL parameter and verifies the user
// exists, writing the error response itself when not.
func (h *ChatHandler) resolvePeer(c *gin.Context) (uint, bool) {
	otherID, err := strconv.ParseUint(c.Param("otherId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}

	if _, err := h.db.GetUser(c.Request.Context(), uint(otherID)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return 0, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return 0, false
	}

	return uint(otherID), true
}

func formatMessage(message *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        message.ID,
		FromUser:  message.FromUser,
		ToUser:    message.ToUser,
		Text:      message.Text,
		CreatedAt: message.CreatedAt,
		Sender: dto.UserInfo{
			ID:       message.Sender.ID,
			Username: message.Sender.Username,
		},
	}
}
