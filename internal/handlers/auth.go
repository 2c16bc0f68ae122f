package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zerix-app/zerix/internal/database"
	"github.com/zerix-app/zerix/internal/handlers/dto"
	"github.com/zerix-app/zerix/internal/middleware"
	"github.com/zerix-app/zerix/internal/models"
	"github.com/zerix-app/zerix/pkg/session"
)

const invalidCredentials = "invalid credentials"

// dummyHash keeps the unknown-email login path doing the same bcrypt
// work as a real comparison.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type AuthHandler struct {
	db       *database.Database
	sessions session.Store
	log      zerolog.Logger
}

func NewAuthHandler(db *database.Database, sessions session.Store, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	// Uniqueness is left to the constraint so concurrent registrations
	// cannot race past a pre-check
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{UserID: user.ID})
}

// Login issues an opaque session token bound server-side to the user.
// Unknown email and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.FindUserByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	token := session.NewToken()
	if err := h.sessions.Put(c.Request.Context(), token, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

// Logout invalidates the session immediately. Deleting an absent token
// succeeds, so repeated logouts are harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token != "" {
		if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("session delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not end session"})
			return
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusOK)
}
