package server

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/zerix-app/zerix/internal/database"
	"github.com/zerix-app/zerix/internal/handlers"
	"github.com/zerix-app/zerix/internal/middleware"
	"github.com/zerix-app/zerix/internal/uploads"
	"github.com/zerix-app/zerix/pkg/session"
)

const (
	// Overall request-body cap, uploads included
	maxBodyBytes = 8 << 20

	storageDeadline = 5 * time.Second
)

type Server struct {
	Router   *gin.Engine
	DB       *database.Database
	Sessions session.Store
	Log      zerolog.Logger
}

func NewServer() *Server {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Info().Msg(".env not found, using environment variables")
		}
	}

	db := &database.Database{}
	if err := db.Connect(); err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}

	sessions := newSessionStore(log)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "static/uploads"
	}
	uploadStore, err := uploads.NewStore(uploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", uploadDir).Msg("upload dir unavailable")
	}

	historyLimit := handlers.DefaultHistoryLimit
	if v := os.Getenv("CHAT_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			historyLimit = n
		}
	}

	authH := handlers.NewAuthHandler(db, sessions, log)
	postH := handlers.NewPostHandler(db, uploadStore, log)
	chatH := handlers.NewChatHandler(db, historyLimit, log)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.BodyLimit(maxBodyBytes),
		middleware.Deadline(storageDeadline),
	)
	APIEndpoints(router, authH, postH, chatH, sessions, uploadStore.Dir())

	return &Server{
		Router:   router,
		DB:       db,
		Sessions: sessions,
		Log:      log,
	}
}

// newSessionStore picks Redis when configured and falls back to the
// in-memory store otherwise.
func newSessionStore(log zerolog.Logger) session.Store {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Info().Msg("REDIS_URL not set, sessions kept in memory")
		return session.NewMemoryStore()
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Redis connect failed")
	}
	return session.NewRedisStore(client)
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	s.Log.Info().Str("port", port).Msg("server starting")
	if err := s.Router.Run(":" + port); err != nil {
		s.Log.Fatal().Err(err).Msg("server run error")
	}
}
