package server

import (
	"github.com/gin-gonic/gin"

	"github.com/zerix-app/zerix/internal/handlers"
	"github.com/zerix-app/zerix/internal/middleware"
	"github.com/zerix-app/zerix/pkg/session"
)

func APIEndpoints(r *gin.Engine, authH *handlers.AuthHandler, postH *handlers.PostHandler,
	chatH *handlers.ChatHandler, sessions session.Store, uploadDir string) {
	// Public endpoints
	r.GET("/", postH.ListFeed)
	r.POST("/register", authH.Register)
	r.POST("/login", authH.Login)
	r.GET("/logout", authH.Logout)
	r.GET("/post/:id", postH.GetPost)
	r.Static("/uploads", uploadDir)

	// Everything below needs a resolved session
	authed := r.Group("/", middleware.AuthMiddleware(sessions))
	{
		authed.POST("/post/create", postH.CreatePost)
		authed.GET("/profile", postH.ListProfile)
		authed.GET("/chat", chatH.ListPeers)
		authed.GET("/chat/:otherId", chatH.GetThread)
		authed.POST("/chat/:otherId", chatH.SendInThread)
		authed.POST("/api/message/send", chatH.SendMessage)
	}
}
