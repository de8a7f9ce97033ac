package auth

import (
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arjunms/dailydo/internal/config"
	"github.com/arjunms/dailydo/internal/middleware"
	"github.com/arjunms/dailydo/internal/pkg/logger"
	"github.com/arjunms/dailydo/internal/pkg/ratelimit"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg, initFirebaseIfConfigured(cfg))

	// Credential endpoints are brute-forceable; keep them on a tight window
	limiter := ratelimit.New(10, time.Minute)
	limiter.StartCleanup(5 * time.Minute)

	auth := router.Group("/auth")
	{
		auth.POST("/register", ratelimit.Middleware(limiter), handler.Register)
		auth.POST("/login", ratelimit.Middleware(limiter), handler.Login)
		auth.POST("/google", ratelimit.Middleware(limiter), handler.GoogleSignIn)
		auth.POST("/firebase", ratelimit.Middleware(limiter), handler.FirebaseSignIn)

		protected := auth.Group("")
		protected.Use(middleware.Auth())
		{
			protected.GET("/me", handler.Me)
			protected.PUT("/profile", handler.UpdateProfile)
		}
	}
}

func initFirebaseIfConfigured(cfg *config.Config) *fbauth.Client {
	if cfg.FirebaseServiceAccountPath == "" {
		return nil
	}
	client, err := InitFirebase(cfg)
	if err != nil {
		logger.Warn("Firebase sign-in disabled: %v", err)
		return nil
	}
	return client
}
