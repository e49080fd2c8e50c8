package routes

import (
	"net/http"
	"time"

	"gg/config"
	"gg/handlers"
	"gg/middleware"
	"gg/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, wsManager *websocket.Manager) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Connected to GG server")
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Public routes. Signup and login sit behind the rate limiter.
	authLimiter := middleware.NewIPRateLimiter(20, time.Minute)
	router.POST("/users/signup", middleware.RateLimit(authLimiter), handlers.Signup)
	router.POST("/users/login", middleware.RateLimit(authLimiter), handlers.Login)

	router.GET("/users/search", handlers.SearchUsers)
	router.GET("/users/username/:username", handlers.GetUserByUsername)
	router.GET("/post-details/:postId", handlers.GetPostDetails)
	router.GET("/vapid-public-key", handlers.GetVapidPublicKey)

	// Realtime notifications. The token travels as a query parameter
	// because browsers cannot set headers on websocket dials.
	router.GET("/ws", func(c *gin.Context) {
		claims, err := middleware.ParseToken(cfg.JWTSecret, c.Query("token"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorised access, put valid token",
			})
			return
		}
		websocket.Handler(wsManager, claims.UserID)(c.Writer, c.Request)
	})

	// Everything below requires a valid bearer token.
	users := router.Group("/users")
	users.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		users.GET("/feed", handlers.GetFeed)
		users.POST("/follow", handlers.Follow)
		users.POST("/unfollow", handlers.Unfollow)
		users.POST("/upload-image", handlers.UploadImage)
		users.GET("/:userId", handlers.GetUser)
		users.POST("/:userId", handlers.UpdateUser)
		users.DELETE("/:userId", handlers.DeleteUser)
	}

	posts := router.Group("/posts")
	posts.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		posts.POST("", handlers.CreatePost)
		posts.POST("/like", handlers.LikePost)
		posts.POST("/unlike", handlers.UnlikePost)
		posts.GET("/:postId", handlers.GetPost)
		posts.DELETE("/:postId", handlers.DeletePost)
	}

	push := router.Group("/push")
	push.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		push.POST("/subscribe", handlers.SubscribePush)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	return router
}
