package handlers

import (
	"blogapi/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(h.cfg.CORSOrigin))

	// Routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public Routes
	r.POST("/users", h.RegisterUser)
	r.GET("/users/:id", h.GetUser)
	r.POST("/login", h.LoginUser)
	r.GET("/posts", h.ListPosts)
	r.GET("/posts/:id", h.GetPost)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(h.AuthRequired())
	{
		authorized.POST("/logout", h.LogoutUser)
		authorized.DELETE("/users/me", h.DeleteAccount)
		authorized.POST("/posts", h.CreatePost)
		authorized.PUT("/posts/:id", h.UpdatePost)
		authorized.DELETE("/posts/:id", h.DeletePost)
		authorized.POST("/vote", h.Vote)
	}

	return r
}
