package stubapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
)

func (s *Server) setupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API is running", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
	router.GET("/health/db", s.databaseHealth)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refresh)
	}

	protected := router.Group("")
	protected.Use(s.authMiddleware())
	for _, name := range []string{Clients, Ecoles, Formateurs, Sessions, Users} {
		h := &resourceHandler{server: s, collection: name}
		group := protected.Group("/" + name)
		if name == Users {
			group.Use(s.requireRole(domain.RoleAdmin))
		}
		{
			group.GET("", h.list)
			group.POST("", h.create)
			group.GET("/:id", h.get)
			group.PUT("/:id", h.update)
			group.DELETE("/:id", h.delete)
			if _, nested := foreignKeys[name]; nested {
				group.GET("/:id/sessions", h.sessions)
			}
		}
	}
}

func (s *Server) databaseHealth(c *gin.Context) {
	s.mu.Lock()
	down := s.dbDown
	s.mu.Unlock()
	if down {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "connected"})
}
