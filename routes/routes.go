package routes

import (
	"net/http"
	"time"

	"slotwise/handlers"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational endpoint.
func RegisterChatRoutes(r *gin.Engine, chat *handlers.ChatHandler) {
	r.POST("/chat", chat.Chat)
}

// RegisterCalendarRoutes registers the direct calendar endpoints.
func RegisterCalendarRoutes(r *gin.Engine, cal *handlers.CalendarHandler) {
	r.POST("/availability", cal.Availability)
	r.POST("/book", cal.Book)
	r.GET("/events", cal.Events)
	r.DELETE("/events/:event_id", cal.DeleteEvent)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm slotwise",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, chat *handlers.ChatHandler, cal *handlers.CalendarHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, chat)
	RegisterCalendarRoutes(r, cal)
	RegisterHealthRoute(r)
}
