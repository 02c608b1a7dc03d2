package routes

import (
	"net/http"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/handlers"
	"github.com/EternalGerms/trampoaqui-sub001/middleware"
	"github.com/EternalGerms/trampoaqui-sub001/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups the handler sets wired in main.
type HandlerBundle struct {
	Requests      *handlers.RequestHandler
	Reviews       *handlers.ReviewHandler
	Notifications *handlers.NotificationHandler
	Directory     *handlers.DirectoryHandler
	AuthCache     *redis.Client
}

// RegisterRequestRoutes registers all endpoints for the request lifecycle
// and negotiation engine.
func RegisterRequestRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/requests")
	api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
	{
		api.POST("", hb.Requests.CreateRequest)
		api.GET("", hb.Requests.ListRequests)
		api.GET("/:id", hb.Requests.GetRequest)
		api.PATCH("/:id/status", hb.Requests.UpdateStatus)

		api.POST("/:id/negotiations", hb.Requests.Propose)
		api.POST("/:id/negotiations/:negotiationId/respond", hb.Requests.Respond)

		api.PUT("/:id/payment-method", hb.Requests.SelectPaymentMethod)
		api.POST("/:id/payment/complete", hb.Requests.CompletePayment)

		api.POST("/:id/days/:day/confirm", hb.Requests.ConfirmDailySession)
		api.POST("/:id/complete", hb.Requests.ConfirmCompletion)

		api.GET("/:id/can-review", hb.Reviews.CanReview)
		api.GET("/:id/reviews", hb.Reviews.ListForRequest)
	}
}

// RegisterReviewRoutes registers review submission and listing endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
	{
		api.POST("", hb.Reviews.SubmitReview)
	}
}

// RegisterNotificationRoutes registers the polled notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
	{
		api.GET("", hb.Notifications.List)
		api.POST("/:id/read", hb.Notifications.MarkRead)
	}
}

// RegisterDirectoryRoutes registers read-only user/provider lookups.
func RegisterDirectoryRoutes(r *gin.Engine, hb *HandlerBundle) {
	users := r.Group("/api/users")
	users.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
	{
		users.GET("/:id", hb.Directory.GetUser)
		users.GET("/:id/reviews", hb.Reviews.ListForUser)
	}

	providers := r.Group("/api/providers")
	providers.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
	{
		providers.GET("/:id", hb.Directory.GetProvider)
	}
}

// RegisterHealthRoute exposes the background health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// SetupRoutes installs CORS and all route groups.
func SetupRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRequestRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterHealthRoute(r)
}
