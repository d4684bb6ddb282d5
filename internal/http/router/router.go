package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/indievia/indievia-backend/internal/config"
	"github.com/indievia/indievia-backend/internal/http/handlers"
	"github.com/indievia/indievia-backend/internal/http/middleware"
	"github.com/indievia/indievia-backend/internal/metrics"
	"github.com/indievia/indievia-backend/internal/models"
)

// Handlers набор HTTP хэндлеров приложения.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Verification  *handlers.VerificationHandler
	Professionals *handlers.ProfessionalHandler
	Clients       *handlers.ClientHandler
	Reviews       *handlers.ReviewHandler
	Notifications *handlers.NotificationHandler
	Moderation    *handlers.ModerationHandler
	Inbox         *handlers.InboxHandler
	Admin         *handlers.AdminHandler
	Sitemap       *handlers.SitemapHandler
	Health        *handlers.HealthHandler
	WS            *handlers.WSHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokens middleware.TokenParser,
	limiterStore limiter.Store,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", metrics.GinHandler())
	r.GET("/sitemap.xml", h.Sitemap.Sitemap)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	authRequired := middleware.AuthMiddleware(tokens)
	strictLimit := middleware.RateLimitMiddleware(limiterStore, cfg.RateLimitLimit, cfg.RateLimitPeriod)

	api := r.Group("/api")
	api.GET("/ws", h.WS.Handle)

	authGroup := api.Group("/auth")
	authGroup.Use(strictLimit)
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(authRequired)
	{
		protectedAuth.GET("/session", h.Auth.Session)
		protectedAuth.GET("/sessions", h.Auth.ListSessions)
		protectedAuth.DELETE("/sessions/:id", middleware.UUIDValidator("id"), h.Auth.DeleteSession)

		protectedAuth.POST("/confirm/request", strictLimit, h.Verification.RequestEmailCode)
		protectedAuth.POST("/confirm", strictLimit, h.Verification.ConfirmEmail)
		protectedAuth.POST("/verify-phone/request", strictLimit, h.Verification.RequestPhoneCode)
		protectedAuth.POST("/verify-phone", strictLimit, h.Verification.VerifyPhone)
	}

	// Публичные маршруты
	api.GET("/professionals", h.Professionals.Search)
	api.GET("/professionals/:slug", h.Professionals.PublicProfile)
	api.GET("/professionals/:slug/reviews", h.Reviews.ListForProfessional)
	api.GET("/clients/:id", middleware.UUIDValidator("id"), h.Clients.PublicProfile)
	api.GET("/reviews/:id", middleware.UUIDValidator("id"), middleware.OptionalAuth(tokens), h.Reviews.Get)
	api.POST("/inbox", strictLimit, middleware.OptionalAuth(tokens), h.Inbox.Submit)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(authRequired)
	{
		protected.GET("/notifications", h.Notifications.List)
		protected.GET("/notifications/unread/count", h.Notifications.UnreadCount)
		protected.PATCH("/notifications/read-all", h.Notifications.MarkAllRead)
		protected.PATCH("/notifications/:id/read", middleware.UUIDValidator("id"), h.Notifications.MarkRead)
		protected.DELETE("/notifications/:id", middleware.UUIDValidator("id"), h.Notifications.Delete)

		protected.POST("/reviews/:id/report", middleware.UUIDValidator("id"), h.Reviews.Report)
	}

	professional := api.Group("/professional")
	professional.Use(authRequired, middleware.RequireRole(models.RoleProfessional))
	{
		professional.GET("/profile", h.Professionals.MyProfile)
		professional.PUT("/profile", h.Professionals.UpdateProfile)
		professional.PUT("/slug", h.Professionals.SetSlug)
		professional.POST("/gallery", h.Professionals.AddGallery)
		professional.DELETE("/gallery", h.Professionals.RemoveGallery)
		professional.POST("/picture", h.Professionals.SetPicture)
		professional.GET("/referrals", h.Professionals.Referrals)
		professional.GET("/reviews", h.Reviews.ListMine)
	}

	replies := api.Group("/reviews/:id/reply")
	replies.Use(authRequired, middleware.RequireRole(models.RoleProfessional), middleware.UUIDValidator("id"))
	{
		replies.POST("", h.Reviews.PostReply)
		replies.PATCH("", h.Reviews.EditReply)
		replies.DELETE("", h.Reviews.DeleteReply)
	}

	client := api.Group("/")
	client.Use(authRequired, middleware.RequireRole(models.RoleClient))
	{
		client.GET("/client/profile", h.Clients.MyProfile)
		client.PUT("/client/profile", h.Clients.UpdateProfile)
		client.POST("/client/picture", h.Clients.SetPicture)
		client.GET("/client/reviews", h.Reviews.ListAuthored)
		client.POST("/review", h.Reviews.Create)
	}

	admin := api.Group("/admin")
	admin.Use(authRequired, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/moderation", h.Moderation.List)
		admin.PATCH("/moderation/:id", middleware.UUIDValidator("id"), h.Moderation.Resolve)
		admin.GET("/inbox", h.Inbox.List)
		admin.PATCH("/inbox/:id", middleware.UUIDValidator("id"), h.Inbox.UpdateStatus)
		admin.GET("/users", h.Admin.ListUsers)
		admin.PATCH("/users/:id/ban", middleware.UUIDValidator("id"), h.Admin.SetBan)
		admin.GET("/stats", h.Admin.Stats)
	}

	return r
}
