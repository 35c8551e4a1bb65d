package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Harukino1/ReturnHub/internal/alerts"
	"github.com/Harukino1/ReturnHub/internal/api/handler"
	"github.com/Harukino1/ReturnHub/internal/chathub"
	"github.com/Harukino1/ReturnHub/internal/config"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/objectstore"
	"github.com/Harukino1/ReturnHub/internal/service"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.SubmittedReport{},
		&models.LostItem{},
		&models.FoundItem{},
		&models.Claim{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	zap.S().Info("database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		zap.S().Fatalw("invalid configuration", "err", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewService(db, rdb)

	hub := chathub.NewManagerService(s)
	go hub.Run()

	// Staff alerts are optional: without a bot token the services simply
	// skip them.
	var alerter service.StaffAlerter
	if cfg.TelegramBotToken != "" && cfg.TelegramStaffChatID != "" {
		notifier, err := alerts.NewNotifier(cfg.TelegramBotToken, cfg.TelegramStaffChatID)
		if err != nil {
			zap.S().Warnw("staff alerts disabled", "err", err)
		} else {
			alerter = notifier
		}
	}

	notifications := service.NewNotificationService(s)
	users := service.NewUserService(s)
	staff := service.NewStaffService(s)
	reports := service.NewReportService(s, notifications, alerter)
	claims := service.NewClaimService(s, notifications, alerter)
	items := service.NewItemService(s)
	conversations := service.NewConversationService(s, notifications)
	uploads := objectstore.NewClient(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket, cfg.StorageFallbackBucket)

	h := handler.NewHandler(hub, users, staff, reports, claims, items,
		conversations, notifications, uploads, cfg.JWTSecret)

	r := gin.Default()
	r.Use(corsMiddleware(cfg.AllowedOrigin))

	r.GET("/ws", h.ServeWebSocket)

	api := r.Group("/api")
	{
		api.POST("/users/register", h.RegisterUser)
		api.POST("/users/login", h.LoginUser)
		api.POST("/staff/login", h.LoginStaff)

		me := api.Group("/users/me", h.RequireUser())
		{
			me.GET("", h.CurrentUser)
			me.PUT("", h.UpdateCurrentUser)
			me.PUT("/password", h.ChangeUserPassword)
		}

		staffAPI := api.Group("/staff", h.RequireStaff())
		{
			staffAPI.GET("/profile", h.StaffProfile)
			staffAPI.PUT("/profile", h.UpdateStaffProfile)
			staffAPI.GET("/dashboard", h.StaffDashboard)
		}

		admin := api.Group("/admin", h.RequireAdmin())
		{
			admin.GET("/staff", h.ListStaff)
			admin.POST("/staff", h.CreateStaff)
			admin.PUT("/staff/:id/role", h.SetStaffRole)
			admin.PUT("/staff/:id/password", h.ResetStaffPassword)
			admin.DELETE("/staff/:id", h.DeleteStaff)
			admin.GET("/users", h.ListUsers)
			admin.DELETE("/users/:id", h.DeleteUser)
		}

		reportsAPI := api.Group("/reports")
		{
			reportsAPI.POST("", h.RequireUser(), h.SubmitReport)
			reportsAPI.GET("", h.RequireStaff(), h.ListReports)
			reportsAPI.GET("/pending", h.RequireStaff(), h.ListPendingReports)
			reportsAPI.GET("/my", h.RequireUser(), h.ListMyReports)
			reportsAPI.GET("/:id", h.RequireAuth(), h.GetReport)
			reportsAPI.PUT("/:id/status", h.RequireStaff(), h.UpdateReportStatus)
			reportsAPI.PUT("/:id/cancel", h.RequireUser(), h.CancelReport)
			reportsAPI.DELETE("/:id", h.RequireAuth(), h.DeleteReport)
		}

		itemsAPI := api.Group("/items")
		{
			itemsAPI.GET("/lost", h.ListLostItems)
			itemsAPI.GET("/found", h.ListFoundItems)
			itemsAPI.GET("/lost/:id", h.GetLostItem)
			itemsAPI.GET("/found/:id", h.GetFoundItem)
			itemsAPI.PUT("/lost/:id/status", h.RequireStaff(), h.UpdateLostItemStatus)
			itemsAPI.PUT("/found/:id/status", h.RequireStaff(), h.UpdateFoundItemStatus)
		}

		claimsAPI := api.Group("/claims")
		{
			claimsAPI.POST("", h.RequireUser(), h.SubmitClaim)
			claimsAPI.GET("", h.RequireStaff(), h.ListClaims)
			claimsAPI.GET("/my", h.RequireUser(), h.ListMyClaims)
			claimsAPI.GET("/stats", h.RequireStaff(), h.ClaimStats)
			claimsAPI.GET("/item/:itemId", h.RequireStaff(), h.ListClaimsByItem)
			claimsAPI.GET("/:id", h.RequireAuth(), h.GetClaim)
			claimsAPI.PUT("/:id/status", h.RequireStaff(), h.DecideClaim)
			claimsAPI.DELETE("/:id", h.RequireStaff(), h.DeleteClaim)
		}

		convAPI := api.Group("/conversations", h.RequireAuth())
		{
			convAPI.POST("", h.RequireUser(), h.OpenConversation)
			convAPI.GET("", h.ListConversations)
			convAPI.GET("/:id", h.GetConversation)
			convAPI.GET("/:id/messages", h.ListMessages)
			convAPI.GET("/:id/messages/recent", h.ListRecentMessages)
			convAPI.POST("/:id/messages", h.SendMessage)
			convAPI.PUT("/:id/read", h.MarkConversationRead)
			convAPI.GET("/:id/unread", h.UnreadMessageCount)
		}

		messagesAPI := api.Group("/messages", h.RequireAuth())
		{
			messagesAPI.GET("/:id", h.GetMessage)
			messagesAPI.PUT("/:id/read", h.MarkMessageRead)
			messagesAPI.DELETE("/:id", h.RequireStaff(), h.DeleteMessage)
		}

		notifAPI := api.Group("/notifications", h.RequireUser())
		{
			notifAPI.GET("", h.ListNotifications)
			notifAPI.GET("/unread-count", h.UnreadNotificationCount)
			notifAPI.PUT("/:id/read", h.MarkNotificationRead)
			notifAPI.PUT("/read-all", h.MarkAllNotificationsRead)
			notifAPI.DELETE("/:id", h.DeleteNotification)
			notifAPI.DELETE("", h.ClearNotifications)
		}

		api.POST("/uploads", h.RequireAuth(), h.UploadFile)
	}

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	zap.S().Infow("server listening", "port", cfg.Port)
	log.Fatal(server.ListenAndServe())
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
