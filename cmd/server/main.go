package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"swingconnect/internal/db"
	"swingconnect/internal/events"
	"swingconnect/internal/handlers"
	"swingconnect/internal/router"
	"swingconnect/internal/services"
	"swingconnect/internal/storage/postgres"
	"swingconnect/pkg/log"
)

func main() {
	defer log.Sync()

	// 本地开发读 .env，生产直接用系统环境变量
	if err := godotenv.Load(); err != nil {
		log.L.Info("no .env file found, using system env vars")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.L.Fatal("DATABASE_DSN is required")
	}
	gdb, err := db.Open(dsn)
	if err != nil {
		log.L.Fatal("open database failed", zap.Error(err))
	}
	store := postgres.New(gdb)
	rdb := db.OpenRedis()

	// 领域事件总线：评论/点赞落库后同步派发给通知订阅者
	bus := events.NewBus()

	notificationSvc := services.NewNotificationService(store)
	bus.Subscribe(services.NewNotifier(store, notificationSvc))

	hot := services.NewHotBoard(store, rdb)
	hot.Start()
	bus.Subscribe(hot)

	userSvc := services.NewUserService(store)
	postSvc := services.NewPostService(store, hot)
	commentSvc := services.NewCommentService(store, bus)
	engagementSvc := services.NewEngagementService(store, bus)
	reportSvc := services.NewReportService(store)
	studioSvc := services.NewStudioService(store)

	if err := handlers.InitValidator(); err != nil {
		log.L.Fatal("register validators failed", zap.Error(err))
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}

	r := router.New(router.Handlers{
		Auth:         handlers.NewAuthHandler(userSvc),
		Post:         handlers.NewPostHandler(postSvc, engagementSvc, hot),
		Comment:      handlers.NewCommentHandler(commentSvc, engagementSvc, postSvc),
		Like:         handlers.NewLikeHandler(engagementSvc),
		Report:       handlers.NewReportHandler(reportSvc),
		Notification: handlers.NewNotificationHandler(notificationSvc),
		Studio:       handlers.NewStudioHandler(studioSvc),
		Admin:        handlers.NewAdminHandler(reportSvc, postSvc),
	}, store, secret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.L.Info("swingconnect server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.L.Fatal("server exited", zap.Error(err))
	}
}
