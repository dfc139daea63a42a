package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"fourkara/backend/internal/api/handler"
	"fourkara/backend/internal/api/middleware"
	"fourkara/backend/internal/chathub"
	"fourkara/backend/internal/config"
	"fourkara/backend/internal/models"
	"fourkara/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.ProProfile{},
		&models.ChatToken{},
		&models.Job{},
		&models.Bid{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting fourkara backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	hub := chathub.NewHub(s)
	h := handler.NewHandler(s, hub, cfg.JWTSecret)

	r := gin.Default()

	// Public
	r.POST("/api/users/register/", h.Register)
	r.POST("/api/users/login/", h.Login)

	// Chat socket authenticates via its own token query parameter.
	r.GET("/ws/chat/:job_id/", h.ServeChat)

	// Authenticated REST surface
	api := r.Group("/api", middleware.RequireAuth(cfg.JWTSecret))
	{
		api.POST("/jobs/", h.CreateJob)
		api.GET("/jobs/", h.ListOpenJobs)
		api.GET("/jobs/:job_id/", h.JobDetail)
		api.POST("/jobs/:job_id/bid/", h.CreateBid)
		api.POST("/bids/:bid_id/accept/", h.AcceptBid)
		api.GET("/my-jobs/", h.MyJobs)
		api.GET("/my-work/", h.MyWork)
		api.GET("/jobs/:job_id/messages/", h.ListMessages)
		api.POST("/jobs/:job_id/messages/", h.CreateMessage)
	}

	// No global read/write timeouts: the chat sockets are long-lived and
	// enforce their own deadlines in the pumps.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
