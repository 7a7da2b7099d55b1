package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clicker-backend/handlers"
	"clicker-backend/middleware"
	"clicker-backend/models"
	"clicker-backend/services"
	"clicker-backend/utils"
	"clicker-backend/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "Clicker Backend",
	})

	// Gateway token check applies globally; it is a no-op when the token
	// env var is unset (standalone deployments).
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	originList := strings.Split(allowedOrigins, ",")
	for i, origin := range originList {
		originList[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(originList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-User-ID, X-Service-Token",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// The record store is optional: without DATABASE_URL every store
	// operation reports "unavailable" instead of the process refusing to
	// start.
	var db *gorm.DB
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set — running with the record store disabled")
	} else {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		if err := db.AutoMigrate(&models.Player{}); err != nil {
			log.Fatal("failed to migrate database:", err)
		}
	}

	if err := utils.InitAssetStore(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Println("R2 not configured — skin uploads disabled")
		} else {
			log.Fatal("failed to initialize asset store:", err)
		}
	}

	cache, err := services.ConnectLeaderboardCache(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		log.Fatal("failed to connect to redis:", err)
	}

	playerService := services.NewPlayerService(db)
	playerService.StartIncomeScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollLeaderboard(ctx, playerService, cache, 10*time.Second)

	handlers.SetupPlayerRoutes(app, playerService, cache)
	handlers.SetupAdminRoutes(app)

	// Served single-page client and character images. Pure delivery; all
	// rules the page evaluates locally are re-derived server-side on sync.
	app.Static("/", "./public")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)
	if db == nil {
		log.Println("Record store: DISABLED")
	}
	if cache != nil {
		log.Println("Leaderboard cache: enabled (refreshed every 10s)")
	}

	<-ctx.Done()
	log.Println("Shutting down server...")
}
