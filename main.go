package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v72"

	"sufra/cache"
	"sufra/config"
	"sufra/database"
	"sufra/handlers"
	"sufra/metrics"
	"sufra/routes"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	config.LoadFromEnv()
	if config.AppConfig.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if config.AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	stripe.Key = config.AppConfig.StripeSecretKey

	// Initialize database
	database.InitDB(config.AppConfig.DatabaseURL)
	defer database.CloseDB()

	// Remote data cache for schedule and cart reads
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	handlers.SetCache(cache.New(rdb))

	metrics.Register()

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(":3000"))
}
