package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/redis/go-redis/v9"

	"github.com/kenancosic/eRents-sub000/internal/caching"
	"github.com/kenancosic/eRents-sub000/internal/handlers"
	"github.com/kenancosic/eRents-sub000/internal/jobs/background"
	"github.com/kenancosic/eRents-sub000/internal/middleware"
	"github.com/kenancosic/eRents-sub000/internal/repositories"
	"github.com/kenancosic/eRents-sub000/internal/services"
	"github.com/kenancosic/eRents-sub000/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// One Redis connection shared by the cache and the notification publisher.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	cacheSvc := caching.NewRedisCacheServiceWithClient(redisClient)

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "lease-documents"
	}

	documentsSvc, err := services.NewLeaseDocumentService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize lease document storage: %v", err)
	}

	// Create repositories
	propertiesRepo := repositories.NewPropertiesRepo(pool)
	tenantsRepo := repositories.NewTenantsRepo(pool)
	rentalRequestsRepo := repositories.NewRentalRequestsRepo(pool)
	bookingsRepo := repositories.NewBookingsRepo(pool)
	blockedPeriodsRepo := repositories.NewBlockedPeriodsRepo(pool)
	notificationsRepo := repositories.NewNotificationsRepo(pool)

	// Create services
	calculator := services.NewLeaseCalculator(tenantsRepo, rentalRequestsRepo, propertiesRepo)
	availabilitySvc := services.NewAvailabilityService(calculator, propertiesRepo, tenantsRepo,
		rentalRequestsRepo, bookingsRepo, blockedPeriodsRepo)
	notificationSvc := services.NewNotificationService(notificationsRepo, redisClient)
	monitor := services.NewContractMonitor(calculator, tenantsRepo, propertiesRepo, notificationSvc, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(monitor, cacheSvc)
	if err != nil {
		log.Fatalf("Failed to initialize job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("scheduler shutdown: %v", err)
		}
	}()

	// Create handlers
	availabilityHandlers := handlers.NewAvailabilityHandlers(availabilitySvc)
	leaseHandlers := handlers.NewLeaseHandlers(calculator, cacheSvc)
	contractHandlers := handlers.NewContractHandlers(monitor, documentsSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, scheduler)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	// Protected API routes
	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	// Availability
	v1.GET("/properties/:id/availability", availabilityHandlers.CheckAvailability)
	v1.GET("/properties/:id/conflicts", availabilityHandlers.GetConflicts)

	// Leases
	v1.GET("/leases/statistics", leaseHandlers.GetStatistics)
	v1.GET("/leases/active", leaseHandlers.GetActiveLeases)
	v1.GET("/leases/attention", leaseHandlers.GetRequiringAttention)

	// Contracts
	v1.GET("/contracts/summary", contractHandlers.GetSummary)
	v1.GET("/contracts/expiring", contractHandlers.GetExpiring)
	v1.GET("/contracts/expired", contractHandlers.GetExpired)
	v1.POST("/contracts/:tenantId/process", contractHandlers.ProcessExpiration)
	v1.POST("/contracts/:tenantId/remind", contractHandlers.SendReminder)
	v1.POST("/contracts/:tenantId/document", contractHandlers.UploadDocument)
	v1.GET("/contracts/:tenantId/document", contractHandlers.GetDocument)

	// Notifications
	v1.GET("/notifications", notificationHandlers.List)
	v1.POST("/notifications/:id/read", notificationHandlers.MarkRead)

	// Admin
	v1.POST("/admin/sweep", healthHandlers.RunSweep)
	v1.GET("/admin/leases", leaseHandlers.GetAllActiveLeases)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("eRents occupancy service v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
