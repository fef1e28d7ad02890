package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"salescrm/internal/database"
	"salescrm/internal/handlers"
	"salescrm/internal/logger"
	"salescrm/internal/metrics"
	"salescrm/internal/repositories"
	"salescrm/internal/routes"
	"salescrm/internal/services"
)

// NewServer wires the whole application together and returns a
// configured HTTP server ready to listen.
func NewServer() (*http.Server, *logger.Logger) {
	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	pool, err := database.Connect(log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	if err := database.RunMigrations(pool, log); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	// Fail fast with a clear message when Redis is unreachable.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to Redis", "addr", redisAddr, "error", err)
		}
		log.Info("connected to Redis", "addr", redisAddr)
	}

	// Dependency injection
	userRepo := repositories.NewUserRepository(pool)
	redisRepo := repositories.NewRedisRepository(rdb)
	oppRepo := repositories.NewOpportunityRepository(pool)
	rfpRepo := repositories.NewRFPDetailsRepository(pool)
	rfpDocRepo := repositories.NewRFPDocumentRepository(pool)
	sowRepo := repositories.NewSOWDetailsRepository(pool)
	sowDocRepo := repositories.NewSOWDocumentRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)

	authService := services.NewAuthService(userRepo, redisRepo, log)
	oppService := services.NewOpportunityService(oppRepo, rfpRepo, rfpDocRepo, sowRepo, sowDocRepo, log)
	rfpService := services.NewRFPService(oppRepo, rfpRepo, rfpDocRepo)
	sowService := services.NewSOWService(oppRepo, sowRepo, sowDocRepo, projectRepo, log)
	schemaService := services.NewSchemaService(pool, log)

	authHandler := handlers.NewAuthHandler(authService)
	oppHandler := handlers.NewOpportunityHandler(oppService)
	rfpHandler := handlers.NewRFPHandler(rfpService)
	sowHandler := handlers.NewSOWHandler(sowService)
	collectionHandler := handlers.NewCollectionHandler(schemaService, oppService, rfpService, sowService)

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	routes.RegisterRoutes(router, authHandler, oppHandler, rfpHandler, sowHandler, collectionHandler, userRepo)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, log
}
