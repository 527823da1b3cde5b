package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/marketeer/configs"
	"github.com/maheshrc27/marketeer/internal/api/handlers"
	"github.com/maheshrc27/marketeer/internal/api/middleware"
	job "github.com/maheshrc27/marketeer/internal/jobs"
	"github.com/maheshrc27/marketeer/internal/llm"
	"github.com/maheshrc27/marketeer/internal/queue"
	"github.com/maheshrc27/marketeer/internal/repository"
	"github.com/maheshrc27/marketeer/internal/service"
	"github.com/maheshrc27/marketeer/internal/twitter"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	xAccountRepo := repository.NewXAccountRepository(db)
	setupRepo := repository.NewSetupRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	tokenStore := service.NewAccountTokenStore(*cfg, xAccountRepo)
	twitterClient := twitter.NewClient(twitter.Config{
		ClientID:     cfg.XClientID,
		ClientSecret: cfg.XClientSecret,
	}, tokenStore)

	llmClient := llm.NewClient(llm.Config{
		APIKey:      cfg.TogetherKey,
		APIURL:      cfg.TogetherURL,
		Model:       cfg.TogetherModel,
		Temperature: 0.8,
		MaxTokens:   1000,
		TopP:        0.9,
	})

	authService := service.NewAuthService(*cfg, userRepo, xAccountRepo, twitterClient)
	userService := service.NewUserService(userRepo)
	setupService := service.NewSetupService(setupRepo)
	writerService := service.NewWriterService(db, tweetRepo, llmClient)
	tweetsService := service.NewTweetsService(tweetRepo)
	publishService := service.NewPublishService(tweetRepo, twitterClient)
	analyticsService := service.NewAnalyticsService(xAccountRepo, twitterClient)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	r2Service, err := service.NewR2Service(*cfg)
	if err != nil {
		log.Fatalf("Failed to build storage client: %v", err)
	}
	mediaService := service.NewMediaService(mediaAssetRepo, r2Service)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService, xAccountRepo)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Get("/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Delete("/user", user.RemoveUser)

	setup := handlers.NewSetupHandler(setupService)
	api.Get("/setup", setup.GetSetup)
	api.Post("/setup", setup.SaveSetup)

	writer := handlers.NewWriterHandler(writerService, setupService)
	api.Post("/writer/generate", writer.Generate)

	tweets := handlers.NewTweetsHandler(tweetsService, client)
	api.Get("/tweets", tweets.ListTweets)
	api.Patch("/tweets/update", tweets.UpdateTweet)
	api.Post("/tweets/schedule", tweets.ScheduleTweet)

	publish := handlers.NewPublishHandler(publishService)
	api.Post("/tweets/publish", publish.PublishTweet)

	analytics := handlers.NewAnalyticsHandler(analyticsService)
	api.Post("/analytics", analytics.FetchAnalytics)
	api.Get("/twitter/timeline", analytics.Timeline)

	media := handlers.NewMediaHandler(mediaService)
	api.Post("/media/upload", media.UploadMedia)
	api.Get("/media", media.ListMedia)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(xAccountRepo, twitterClient, tokenStore)

	// queue
	queueW := queue.NewQueue(*cfg, tweetRepo, xAccountRepo, publishService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeScheduleTweet, queueW.HandleScheduleTweetTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
