package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/raj921/ai-interview-bots/internal/config"
	"github.com/raj921/ai-interview-bots/internal/handlers"
	"github.com/raj921/ai-interview-bots/internal/repositories"
	"github.com/raj921/ai-interview-bots/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	resumeRepo := repositories.NewResumeRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	resumeParser := services.NewResumeParserService(pdfParser)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant (optional: question generation works without
	// the knowledge collection, just with a leaner prompt)
	var qdrantService services.QdrantService
	if cfg.Qdrant.Enabled {
		qdrantService, err = services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := qdrantService.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	} else {
		log.Println("⚠️  Qdrant disabled; generating questions without retrieved context")
	}

	// Initialize AI collaborators
	questionProvider := services.NewQuestionProvider(
		geminiService,
		qdrantService,
		cfg.Interview.JobProfile,
		cfg.Interview.RetryMaxAttempts,
	)
	answerEvaluator := services.NewAnswerEvaluator(
		geminiService,
		cfg.Interview.JobProfile,
		cfg.Interview.RetryMaxAttempts,
	)
	summaryGenerator := services.NewSummaryGenerator(
		geminiService,
		cfg.Interview.JobProfile,
		cfg.Interview.RetryMaxAttempts,
	)
	log.Println("✅ AI collaborators initialized")

	// Initialize session state machine
	sessionService := services.NewSessionService(
		questionProvider,
		answerEvaluator,
		summaryGenerator,
		candidateRepo,
	)

	// Start countdown runner
	countdown := services.NewCountdownRunner(sessionService, cfg.Interview.TickInterval)
	countdown.Start()

	// Initialize Handlers
	resumeHandler := handlers.NewResumeHandler(
		resumeRepo,
		storageService,
		resumeParser,
		sessionService,
		cfg.Storage.MaxFileSize,
	)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	candidateHandler := handlers.NewCandidateHandler(candidateRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interview Assistant API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Interviewee endpoints
	api.Post("/resume", resumeHandler.HandleUpload)
	api.Get("/session", sessionHandler.HandleGetSession)
	api.Post("/session/profile", sessionHandler.HandleSubmitProfile)
	api.Post("/session/answer", sessionHandler.HandleSubmitAnswer)
	api.Put("/session/draft", sessionHandler.HandleStageDraft)
	api.Post("/session/pause", sessionHandler.HandlePause)
	api.Post("/session/resume", sessionHandler.HandleResume)
	api.Post("/session/reset", sessionHandler.HandleReset)

	// Interviewer endpoints
	api.Get("/candidates", candidateHandler.HandleList)
	api.Get("/candidates/:id", candidateHandler.HandleGetCandidate)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interview Assistant API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resume",
				"GET /api/v1/session",
				"POST /api/v1/session/profile",
				"POST /api/v1/session/answer",
				"PUT /api/v1/session/draft",
				"POST /api/v1/session/pause",
				"POST /api/v1/session/resume",
				"POST /api/v1/session/reset",
				"GET /api/v1/candidates",
				"GET /api/v1/candidates/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		countdown.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
