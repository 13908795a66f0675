package app

import (
	"database/sql"
	"fmt"
	"log"

	"gradevision/internal/config"
	"gradevision/internal/handlers"
	"gradevision/internal/middleware"
	"gradevision/internal/pdf"
	"gradevision/internal/repositories"
	"gradevision/internal/routes"
	"gradevision/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.JWTKey = []byte(cfg.Auth.JWTSecret)

	// === Stores ===
	var (
		userRepo    repositories.UserRepository
		otpRepo     repositories.OtpRepository
		studentRepo repositories.StudentRepository
		alertRepo   repositories.AlertRepository
	)
	if cfg.Database.DSN == "" || cfg.Database.DSN == "memory" {
		// DSN-less mode keeps everything in process, seeded with sample data
		log.Printf("[app] no database configured, using in-memory stores")
		userRepo = repositories.NewMemoryUserRepository()
		otpRepo = repositories.NewMemoryOtpRepository()
		studentRepo = repositories.NewMemoryStudentRepository()
		alertRepo = repositories.NewMemoryAlertRepository()
		if err := repositories.SeedSampleData(studentRepo, alertRepo); err != nil {
			log.Fatal("Failed to seed sample data: ", err)
		}
	} else {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Fatal("Failed to open database: ", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to reach database: ", err)
		}
		userRepo = repositories.NewUserRepository(db)
		otpRepo = repositories.NewOtpRepository(db)
		studentRepo = repositories.NewStudentRepository(db)
		alertRepo = repositories.NewAlertRepository(db)
	}

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.TokenTTL.Std())
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	otpService := services.NewOtpService(otpRepo, cfg.Auth.OTPTTL.Std(), cfg.Auth.MaxOTPAttempts)
	userService := services.NewUserService(
		userRepo,
		otpService,
		emailService,
		authService,
		cfg.Auth.DemoAccounts,
		cfg.Auth.MaxLoginAttempts,
		cfg.Auth.LockDuration.Std(),
	)
	studentService := services.NewStudentService(studentRepo)

	var telegramService *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		telegramService = services.NewTelegramService(cfg.Telegram.BotToken)
	}
	alertService := services.NewAlertService(alertRepo, telegramService, cfg.Telegram.AlertChatID)

	analyticsService := services.NewAnalyticsService(studentService)
	predictionService := services.NewPredictionService()
	gamificationService := services.NewGamificationService()
	reportGenerator := pdf.NewReportGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	studentHandler := handlers.NewStudentHandler(studentService)
	alertHandler := handlers.NewAlertHandler(alertService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	predictionHandler := handlers.NewPredictionHandler(studentService, predictionService)
	gamificationHandler := handlers.NewGamificationHandler(studentService, gamificationService)
	reportHandler := handlers.NewReportHandler(studentService, analyticsService, reportGenerator)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	routes.SetupRoutes(
		router,
		authHandler,
		studentHandler,
		alertHandler,
		analyticsHandler,
		predictionHandler,
		gamificationHandler,
		reportHandler,
	)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[app] listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
