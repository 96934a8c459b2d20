package main

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"petcare-service/internal/handler"
	"petcare-service/internal/middleware"
	"petcare-service/internal/model"
	"petcare-service/internal/repository"
	"petcare-service/internal/service"
	"petcare-service/pkg/config"
	"petcare-service/pkg/database"
	"petcare-service/pkg/jwtutil"
	"petcare-service/pkg/logger"
	"petcare-service/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("petcare-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting pet care service...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics()
	log.Info("Prometheus metrics initialized")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	medicalRepo := repository.NewMedicalRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, log)
	userSvc := service.NewUserAdminService(userRepo, log)
	petSvc := service.NewPetService(petRepo, log)
	schedulingSvc := service.NewSchedulingService(apptRepo, petRepo, userRepo, cfg.Scheduling, log)
	medicalSvc := service.NewMedicalService(medicalRepo, petRepo, apptRepo, cfg.Scheduling, log)
	expenseSvc := service.NewExpenseService(expenseRepo, petRepo, log)
	dashboardSvc := service.NewDashboardService(statsRepo, petRepo, apptRepo, medicalRepo, schedulingSvc, medicalSvc, log)

	if err := seedAdmin(db, &cfg.Admin, log); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, jwtUtil)
	userHandler := handler.NewUserHandler(userSvc)
	petHandler := handler.NewPetHandler(petSvc)
	apptHandler := handler.NewAppointmentHandler(schedulingSvc)
	medicalHandler := handler.NewMedicalHandler(medicalSvc)
	expenseHandler := handler.NewExpenseHandler(expenseSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", prometheus.Handler())

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtUtil, userRepo))

	// Account self-service
	users := api.Group("/users")
	users.GET("/profile", authHandler.Profile)
	users.PATCH("/profile", authHandler.UpdateProfile)
	users.POST("/change-password", authHandler.ChangePassword)
	users.DELETE("/account", authHandler.DeleteAccount)
	users.GET("/search", userHandler.Search)

	// Admin user management
	adminUsers := api.Group("/admin/users")
	adminUsers.GET("", userHandler.List)
	adminUsers.POST("", userHandler.Create)
	adminUsers.PUT("/:id", userHandler.Update)
	adminUsers.DELETE("/:id", userHandler.Delete)

	// Pets
	pets := api.Group("/pets")
	pets.GET("", petHandler.List)
	pets.POST("", petHandler.Create)
	pets.GET("/:id", petHandler.Get)
	pets.PUT("/:id", petHandler.Update)
	pets.DELETE("/:id", petHandler.Delete)
	pets.GET("/:id/medical", medicalHandler.PetHistory)

	// Appointments
	appointments := api.Group("/appointments")
	appointments.GET("", apptHandler.List)
	appointments.POST("", apptHandler.Book)
	appointments.GET("/today", apptHandler.Today)
	appointments.PATCH("/:id/status", apptHandler.UpdateStatus)

	// Medical records
	api.POST("/vaccinations", medicalHandler.AddVaccination)
	api.GET("/vaccinations", medicalHandler.ListVaccinations)
	api.POST("/medications", medicalHandler.AddMedication)
	api.GET("/medications", medicalHandler.ListMedications)
	api.GET("/reminders", medicalHandler.Reminders)

	// Expenses
	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)

	// Dashboard
	api.GET("/dashboard", dashboardHandler.Get)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// seedAdmin creates the configured admin account on first boot so the
// system is administrable before any user registers.
func seedAdmin(db *gorm.DB, admin *config.AdminConfig, log *zap.Logger) error {
	var existing model.User
	err := db.Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user := &model.User{
		FullName: admin.FullName,
		Email:    admin.Email,
		Password: string(hashed),
		Role:     model.RoleAdmin,
		Status:   model.UserStatusActive,
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	log.Info("Default admin account created", zap.String("email", admin.Email))
	return nil
}
