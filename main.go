package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lekturai/config"
	"lekturai/handler"
	"lekturai/middleware"
	"lekturai/repository"
	"lekturai/services"
	"lekturai/usecase"
	"lekturai/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"STATS_COLLECTION",
		"DAILY_STATS_COLLECTION",
		"HISTORY_COLLECTION",
		"SCHOOLS_COLLECTION",
		"EXAMS_COLLECTION",
		"QUESTIONS_COLLECTION",
		"ANSWERS_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	// Initialize JWT
	utils.InitJWT()
	// Initialize MongoDB connection
	utils.InitMongoClient()
}

type app struct {
	stats      *usecase.AllTimeStatsService
	daily      *usecase.DailyWindowService
	cohort     *usecase.CohortService
	reconciler *usecase.StreakReconciler
	exercises  *usecase.ExerciseService
	users      *usecase.UserService
	schools    *repository.SchoolRepo
	history    *repository.HistoryRepo
	cache      *services.StatsCache
}

func buildApp() *app {
	userRepo := repository.GetUserRepo(utils.MongoClient)
	statsRepo := repository.GetStatsRepo(utils.MongoClient)
	dailyRepo := repository.GetDailyStatsRepo(utils.MongoClient)
	historyRepo := repository.GetHistoryRepo(utils.MongoClient)
	schoolRepo := repository.GetSchoolRepo(utils.MongoClient)
	examRepo := repository.GetExamRepo(utils.MongoClient)

	stats := usecase.NewAllTimeStatsService(statsRepo)
	daily := usecase.NewDailyWindowService(dailyRepo)

	var cache *services.StatsCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		ttl := utils.GetEnvAsDuration("STATS_CACHE_TTL", 5*time.Minute)
		var err error
		cache, err = services.NewStatsCache(redisURL, ttl)
		if err != nil {
			log.Printf("Stats cache disabled: %v", err)
			cache = nil
		}
	}

	return &app{
		stats:      stats,
		daily:      daily,
		cohort:     usecase.NewCohortService(userRepo, statsRepo, dailyRepo),
		reconciler: usecase.NewStreakReconciler(userRepo, stats),
		exercises: &usecase.ExerciseService{
			Grader:      services.NewGrader(),
			Detector:    services.NewDetector(),
			Stats:       stats,
			Daily:       daily,
			HistoryRepo: historyRepo,
			ExamRepo:    examRepo,
		},
		users: &usecase.UserService{
			UserRepo:    userRepo,
			Stats:       stats,
			Daily:       daily,
			HistoryRepo: historyRepo,
		},
		schools: schoolRepo,
		history: historyRepo,
		cache:   cache,
	}
}

func setupRouter(a *app) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())

	authHandler := handler.NewAuthHandler(a.users)
	userHandler := handler.NewUserHandler(a.users)
	statsHandler := handler.NewStatsHandler(a.stats, a.daily, a.cohort, a.cache)
	exercisesHandler := handler.NewExercisesHandler(a.exercises)
	schoolsHandler := handler.NewSchoolsHandler(a.schools)
	historyHandler := handler.NewHistoryHandler(a.history)
	adminHandler := handler.NewAdminHandler(a.reconciler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		schools := public.Group("/schools")
		schools.Use(middleware.CacheControlMiddleware("300"))
		{
			schools.GET("/by_city", schoolsHandler.SearchByCity)
			schools.GET("/by_name", schoolsHandler.SearchByName)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", userHandler.GetProfile)
			user.PATCH("/profile", userHandler.UpdateProfile)
			user.DELETE("/delete", userHandler.DeleteAccount)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("/user_stats", statsHandler.GetUserStats)
			stats.GET("/user_daily_stats", statsHandler.GetUserDailyStats)
			stats.GET("/avg_scores", statsHandler.GetAvgScores)
			stats.GET("/avg_daily", statsHandler.GetAvgDaily)
		}

		exercises := protected.Group("/exercises")
		{
			exercises.GET("/reading/:reading_name", exercisesHandler.GenerateReading)
			exercises.POST("/reading", exercisesHandler.SubmitReading)
			exercises.GET("/matura", exercisesHandler.RandomMatura)
			exercises.POST("/matura/:question_id", exercisesHandler.SubmitMatura)
		}

		history := protected.Group("/history")
		{
			history.GET("/", historyHandler.GetRange)
			history.DELETE("/:entry_id", historyHandler.DeleteEntry)
		}

		admin := protected.Group("/admin")
		{
			admin.POST("/reconcile", adminHandler.TriggerReconcile)
		}
	}

	return router
}

func main() {
	reconcileOnce := flag.Bool("reconcile", false, "run the streak reconciliation once and exit")
	flag.Parse()

	dbConfig := config.LoadDatabaseConfig()
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Printf("Index setup failed: %v", err)
	}

	a := buildApp()

	// The external scheduler runs the binary with -reconcile once per day.
	if *reconcileOnce {
		report, err := a.reconciler.Run(context.Background(), nil)
		if err != nil {
			log.Fatalf("Streak reconciliation failed: %v", err)
		}
		log.Printf("Streak reconciliation: %d processed, %d reset, %d failed",
			report.Processed, report.Reset, report.Failed)
		return
	}

	utils.StartSystemMetrics(15 * time.Second)

	router := setupRouter(a)

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
