package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"portops-backend/internal/auth"
	"portops-backend/internal/cache"
	"portops-backend/internal/config"
	"portops-backend/internal/database"
	"portops-backend/internal/db"
	"portops-backend/internal/handlers"
	"portops-backend/internal/health"
	httprouter "portops-backend/internal/http"
	"portops-backend/internal/middleware"
	"portops-backend/internal/models"
	"portops-backend/internal/monitoring"
	"portops-backend/internal/repositories"
	"portops-backend/internal/services"
	"portops-backend/internal/storage"
	"portops-backend/internal/ws"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	monitorPort := flag.Int("monitor-port", 9090, "Monitoring dashboard port")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Run database migrations
	// This automatically creates all required tables on startup
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (responses will be computed per request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Live update hub for open vessel/tally screens
	hub := ws.NewHub()
	go hub.Run()

	// Object-storage archiver for raw import uploads (optional)
	archiver, err := storage.NewArchiver(cfg)
	if err != nil {
		log.Printf("[Archive] Upload archiving disabled: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring dashboard server in background
	go monitoring.NewServer(pool, *monitorPort).Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	vesselRepo := repositories.NewVesselRepository(pool)
	containerRepo := repositories.NewContainerRepository(pool)
	tallyRepo := repositories.NewTallyReportRepository(pool)
	workOrderRepo := repositories.NewWorkOrderRepository(pool)
	resourceRepo := repositories.NewResourceRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	importService := services.NewImportService(containerRepo, vesselRepo, hub, archiver, services.ImportDefaults{
		Pkgs:          cfg.Import.DefaultPkgs,
		Weight:        cfg.Import.DefaultWeight,
		DropOff:       cfg.Import.DefaultDropOff,
		DetentionDays: cfg.Import.DetentionDays,
	})
	tallyService := services.NewTallyService(tallyRepo, containerRepo, vesselRepo, hub)
	workOrderService := services.NewWorkOrderService(workOrderRepo, hub)
	statisticsService := services.NewStatisticsService(workOrderRepo, containerRepo)
	dashboardService := services.NewDashboardService(containerRepo, services.DetentionConfig{
		UrgentDays:  cfg.Detention.UrgentDays,
		WarningDays: cfg.Detention.WarningDays,
	})
	pdfService := services.NewReportPDFService(tallyService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	vesselHandler := handlers.NewVesselHandler(vesselRepo)
	containerHandler := handlers.NewContainerHandler(containerRepo, importService)
	tallyHandler := handlers.NewTallyHandler(tallyService, pdfService)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService, pdfService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	workerHandler := handlers.NewResourceHandler(resourceRepo, models.ResourceWorker)
	teamHandler := handlers.NewResourceHandler(resourceRepo, models.ResourceTeam)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := httprouter.NewRouter(
		authHandler,
		userHandler,
		vesselHandler,
		containerHandler,
		tallyHandler,
		workOrderHandler,
		statisticsHandler,
		dashboardHandler,
		workerHandler,
		teamHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
