package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portops-backend/internal/handlers"
	"portops-backend/internal/middleware"
	"portops-backend/internal/models"
	"portops-backend/internal/ws"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	vesselHandler *handlers.VesselHandler,
	containerHandler *handlers.ContainerHandler,
	tallyHandler *handlers.TallyHandler,
	workOrderHandler *handlers.WorkOrderHandler,
	statisticsHandler *handlers.StatisticsHandler,
	dashboardHandler *handlers.DashboardHandler,
	workerHandler *handlers.ResourceHandler,
	teamHandler *handlers.ResourceHandler,
	healthHandler *handlers.HealthHandler,
	hub *ws.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireRole(models.RoleAdmin))
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.UpsertUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.UpsertUser).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")

	// Protected API routes - Vessels
	vesselsAPI := r.PathPrefix("/api/vessels").Subrouter()
	vesselsAPI.Use(authMiddleware.Authenticate)
	vesselsAPI.HandleFunc("", vesselHandler.ListVessels).Methods("GET")
	vesselsAPI.HandleFunc("", vesselHandler.UpsertVessels).Methods("POST", "PUT")
	vesselsAPI.HandleFunc("/{id}", vesselHandler.GetVessel).Methods("GET")
	vesselsAPI.HandleFunc("/{id}", authMiddleware.RequireRole(models.RoleAdmin, models.RoleCS)(http.HandlerFunc(vesselHandler.DeleteVessel)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Containers
	containersAPI := r.PathPrefix("/api/containers").Subrouter()
	containersAPI.Use(authMiddleware.Authenticate)
	containersAPI.HandleFunc("", containerHandler.ListContainers).Methods("GET")
	containersAPI.HandleFunc("", containerHandler.UpsertContainers).Methods("POST")
	containersAPI.HandleFunc("", containerHandler.ReplaceContainers).Methods("PUT")
	containersAPI.HandleFunc("/import", authMiddleware.RequireRole(models.RoleAdmin, models.RoleCS)(http.HandlerFunc(containerHandler.ImportRows)).ServeHTTP).Methods("POST")
	containersAPI.HandleFunc("/import/file", authMiddleware.RequireRole(models.RoleAdmin, models.RoleCS)(http.HandlerFunc(containerHandler.ImportFile)).ServeHTTP).Methods("POST")
	containersAPI.HandleFunc("/{id}", containerHandler.GetContainer).Methods("GET")
	containersAPI.HandleFunc("/{id}", containerHandler.UpdateContainer).Methods("PATCH")

	// Protected API routes - Tally reports
	tallyAPI := r.PathPrefix("/api/tally-reports").Subrouter()
	tallyAPI.Use(authMiddleware.Authenticate)
	tallyAPI.HandleFunc("", tallyHandler.ListReports).Methods("GET")
	tallyAPI.HandleFunc("", tallyHandler.SaveReport).Methods("POST")
	tallyAPI.HandleFunc("", tallyHandler.ReplaceReports).Methods("PUT")
	tallyAPI.HandleFunc("/approve", authMiddleware.RequireRole(models.RoleAdmin, models.RoleCS)(http.HandlerFunc(tallyHandler.ApproveReports)).ServeHTTP).Methods("POST")
	tallyAPI.HandleFunc("/groups", tallyHandler.ListGroups).Methods("GET")
	tallyAPI.HandleFunc("/groups/print", tallyHandler.PrintGroups).Methods("GET")
	tallyAPI.HandleFunc("/pdf", tallyHandler.BulkPDFZip).Methods("GET")
	tallyAPI.HandleFunc("/{id}/items", tallyHandler.AddItem).Methods("POST")
	tallyAPI.HandleFunc("/{id}/pdf", tallyHandler.ReportPDF).Methods("GET")

	// Protected API routes - Work orders
	workOrdersAPI := r.PathPrefix("/api/work-orders").Subrouter()
	workOrdersAPI.Use(authMiddleware.Authenticate)
	workOrdersAPI.HandleFunc("", workOrderHandler.ListWorkOrders).Methods("GET")
	workOrdersAPI.HandleFunc("", workOrderHandler.SaveWorkOrder).Methods("POST")
	workOrdersAPI.HandleFunc("", workOrderHandler.ReplaceWorkOrders).Methods("PUT")
	workOrdersAPI.HandleFunc("/{id}", workOrderHandler.GetWorkOrder).Methods("GET")

	// Protected API routes - Statistics
	statsAPI := r.PathPrefix("/api/statistics").Subrouter()
	statsAPI.Use(authMiddleware.Authenticate)
	statsAPI.HandleFunc("/workers", statisticsHandler.WorkerStats).Methods("GET")
	statsAPI.HandleFunc("/mechanical", statisticsHandler.MechanicalStats).Methods("GET")
	statsAPI.HandleFunc("/pdf", statisticsHandler.StatsPDF).Methods("GET")
	statsAPI.HandleFunc("/csv", statisticsHandler.StatsCSV).Methods("GET")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.Metrics).Methods("GET")

	// Protected API routes - Workers and teams resource lists
	workersAPI := r.PathPrefix("/api/workers").Subrouter()
	workersAPI.Use(authMiddleware.Authenticate)
	workersAPI.HandleFunc("", workerHandler.List).Methods("GET")
	workersAPI.HandleFunc("", workerHandler.ReplaceAll).Methods("PUT")

	teamsAPI := r.PathPrefix("/api/teams").Subrouter()
	teamsAPI.Use(authMiddleware.Authenticate)
	teamsAPI.HandleFunc("", teamHandler.List).Methods("GET")
	teamsAPI.HandleFunc("", teamHandler.ReplaceAll).Methods("PUT")

	// Live update channel for open screens
	r.HandleFunc("/ws", hub.ServeWS)

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
