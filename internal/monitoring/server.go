package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Server exposes an ops sidecar on its own port: host resource usage
// plus row counts for the main collections. The terminal office checks
// this page when imports feel slow.
type Server struct {
	db      *pgxpool.Pool
	port    int
	started time.Time
}

type Stats struct {
	DatabaseStatus string  `json:"database_status"`
	ResponseTime   int64   `json:"response_time_ms"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	MemoryUsed     string  `json:"memory_used"`
	MemoryTotal    string  `json:"memory_total"`
	DiskPercent    float64 `json:"disk_percent"`
	DiskUsed       string  `json:"disk_used"`
	DiskTotal      string  `json:"disk_total"`
	Uptime         string  `json:"uptime"`

	Vessels      int64 `json:"vessels"`
	Containers   int64 `json:"containers"`
	TallyReports int64 `json:"tally_reports"`
	WorkOrders   int64 `json:"work_orders"`
}

func NewServer(db *pgxpool.Pool, port int) *Server {
	return &Server{db: db, port: port, started: time.Now()}
}

// Start blocks; run it in a goroutine.
func (s *Server) Start() {
	r := mux.NewRouter()
	r.HandleFunc("/stats", s.statsHandler).Methods("GET")

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Printf("[Monitoring] server stopped: %v", err)
	}
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.collect(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *Server) collect(ctx context.Context) Stats {
	var stats Stats
	stats.Uptime = time.Since(s.started).Round(time.Second).String()

	dbCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	start := time.Now()
	if err := s.db.Ping(dbCtx); err != nil {
		stats.DatabaseStatus = "unhealthy"
	} else {
		stats.DatabaseStatus = "healthy"
	}
	stats.ResponseTime = time.Since(start).Milliseconds()

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsed = formatBytes(vm.Used)
		stats.MemoryTotal = formatBytes(vm.Total)
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
		stats.DiskUsed = formatBytes(du.Used)
		stats.DiskTotal = formatBytes(du.Total)
	}

	if stats.DatabaseStatus == "healthy" {
		s.db.QueryRow(dbCtx, `SELECT count(*) FROM vessels`).Scan(&stats.Vessels)
		s.db.QueryRow(dbCtx, `SELECT count(*) FROM containers`).Scan(&stats.Containers)
		s.db.QueryRow(dbCtx, `SELECT count(*) FROM tally_reports`).Scan(&stats.TallyReports)
		s.db.QueryRow(dbCtx, `SELECT count(*) FROM work_orders`).Scan(&stats.WorkOrders)
	}

	return stats
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
