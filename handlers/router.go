package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/Vikesh2608/EagleReach/middleware"
	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
	"github.com/Vikesh2608/EagleReach/shared/utils"
)

// RouterConfig holds the handlers and dependencies for route setup
type RouterConfig struct {
	Civic          *CivicHandler
	Reports        *ReportHandler
	DB             *gorm.DB
	AllowedOrigins []string
	ServiceName    string
}

// SetupRouter initializes the router and registers all endpoints
func SetupRouter(cfg RouterConfig) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(utils.PanicRecoveryMiddleware)
	mux.Use(middleware.NewCORSMiddleware(cfg.AllowedOrigins))
	mux.Use(monitoring.HTTPMetricsMiddleware)

	mux.Get("/health", healthHandler(cfg.ServiceName, cfg.DB))
	mux.Method(http.MethodGet, "/metrics", monitoring.Handler())

	mux.Post("/ask", cfg.Civic.Ask)

	mux.Route("/api/reports", func(r chi.Router) {
		r.Post("/", cfg.Reports.CreateReport)
		r.Get("/", cfg.Reports.ListReports)
		r.Get("/{id}", cfg.Reports.GetReport)
		r.Patch("/{id}", cfg.Reports.UpdateReportStatus)
	})

	return mux
}

// healthHandler reports service liveness plus database health detail. The
// lookup path works without a database, so a missing DB degrades the status
// instead of failing the check outright.
func healthHandler(serviceName string, db *gorm.DB) http.HandlerFunc {
	type dbHealth struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}
	type healthStatus struct {
		Status    string              `json:"status"`
		Service   string              `json:"service"`
		Databases map[string]dbHealth `json:"databases"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{
			Status:    "healthy",
			Service:   serviceName,
			Databases: map[string]dbHealth{},
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if db == nil {
			status.Databases["reports"] = dbHealth{Status: "unavailable", Error: "database not connected"}
			status.Status = "degraded"
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				status.Databases["reports"] = dbHealth{Status: "unhealthy", Error: err.Error()}
				status.Status = "degraded"
			} else if err := sqlDB.PingContext(ctx); err != nil {
				status.Databases["reports"] = dbHealth{Status: "unhealthy", Error: err.Error()}
				status.Status = "degraded"
			} else {
				status.Databases["reports"] = dbHealth{Status: "healthy"}
			}
		}

		utils.RespondWithJSON(w, http.StatusOK, status)
	}
}
