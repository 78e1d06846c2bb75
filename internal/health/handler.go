package health

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"jsonshare/pkg/apperr"
)

type CheckResult struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type Response struct {
	Status      string                 `json:"status"`
	Checks      map[string]CheckResult `json:"checks"`
	Timestamp   string                 `json:"timestamp"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
}

type Handler struct {
	DB          *sql.DB
	Version     string
	Environment string
}

func NewHandler(db *sql.DB, version, environment string) *Handler {
	return &Handler{DB: db, Version: version, Environment: environment}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckResult{
		"database":    h.checkDatabase(ctx),
		"environment": checkEnvironment(),
	}

	status := "healthy"
	statusCode := http.StatusOK
	for _, check := range checks {
		if check.Status == "fail" {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	apperr.WriteJSON(w, statusCode, Response{
		Status:      status,
		Checks:      checks,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     h.Version,
		Environment: h.Environment,
	})
}

func (h *Handler) checkDatabase(ctx context.Context) CheckResult {
	start := time.Now()

	dbCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var result int
	err := h.DB.QueryRowContext(dbCtx, "SELECT 1").Scan(&result)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return CheckResult{Status: "fail", Message: err.Error(), LatencyMs: latency}
	}
	return CheckResult{Status: "pass", LatencyMs: latency}
}

func checkEnvironment() CheckResult {
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "WEBHOOK_SIGNING_SECRET"} {
		if os.Getenv(key) == "" {
			return CheckResult{Status: "fail", Message: key + " is not set"}
		}
	}
	return CheckResult{Status: "pass"}
}
