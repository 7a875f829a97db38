// Package httpapi serves the plain HTTP endpoints that sit next to the
// Connect services: group balances as REST and a health check.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/fairly/internal/middleware"
	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/service"
)

// BalanceSource summarizes a group's balances for one of its members.
type BalanceSource interface {
	Balances(ctx context.Context, groupID, userID string) (*models.GroupBalanceSummary, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	balances BalanceSource
	db       Pinger
	logger   *slog.Logger
}

func New(balances BalanceSource, db Pinger, logger *slog.Logger) *Handler {
	return &Handler{balances: balances, db: db, logger: logger}
}

// Register mounts the routes on mux. requireAuth wraps routes that need a
// signed-in user.
func (h *Handler) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /groups/{groupId}/balances", requireAuth(http.HandlerFunc(h.GroupBalances)))
	mux.HandleFunc("GET /healthz", h.Healthz)
}

// GroupBalances handles GET /groups/{groupId}/balances.
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("groupId")
	userID := middleware.GetUserID(r.Context())

	summary, err := h.balances.Balances(r.Context(), groupID, userID)
	if err != nil {
		code := service.ErrorCode(err)
		status := httpStatus(code)
		if status == http.StatusInternalServerError {
			h.logger.Error("Balances failed", "group_id", groupID, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, service.ToAPIBalances(summary))
}

// Healthz answers 200 when the database is reachable.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("Health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// httpStatus follows the Connect protocol's code to status mapping.
func httpStatus(code connect.Code) int {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeFailedPrecondition, connect.CodeOutOfRange:
		return http.StatusBadRequest
	case connect.CodeUnauthenticated:
		return http.StatusUnauthorized
	case connect.CodePermissionDenied:
		return http.StatusForbidden
	case connect.CodeNotFound:
		return http.StatusNotFound
	case connect.CodeAlreadyExists, connect.CodeAborted:
		return http.StatusConflict
	case connect.CodeResourceExhausted:
		return http.StatusTooManyRequests
	case connect.CodeCanceled:
		return 499
	case connect.CodeUnimplemented:
		return http.StatusNotImplemented
	case connect.CodeUnavailable:
		return http.StatusServiceUnavailable
	case connect.CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: "error", Message: message})
}
