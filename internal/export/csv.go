// Package export renders persisted settlement runs for download.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ksagarwal/settlr/internal/auth"
	"github.com/ksagarwal/settlr/internal/engine"
	"github.com/ksagarwal/settlr/internal/models"
	"github.com/ksagarwal/settlr/internal/storage"
)

var csvHeader = []string{"name", "contributed", "share", "balance", "status", "upi"}

// WriteRunCSV writes the per-participant summary of a run as CSV:
// one row per participant with their contribution, share, balance, and
// settlement status, in the run's original order.
func WriteRunCSV(w io.Writer, run *models.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range run.Participants {
		row := []string{
			p.Name,
			engine.Cents(p.Contributed).String(),
			engine.Cents(run.FairShare).String(),
			engine.Cents(p.Balance).String(),
			statusFor(p.Balance),
			p.UPI,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", p.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// statusFor mirrors the per-person badge: gets back, owes, or settled.
func statusFor(balance int64) string {
	switch {
	case balance > 0:
		return "gets back"
	case balance < 0:
		return "owes"
	default:
		return "settled"
	}
}

// RunStore is the subset of storage the export handler needs.
type RunStore interface {
	GetRun(ctx context.Context, runID string) (*models.Run, error)
}

// NewHandler returns the handler for GET /runs/{id}/export.csv.
// It applies the same bearer-token and ownership checks as the RPC
// surface before streaming the file.
func NewHandler(store RunStore, jwtManager *auth.JWTManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := validateBearer(r, jwtManager)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		runID := r.PathValue("id")
		run, err := store.GetRun(r.Context(), runID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			slog.Error("export: failed to load run", "run_id", runID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if run.CreatedBy != claims.UserID {
			http.Error(w, "run belongs to another user", http.StatusForbidden)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "split_summary.csv"))
		if err := WriteRunCSV(w, run); err != nil {
			slog.Error("export: failed to write csv", "run_id", runID, "error", err)
		}
	}
}

func validateBearer(r *http.Request, jwtManager *auth.JWTManager) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, auth.ErrMissingToken
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return nil, auth.ErrInvalidToken
	}
	return jwtManager.Validate(header[len(prefix):])
}
