package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/ksagarwal/settlr/internal/engine"
	"github.com/ksagarwal/settlr/internal/middleware"
	"github.com/ksagarwal/settlr/internal/models"
	"github.com/ksagarwal/settlr/internal/storage"
	"github.com/ksagarwal/settlr/pkg/api"
)

var (
	runsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlr_runs_created_total",
		Help: "Settlement runs persisted.",
	})
	transfersPlanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlr_transfers_planned_total",
		Help: "Transfers produced by the settlement engine.",
	})
)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// ComputeSettlement runs the engine without persisting anything.
// Works for anonymous callers.
func (s *SettlementService) ComputeSettlement(ctx context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	_, result, err := s.settle(req.Msg.TotalCost, req.Msg.Participants)
	if err != nil {
		slog.Error("ComputeSettlement failed", "error", err)
		return nil, err
	}

	return connect.NewResponse(toSettlementResponse(result, req.Msg.Participants)), nil
}

// CreateRun computes a settlement and stores it under the authenticated user.
func (s *SettlementService) CreateRun(ctx context.Context, req *connect.Request[api.CreateRunRequest]) (*connect.Response[api.CreateRunResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	total, result, err := s.settle(req.Msg.TotalCost, req.Msg.Participants)
	if err != nil {
		slog.Error("CreateRun settlement failed", "user_id", userID, "error", err)
		return nil, err
	}

	run := toRunModel(req.Msg.Title, total, result, req.Msg.Participants)
	run.CreatedBy = userID
	if err := s.store.CreateRun(ctx, run); err != nil {
		slog.Error("CreateRun failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	runsCreated.Inc()
	transfersPlanned.Add(float64(len(run.Transfers)))
	slog.Info("Run created", "run_id", run.ID, "user_id", userID, "transfers", len(run.Transfers))

	return connect.NewResponse(&api.CreateRunResponse{Run: toAPIRun(run)}), nil
}

// GetRun retrieves a stored run. Only the creator may read it.
func (s *SettlementService) GetRun(ctx context.Context, req *connect.Request[api.GetRunRequest]) (*connect.Response[api.GetRunResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	run, err := s.ownedRun(ctx, req.Msg.RunId, userID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetRunResponse{Run: toAPIRun(run)}), nil
}

// ListRuns returns the caller's runs, newest first.
func (s *SettlementService) ListRuns(ctx context.Context, req *connect.Request[api.ListRunsRequest]) (*connect.Response[api.ListRunsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	runs, err := s.store.ListRunsByUser(ctx, userID)
	if err != nil {
		slog.Error("ListRuns failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ListRunsResponse{Runs: make([]*api.Run, len(runs))}
	for i, run := range runs {
		resp.Runs[i] = toAPIRun(run)
	}
	return connect.NewResponse(resp), nil
}

// DeleteRun removes a stored run. Only the creator may delete it.
func (s *SettlementService) DeleteRun(ctx context.Context, req *connect.Request[api.DeleteRunRequest]) (*connect.Response[api.DeleteRunResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	if _, err := s.ownedRun(ctx, req.Msg.RunId, userID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteRun(ctx, req.Msg.RunId); err != nil {
		slog.Error("DeleteRun failed", "run_id", req.Msg.RunId, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	slog.Info("Run deleted", "run_id", req.Msg.RunId, "user_id", userID)

	return connect.NewResponse(&api.DeleteRunResponse{}), nil
}

// settle converts the wire input to engine types and runs the engine,
// mapping engine failures to CodeInvalidArgument.
func (s *SettlementService) settle(totalCost decimal.Decimal, participants []api.ParticipantInput) (engine.Cents, *engine.Result, error) {
	total := engine.FromDecimal(totalCost)

	input := make([]engine.Participant, len(participants))
	for i, p := range participants {
		input[i] = engine.Participant{
			Name:        p.Name,
			Contributed: engine.FromDecimal(p.Contributed),
			UPI:         p.Upi,
		}
	}

	result, err := engine.SettleContributions(total, input)
	if err != nil {
		return 0, nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return total, result, nil
}

// ownedRun loads a run and verifies the caller created it.
func (s *SettlementService) ownedRun(ctx context.Context, runID, userID string) (*models.Run, error) {
	run, err := s.store.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		slog.Error("GetRun failed", "run_id", runID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if run.CreatedBy != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("run belongs to another user"))
	}
	return run, nil
}
