package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ksagarwal/settlr/internal/models"
	"github.com/ksagarwal/settlr/internal/storage"
)

// CreateRun persists a settlement run with its participants and transfers
// in one transaction.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *models.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().Unix()
	}
	if run.Title == "" {
		names := make([]string, len(run.Participants))
		for i, p := range run.Participants {
			names[i] = p.Name
		}
		run.Title = generateTitle(names)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, title, total_cost, fair_share, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Title, run.TotalCost, run.FairShare, run.CreatedBy, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, p := range run.Participants {
		var upi any
		if p.UPI != "" {
			upi = p.UPI
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO run_participants (run_id, position, name, contributed, balance, upi) VALUES (?, ?, ?, ?, ?, ?)",
			run.ID, i, p.Name, p.Contributed, p.Balance, upi,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i, t := range run.Transfers {
		var note any
		if t.Note != "" {
			note = t.Note
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO run_transfers (run_id, position, from_name, to_name, amount, note) VALUES (?, ?, ?, ?, ?, ?)",
			run.ID, i, t.From, t.To, t.Amount, note,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID with participants and transfers in stored order.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*models.Run, error) {
	run := &models.Run{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, total_cost, fair_share, created_by, created_at FROM runs WHERE id = ?",
		runID,
	).Scan(&run.ID, &run.Title, &run.TotalCost, &run.FairShare, &run.CreatedBy, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := s.loadRunDetails(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRunsByUser returns the runs created by userID, newest first.
func (s *SQLiteStore) ListRunsByUser(ctx context.Context, userID string) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, total_cost, fair_share, created_by, created_at FROM runs WHERE created_by = ? ORDER BY created_at DESC, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		if err := rows.Scan(&run.ID, &run.Title, &run.TotalCost, &run.FairShare, &run.CreatedBy, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for _, run := range runs {
		if err := s.loadRunDetails(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// DeleteRun removes a run; participants and transfers cascade.
func (s *SQLiteStore) DeleteRun(ctx context.Context, runID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s: %w", runID, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) loadRunDetails(ctx context.Context, run *models.Run) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, contributed, balance, upi FROM run_participants WHERE run_id = ? ORDER BY position",
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.RunParticipant
		var upi sql.NullString
		if err := rows.Scan(&p.Name, &p.Contributed, &p.Balance, &upi); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		p.UPI = upi.String
		run.Participants = append(run.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	transferRows, err := s.db.QueryContext(ctx,
		"SELECT from_name, to_name, amount, note FROM run_transfers WHERE run_id = ? ORDER BY position",
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get transfers: %w", err)
	}
	defer transferRows.Close()

	for transferRows.Next() {
		var t models.RunTransfer
		var note sql.NullString
		if err := transferRows.Scan(&t.From, &t.To, &t.Amount, &note); err != nil {
			return fmt.Errorf("failed to scan transfer: %w", err)
		}
		t.Note = note.String
		run.Transfers = append(run.Transfers, t)
	}
	if err := transferRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return nil
}
