package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ksagarwal/settlr/internal/models"
	"github.com/ksagarwal/settlr/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store *SQLiteStore) *models.User {
	t.Helper()

	user := models.NewUser("asha@example.com", "Asha", "not-a-real-hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestSQLiteStore_Runs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store)

	t.Run("CreateRun generates ID and title", func(t *testing.T) {
		run := &models.Run{
			TotalCost: 120000,
			FairShare: 30000,
			CreatedBy: user.ID,
			Participants: []models.RunParticipant{
				{Name: "Asha", Contributed: 120000, Balance: 90000, UPI: "asha@okbank"},
				{Name: "Bo", Contributed: 0, Balance: -30000},
			},
			Transfers: []models.RunTransfer{
				{From: "Bo", To: "Asha", Amount: 30000, Note: "Pay ₹300.00 to Asha (asha@okbank) for group split"},
			},
		}

		if err := store.CreateRun(ctx, run); err != nil {
			t.Fatalf("CreateRun failed: %v", err)
		}
		if run.ID == "" {
			t.Error("Expected run ID to be generated")
		}
		if run.Title == "" {
			t.Error("Expected run title to be generated")
		}
		if run.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetRun preserves input order", func(t *testing.T) {
		original := &models.Run{
			Title:     "Goa trip",
			TotalCost: 10000,
			FairShare: 3333,
			CreatedBy: user.ID,
			Participants: []models.RunParticipant{
				{Name: "Zara", Contributed: 3400, Balance: 67},
				{Name: "Asha", Contributed: 3300, Balance: -33},
				{Name: "Bo", Contributed: 3300, Balance: -33},
			},
			Transfers: []models.RunTransfer{
				{From: "Asha", To: "Zara", Amount: 33},
				{From: "Bo", To: "Zara", Amount: 33},
			},
		}
		if err := store.CreateRun(ctx, original); err != nil {
			t.Fatalf("CreateRun failed: %v", err)
		}

		got, err := store.GetRun(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetRun failed: %v", err)
		}

		if got.Title != "Goa trip" || got.TotalCost != 10000 || got.FairShare != 3333 {
			t.Errorf("run fields = %q/%d/%d, want Goa trip/10000/3333", got.Title, got.TotalCost, got.FairShare)
		}
		// participant order is Zara, Asha, Bo even though Asha sorts first
		wantNames := []string{"Zara", "Asha", "Bo"}
		for i, p := range got.Participants {
			if p.Name != wantNames[i] {
				t.Errorf("participant %d = %q, want %q", i, p.Name, wantNames[i])
			}
		}
		if len(got.Transfers) != 2 || got.Transfers[0].From != "Asha" || got.Transfers[1].From != "Bo" {
			t.Errorf("transfers out of order: %+v", got.Transfers)
		}
	})

	t.Run("GetRun missing run", func(t *testing.T) {
		_, err := store.GetRun(ctx, "no-such-run")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListRunsByUser newest first", func(t *testing.T) {
		other := models.NewUser("bo@example.com", "Bo", "not-a-real-hash")
		if err := store.CreateUser(ctx, other); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		first := &models.Run{
			TotalCost: 100, FairShare: 100, CreatedBy: other.ID, CreatedAt: 1000,
			Participants: []models.RunParticipant{{Name: "Solo", Contributed: 100}},
		}
		second := &models.Run{
			TotalCost: 200, FairShare: 200, CreatedBy: other.ID, CreatedAt: 2000,
			Participants: []models.RunParticipant{{Name: "Solo", Contributed: 200}},
		}
		for _, run := range []*models.Run{first, second} {
			if err := store.CreateRun(ctx, run); err != nil {
				t.Fatalf("CreateRun failed: %v", err)
			}
		}

		runs, err := store.ListRunsByUser(ctx, other.ID)
		if err != nil {
			t.Fatalf("ListRunsByUser failed: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("got %d runs, want 2", len(runs))
		}
		if runs[0].ID != second.ID || runs[1].ID != first.ID {
			t.Errorf("runs not newest first: %s, %s", runs[0].ID, runs[1].ID)
		}
		if len(runs[0].Participants) != 1 {
			t.Errorf("expected participants to be loaded, got %d", len(runs[0].Participants))
		}
	})

	t.Run("DeleteRun cascades", func(t *testing.T) {
		run := &models.Run{
			TotalCost: 100, FairShare: 50, CreatedBy: user.ID,
			Participants: []models.RunParticipant{
				{Name: "Asha", Contributed: 100, Balance: 50},
				{Name: "Bo", Balance: -50},
			},
			Transfers: []models.RunTransfer{{From: "Bo", To: "Asha", Amount: 50}},
		}
		if err := store.CreateRun(ctx, run); err != nil {
			t.Fatalf("CreateRun failed: %v", err)
		}

		// force the delete onto a freshly opened connection; the cascade
		// must fire there too, not just on the connection that ran setup
		store.db.SetMaxIdleConns(0)
		if err := store.DeleteRun(ctx, run.ID); err != nil {
			t.Fatalf("DeleteRun failed: %v", err)
		}
		if _, err := store.GetRun(ctx, run.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetRun after delete: error = %v, want ErrNotFound", err)
		}

		var orphans int
		err := store.db.QueryRowContext(ctx,
			"SELECT (SELECT COUNT(*) FROM run_participants WHERE run_id = ?) + (SELECT COUNT(*) FROM run_transfers WHERE run_id = ?)",
			run.ID, run.ID,
		).Scan(&orphans)
		if err != nil {
			t.Fatalf("counting child rows failed: %v", err)
		}
		if orphans != 0 {
			t.Errorf("DeleteRun left %d orphaned child rows", orphans)
		}
		if err := store.DeleteRun(ctx, run.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteRun: error = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store)

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID || got.DisplayName != "Asha" {
			t.Errorf("got %+v, want user %s", got, user.ID)
		}
	})

	t.Run("GetUserByEmail missing returns nil", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil user, got %+v", got)
		}
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Email != user.Email {
			t.Errorf("got %+v, want user with email %s", got, user.Email)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := models.NewUser(user.Email, "Imposter", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected unique constraint error for duplicate email")
		}
	})
}

func TestNew_CreatesParentDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}
