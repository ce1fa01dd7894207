package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"prusa_thermal/internal/models"
	"prusa_thermal/internal/repository"
	"prusa_thermal/internal/repository/db"
)

func openTestDB(t *testing.T) *repository.Repository {
	t.Helper()
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "bridge.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return repository.NewRepository(conn)
}

func TestSQLite_AccessoryStateRoundTrip(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()

	empty, err := repos.StateRepo.Load(ctx)
	if err != nil {
		t.Fatalf("Load on empty db: %v", err)
	}
	if empty.ID != 0 {
		t.Fatalf("expected no row yet, got %+v", empty)
	}

	temp := 41.25
	at := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	if err := repos.StateRepo.Save(ctx, models.AccessoryState{Active: true, Temperature: &temp, UpdatedAt: at}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Second write replaces the first; the table holds one row.
	if err := repos.StateRepo.Save(ctx, models.AccessoryState{
		Active: false, Tampered: true, Temperature: &temp,
		Failure: models.KindResourceUnavailable, UpdatedAt: at.Add(time.Minute),
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repos.StateRepo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != 1 || got.Active || !got.Tampered || got.Failure != models.KindResourceUnavailable {
		t.Fatalf("unexpected state: %+v", got)
	}
	if got.Temperature == nil || *got.Temperature != temp {
		t.Fatalf("temperature: got %v", got.Temperature)
	}
	if !got.UpdatedAt.Equal(at.Add(time.Minute)) {
		t.Fatalf("updated_at: got %v", got.UpdatedAt)
	}
}

func TestSQLite_AccessoryEventsFilter(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 6, 7, 0, 0, 0, time.UTC)
	for i, typ := range []string{"ACTIVE", "INACTIVE", "FAILURE", "ACTIVE"} {
		if err := repos.EventRepo.Append(ctx, models.AccessoryEvent{
			OccurredAt:  base.Add(time.Duration(i) * time.Hour),
			Type:        typ,
			Description: typ,
			Metadata:    map[string]any{"i": i},
		}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	all, err := repos.EventRepo.List(ctx, time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 || all[0].Type != "ACTIVE" || all[3].Type != "ACTIVE" {
		t.Fatalf("unexpected events: %+v", all)
	}
	if all[0].EventID == "" {
		t.Fatalf("event id should be generated")
	}

	active, err := repos.EventRepo.List(ctx, time.Time{}, time.Time{}, "active")
	if err != nil {
		t.Fatalf("List by type: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("want 2 ACTIVE events, got %d", len(active))
	}

	window, err := repos.EventRepo.List(ctx, base.Add(time.Hour), base.Add(2*time.Hour), "")
	if err != nil {
		t.Fatalf("List by window: %v", err)
	}
	if len(window) != 2 || window[0].Type != "INACTIVE" || window[1].Type != "FAILURE" {
		t.Fatalf("unexpected window: %+v", window)
	}
}

func TestSQLite_Operators(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()

	id, err := repos.Operators.CreateOperator(ctx, "operator", "hash")
	if err != nil {
		t.Fatalf("CreateOperator: %v", err)
	}
	op, err := repos.Operators.OperatorByName(ctx, "operator")
	if err != nil || op.ID != id || op.PasswordHash != "hash" {
		t.Fatalf("OperatorByName: %+v, %v", op, err)
	}
	if _, err := repos.Operators.CreateOperator(ctx, "operator", "other"); !errors.Is(err, repository.ErrOperatorExists) {
		t.Fatalf("duplicate: got %v, want ErrOperatorExists", err)
	}
	if _, err := repos.Operators.OperatorByName(ctx, "nobody"); !errors.Is(err, repository.ErrOperatorNotFound) {
		t.Fatalf("missing: got %v, want ErrOperatorNotFound", err)
	}
}
