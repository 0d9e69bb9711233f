package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ticket-triage/backend/internal/model"
)

type fakeMaintenanceStore struct {
	duplicates []model.DuplicateGroup
	orphans    []string
	resetCount int64
	resets     int
	events     []fakeEvent
}

func (f *fakeMaintenanceStore) CountIntegrity(ctx context.Context) (int64, int64, int64, error) {
	return 10, 12, 10, nil
}

func (f *fakeMaintenanceStore) FindDuplicateProcessed(ctx context.Context) ([]model.DuplicateGroup, error) {
	return f.duplicates, nil
}

func (f *fakeMaintenanceStore) PruneDuplicateProcessed(ctx context.Context) (int64, error) {
	return int64(len(f.duplicates)), nil
}

func (f *fakeMaintenanceStore) FindOrphanedProcessed(ctx context.Context) ([]string, error) {
	return f.orphans, nil
}

func (f *fakeMaintenanceStore) PruneOrphanedProcessed(ctx context.Context) (int64, error) {
	return int64(len(f.orphans)), nil
}

func (f *fakeMaintenanceStore) ResetProcessed(ctx context.Context) (int64, error) {
	f.resets++
	return f.resetCount, nil
}

func (f *fakeMaintenanceStore) LogSystemEvent(ctx context.Context, functionName, status, details string) {
	f.events = append(f.events, fakeEvent{functionName, status, details})
}

func TestIntegrityReport(t *testing.T) {
	store := &fakeMaintenanceStore{
		duplicates: []model.DuplicateGroup{{TicketID: "T1", Count: 3}},
		orphans:    []string{"T9"},
	}
	svc := NewMaintenanceService(store)

	report, err := svc.Integrity(context.Background())
	if err != nil {
		t.Fatalf("Integrity: %v", err)
	}

	if report.TotalTickets != 10 || report.ProcessedCount != 12 || report.UniqueProcessed != 10 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if len(report.Duplicates) != 1 || report.Duplicates[0].Count != 3 {
		t.Fatalf("unexpected duplicates: %+v", report.Duplicates)
	}
	if len(report.Orphans) != 1 || report.Orphans[0] != "T9" {
		t.Fatalf("unexpected orphans: %+v", report.Orphans)
	}
	if len(store.events) != 0 {
		t.Fatalf("read-only report must not log events: %+v", store.events)
	}
}

func TestPruneEvents(t *testing.T) {
	store := &fakeMaintenanceStore{
		duplicates: []model.DuplicateGroup{{TicketID: "T1", Count: 2}},
		orphans:    []string{"T9", "T10"},
	}
	svc := NewMaintenanceService(store)

	if removed, err := svc.PruneDuplicates(context.Background()); err != nil || removed != 1 {
		t.Fatalf("PruneDuplicates: removed=%d err=%v", removed, err)
	}
	if removed, err := svc.PruneOrphans(context.Background()); err != nil || removed != 2 {
		t.Fatalf("PruneOrphans: removed=%d err=%v", removed, err)
	}

	if len(store.events) != 2 {
		t.Fatalf("expected 2 events, got %+v", store.events)
	}
	for _, ev := range store.events {
		if ev.function != "clean_database" || ev.status != model.EventSuccess {
			t.Fatalf("unexpected event: %+v", ev)
		}
	}
}

// 확인 플래그 없이 리셋하면 아무것도 지워지지 않는다
func TestResetRequiresConfirmation(t *testing.T) {
	store := &fakeMaintenanceStore{resetCount: 42}
	svc := NewMaintenanceService(store)

	if _, err := svc.Reset(context.Background(), false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if store.resets != 0 || len(store.events) != 0 {
		t.Fatal("unconfirmed reset must not touch the store")
	}

	removed, err := svc.Reset(context.Background(), true)
	if err != nil || removed != 42 {
		t.Fatalf("confirmed reset: removed=%d err=%v", removed, err)
	}
	if len(store.events) != 1 || store.events[0].function != "reset_processed" {
		t.Fatalf("unexpected events: %+v", store.events)
	}
}
