package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ticket-triage/backend/internal/model"
)

type fakePipelineStore struct {
	tickets      []model.Ticket
	processedIDs map[string]struct{}
	saved        []string
	failFor      map[string]bool
	events       []fakeEvent
}

type fakeEvent struct {
	function string
	status   string
	details  string
}

func (f *fakePipelineStore) GetTickets(ctx context.Context, statusFilter string, limit int32) ([]model.Ticket, error) {
	return f.tickets, nil
}

func (f *fakePipelineStore) GetProcessedTicketIDs(ctx context.Context) (map[string]struct{}, error) {
	if f.processedIDs == nil {
		return map[string]struct{}{}, nil
	}
	return f.processedIDs, nil
}

func (f *fakePipelineStore) InsertProcessedTicket(ctx context.Context, ticketID string, analysis model.TicketAnalysis) error {
	if f.failFor[ticketID] {
		return errors.New("insert failed")
	}
	f.saved = append(f.saved, ticketID)
	return nil
}

func (f *fakePipelineStore) LogSystemEvent(ctx context.Context, functionName, status, details string) {
	f.events = append(f.events, fakeEvent{functionName, status, details})
}

func pipelineTickets(ids ...string) []model.Ticket {
	tickets := make([]model.Ticket, 0, len(ids))
	for _, id := range ids {
		tickets = append(tickets, model.Ticket{ID: id, Summary: "summary " + id})
	}
	return tickets
}

func TestRunSkipsProcessedTickets(t *testing.T) {
	store := &fakePipelineStore{}
	svc := NewPipelineService(NewAnalyzerService(nil), store)

	summary := svc.Run(context.Background(), pipelineTickets("T1", "T2", "T3"),
		map[string]struct{}{"T2": {}}, nil)

	if summary.Processed != 2 || summary.Saved != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(store.saved) != 2 || store.saved[0] != "T1" || store.saved[1] != "T3" {
		t.Fatalf("unexpected save order: %v", store.saved)
	}
}

// 전부 처리된 상태면 AI 호출도 저장도 이벤트도 없어야 한다
func TestRunNoOpWhenAllProcessed(t *testing.T) {
	store := &fakePipelineStore{}
	svc := NewPipelineService(NewAnalyzerService(nil), store)

	summary := svc.Run(context.Background(), pipelineTickets("T1", "T2"),
		map[string]struct{}{"T1": {}, "T2": {}}, nil)

	if !summary.NoOp() {
		t.Fatalf("expected no-op summary, got %+v", summary)
	}
	if len(store.saved) != 0 || len(store.events) != 0 {
		t.Fatalf("no-op run must not write: saved=%v events=%v", store.saved, store.events)
	}
}

func TestRunEventStatuses(t *testing.T) {
	tests := []struct {
		name       string
		failFor    map[string]bool
		wantStatus string
		wantSaved  int
		wantFailed int
	}{
		{"all-saved-success", nil, model.EventSuccess, 3, 0},
		{"some-failed-partial", map[string]bool{"T2": true}, model.EventPartial, 2, 1},
		{"none-saved-error", map[string]bool{"T1": true, "T2": true, "T3": true}, model.EventError, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakePipelineStore{failFor: tt.failFor}
			svc := NewPipelineService(NewAnalyzerService(nil), store)

			summary := svc.Run(context.Background(), pipelineTickets("T1", "T2", "T3"), nil, nil)

			if summary.Saved != tt.wantSaved || summary.Failed != tt.wantFailed {
				t.Fatalf("unexpected summary: %+v", summary)
			}
			if len(store.events) != 1 {
				t.Fatalf("expected 1 event, got %v", store.events)
			}
			if store.events[0].function != "analyze_tickets" || store.events[0].status != tt.wantStatus {
				t.Fatalf("unexpected event: %+v", store.events[0])
			}
		})
	}
}

func TestRunProgressCallback(t *testing.T) {
	store := &fakePipelineStore{}
	svc := NewPipelineService(NewAnalyzerService(nil), store)

	var calls [][2]int
	svc.Run(context.Background(), pipelineTickets("T1", "T2"), nil, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})

	if len(calls) != 2 || calls[0] != [2]int{1, 2} || calls[1] != [2]int{2, 2} {
		t.Fatalf("unexpected progress calls: %v", calls)
	}
}

// 시나리오: AI 백엔드 없이 T1을 분석하면 fallback 레코드 1건이 저장된다
func TestRunAllWithoutBackend(t *testing.T) {
	store := &fakePipelineStore{
		tickets: []model.Ticket{{ID: "T1", Summary: "VPN connection issues"}},
	}
	svc := NewPipelineService(NewAnalyzerService(nil), store)

	summary, err := svc.RunAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if summary.Saved != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(store.saved) != 1 || store.saved[0] != "T1" {
		t.Fatalf("expected exactly one processed row for T1, got %v", store.saved)
	}
}
