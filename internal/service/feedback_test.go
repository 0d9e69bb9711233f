package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ticket-triage/backend/internal/model"
)

type fakeFeedbackStore struct {
	inserted  []model.AgentFeedback
	insertErr error
	ticket    *model.Ticket
	analysis  *model.TicketAnalysis
	events    []fakeEvent
}

func (f *fakeFeedbackStore) InsertFeedback(ctx context.Context, ticketID, agentID string, rating int, action, comments string) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, model.AgentFeedback{
		TicketID: ticketID, AgentID: agentID, Rating: rating, Action: action, Comments: comments,
	})
	return int64(len(f.inserted)), nil
}

func (f *fakeFeedbackStore) GetFeedbackByTicket(ctx context.Context, ticketID string, limit int32) ([]model.AgentFeedback, error) {
	return f.inserted, nil
}

func (f *fakeFeedbackStore) GetTicketByID(ctx context.Context, id string) (*model.Ticket, error) {
	return f.ticket, nil
}

func (f *fakeFeedbackStore) GetLatestAnalysis(ctx context.Context, ticketID string) (*model.TicketAnalysis, error) {
	return f.analysis, nil
}

func (f *fakeFeedbackStore) LogSystemEvent(ctx context.Context, functionName, status, details string) {
	f.events = append(f.events, fakeEvent{functionName, status, details})
}

type fakeTracker struct {
	statusErr  error
	commentErr error
	statuses   []string
	comments   []string
}

func (f *fakeTracker) UpdateTicketStatus(ticketID, targetStatus string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statuses = append(f.statuses, ticketID+":"+targetStatus)
	return nil
}

func (f *fakeTracker) AddComment(ticketID, comment string) error {
	if f.commentErr != nil {
		return f.commentErr
	}
	f.comments = append(f.comments, comment)
	return nil
}

func feedbackRequest(action string) model.CreateFeedbackRequest {
	return model.CreateFeedbackRequest{
		TicketID: "T1",
		Rating:   4,
		Action:   action,
		Comments: "steps worked as described",
	}
}

func TestSubmitNonAppliedSkipsTracker(t *testing.T) {
	store := &fakeFeedbackStore{}
	tracker := &fakeTracker{}
	svc := NewFeedbackService(store, tracker)

	res, err := svc.Submit(context.Background(), "admin", feedbackRequest(model.ActionRejected))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if res.Status != "success" || res.TrackerUpdated {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(tracker.statuses) != 0 || len(tracker.comments) != 0 {
		t.Fatal("tracker must not be touched for non-Applied feedback")
	}
	if len(store.events) != 1 || store.events[0].function != "save_feedback" || store.events[0].status != model.EventSuccess {
		t.Fatalf("unexpected events: %+v", store.events)
	}
}

func TestSubmitAppliedUpdatesTracker(t *testing.T) {
	analysis := FallbackAnalysis()
	store := &fakeFeedbackStore{
		ticket:   &model.Ticket{ID: "T1", Summary: "VPN down", Category: model.CategoryNetwork, Priority: model.PriorityHigh},
		analysis: &analysis,
	}
	tracker := &fakeTracker{}
	svc := NewFeedbackService(store, tracker)

	res, err := svc.Submit(context.Background(), "admin", feedbackRequest(model.ActionApplied))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if res.Status != "success" || !res.TrackerUpdated {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(tracker.statuses) != 1 || tracker.statuses[0] != "T1:Done" {
		t.Fatalf("unexpected transitions: %v", tracker.statuses)
	}
	if len(tracker.comments) != 1 || !strings.Contains(tracker.comments[0], "Manual Review Required") {
		t.Fatalf("unexpected comments: %v", tracker.comments)
	}
	if len(store.events) != 2 || store.events[1].function != "update_jira" || store.events[1].status != model.EventSuccess {
		t.Fatalf("unexpected events: %+v", store.events)
	}
}

// 트래커 장애는 partial로 보고하되 저장된 피드백은 남는다
func TestSubmitAppliedTrackerFailureIsPartial(t *testing.T) {
	store := &fakeFeedbackStore{}
	tracker := &fakeTracker{statusErr: errors.New("no transition found")}
	svc := NewFeedbackService(store, tracker)

	res, err := svc.Submit(context.Background(), "admin", feedbackRequest(model.ActionApplied))
	if err != nil {
		t.Fatalf("Submit must not fail on tracker errors: %v", err)
	}

	if res.Status != "partial" || res.TrackerUpdated {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("feedback row must survive tracker failure, got %d", len(store.inserted))
	}
	if len(store.events) != 2 || store.events[1].function != "update_jira" || store.events[1].status != model.EventError {
		t.Fatalf("unexpected events: %+v", store.events)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewFeedbackService(&fakeFeedbackStore{}, &fakeTracker{})

	bad := feedbackRequest("Ignored")
	if _, err := svc.Submit(context.Background(), "admin", bad); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("expected ErrInvalidFeedback, got %v", err)
	}

	bad = feedbackRequest(model.ActionModified)
	bad.Rating = 6
	if _, err := svc.Submit(context.Background(), "admin", bad); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("expected ErrInvalidFeedback, got %v", err)
	}
}

func TestSubmitSaveFailure(t *testing.T) {
	store := &fakeFeedbackStore{insertErr: errors.New("disk full")}
	svc := NewFeedbackService(store, &fakeTracker{})

	if _, err := svc.Submit(context.Background(), "admin", feedbackRequest(model.ActionApplied)); err == nil {
		t.Fatal("expected error")
	}
	if len(store.events) != 1 || store.events[0].status != model.EventError {
		t.Fatalf("unexpected events: %+v", store.events)
	}
}
