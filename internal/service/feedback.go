// 상담원 피드백 비즈니스 로직 정의
//
// 처리 흐름:
//  1. 피드백을 agent_feedback에 저장 (durable write 우선)
//  2. save_feedback 이벤트 기록
//  3. Applied 액션이면 트래커 상태를 Done으로 전환하고 분석 코멘트 작성
//  4. 트래커 실패는 부분 성공(partial)으로만 보고, 저장된 피드백은 유지
//
// 저장 성공 후의 트래커 실패로 에러를 반환하지 않는다. 외부 시스템 장애가
// 로컬 피드백 이력을 막아서는 안 되기 때문이다.

package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ticket-triage/backend/internal/model"
	"github.com/ticket-triage/backend/internal/template"
)

var ErrInvalidFeedback = errors.New("invalid feedback")

const appliedTargetStatus = "Done"

type FeedbackStore interface {
	InsertFeedback(ctx context.Context, ticketID, agentID string, rating int, action, comments string) (int64, error)
	GetFeedbackByTicket(ctx context.Context, ticketID string, limit int32) ([]model.AgentFeedback, error)
	GetTicketByID(ctx context.Context, id string) (*model.Ticket, error)
	GetLatestAnalysis(ctx context.Context, ticketID string) (*model.TicketAnalysis, error)
	LogSystemEvent(ctx context.Context, functionName, status, details string)
}

type TicketTracker interface {
	UpdateTicketStatus(ticketID, targetStatus string) error
	AddComment(ticketID, comment string) error
}

// FeedbackService 구조체 정의
type FeedbackService struct {
	store   FeedbackStore
	tracker TicketTracker
}

// FeedbackService 객체 생성
func NewFeedbackService(store FeedbackStore, tracker TicketTracker) *FeedbackService {
	return &FeedbackService{store: store, tracker: tracker}
}

// Submit - 피드백 저장. Applied면 트래커 상태 변경과 코멘트까지 시도한다.
func (s *FeedbackService) Submit(ctx context.Context, agentID string, req model.CreateFeedbackRequest) (model.FeedbackResult, error) {
	if !model.IsFeedbackAction(req.Action) {
		return model.FeedbackResult{}, fmt.Errorf("%w: unknown action %q", ErrInvalidFeedback, req.Action)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return model.FeedbackResult{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidFeedback)
	}

	if _, err := s.store.InsertFeedback(ctx, req.TicketID, agentID, req.Rating, req.Action, req.Comments); err != nil {
		s.store.LogSystemEvent(ctx, "save_feedback", model.EventError, err.Error())
		return model.FeedbackResult{}, fmt.Errorf("failed to save feedback: %w", err)
	}
	s.store.LogSystemEvent(ctx, "save_feedback", model.EventSuccess,
		fmt.Sprintf("Feedback saved for %s (%s)", req.TicketID, req.Action))

	if req.Action != model.ActionApplied {
		return model.FeedbackResult{
			Status:   "success",
			Message:  "Feedback saved",
			TicketID: req.TicketID,
		}, nil
	}

	if err := s.updateTracker(ctx, agentID, req); err != nil {
		log.Printf("Tracker update failed (ticket_id=%s): %v", req.TicketID, err)
		s.store.LogSystemEvent(ctx, "update_jira", model.EventError, err.Error())
		return model.FeedbackResult{
			Status:   "partial",
			Message:  "Feedback saved, tracker update failed",
			TicketID: req.TicketID,
		}, nil
	}

	s.store.LogSystemEvent(ctx, "update_jira", model.EventSuccess,
		fmt.Sprintf("Ticket %s moved to %s", req.TicketID, appliedTargetStatus))
	return model.FeedbackResult{
		Status:         "success",
		Message:        "Feedback saved and tracker updated",
		TicketID:       req.TicketID,
		TrackerUpdated: true,
	}, nil
}

// ListByTicket - 티켓별 피드백 이력 조회
func (s *FeedbackService) ListByTicket(ctx context.Context, ticketID string, limit int32) ([]model.AgentFeedback, error) {
	return s.store.GetFeedbackByTicket(ctx, ticketID, limit)
}

func (s *FeedbackService) updateTracker(ctx context.Context, agentID string, req model.CreateFeedbackRequest) error {
	if err := s.tracker.UpdateTicketStatus(req.TicketID, appliedTargetStatus); err != nil {
		return err
	}

	comment := s.buildComment(ctx, agentID, req)
	if err := s.tracker.AddComment(req.TicketID, comment); err != nil {
		return err
	}
	return nil
}

// 코멘트 본문에 넣을 티켓/분석 조회는 best-effort. 실패해도 해당 섹션만
// 비운 채로 코멘트를 남긴다.
func (s *FeedbackService) buildComment(ctx context.Context, agentID string, req model.CreateFeedbackRequest) string {
	var ticketData *template.TicketData
	if ticket, err := s.store.GetTicketByID(ctx, req.TicketID); err == nil && ticket != nil {
		data := template.TicketDataFromModel(*ticket)
		ticketData = &data
	}

	analysis, err := s.store.GetLatestAnalysis(ctx, req.TicketID)
	if err != nil {
		analysis = nil
	}

	return template.RenderComment(template.DefaultCommentBody, ticketData, analysis, &template.FeedbackData{
		Agent:    agentID,
		Rating:   req.Rating,
		Action:   req.Action,
		Comments: req.Comments,
	})
}
