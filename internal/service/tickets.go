// 티켓 수집(ingestion) 비즈니스 로직 정의
//
// 처리 흐름:
//  1. 이슈 트래커(Jira 또는 demo fixture)에서 최근 티켓 조회
//  2. tickets 테이블에 upsert (id 기준, 재수집해도 중복 없음)
//  3. 결과를 system_logs에 fetch_tickets 이벤트로 기록

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/ticket-triage/backend/internal/model"
)

const (
	defaultDaysBack   = 30
	defaultMaxResults = 50
)

type TicketSource interface {
	FetchTickets(daysBack, maxResults int) ([]model.Ticket, error)
	DemoMode() bool
}

type TicketStore interface {
	UpsertTickets(ctx context.Context, tickets []model.Ticket) error
	GetTickets(ctx context.Context, statusFilter string, limit int32) ([]model.Ticket, error)
	GetTicketByID(ctx context.Context, id string) (*model.Ticket, error)
	LogSystemEvent(ctx context.Context, functionName, status, details string)
}

// TicketService 구조체 정의
type TicketService struct {
	source TicketSource
	store  TicketStore
}

// TicketService 객체 생성
func NewTicketService(source TicketSource, store TicketStore) *TicketService {
	return &TicketService{source: source, store: store}
}

// FetchAndStore - 트래커에서 티켓을 가져와 저장하고 수집 건수를 반환
func (s *TicketService) FetchAndStore(ctx context.Context, daysBack, maxResults int) (model.FetchTicketsResponse, error) {
	if daysBack <= 0 {
		daysBack = defaultDaysBack
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	tickets, err := s.source.FetchTickets(daysBack, maxResults)
	if err != nil {
		s.store.LogSystemEvent(ctx, "fetch_tickets", model.EventError, err.Error())
		return model.FetchTicketsResponse{}, fmt.Errorf("failed to fetch tickets: %w", err)
	}

	if err := s.store.UpsertTickets(ctx, tickets); err != nil {
		s.store.LogSystemEvent(ctx, "fetch_tickets", model.EventError, err.Error())
		return model.FetchTicketsResponse{}, fmt.Errorf("failed to store tickets: %w", err)
	}

	log.Printf("Fetched %d tickets (demo_mode=%t)", len(tickets), s.source.DemoMode())
	s.store.LogSystemEvent(ctx, "fetch_tickets", model.EventSuccess,
		fmt.Sprintf("Fetched %d tickets", len(tickets)))

	return model.FetchTicketsResponse{
		Status:   "success",
		Count:    len(tickets),
		DemoMode: s.source.DemoMode(),
	}, nil
}

// List - 저장된 티켓 목록 조회
func (s *TicketService) List(ctx context.Context, statusFilter string, limit int32) ([]model.Ticket, error) {
	return s.store.GetTickets(ctx, statusFilter, limit)
}

// Get - 티켓 단건 조회. 없으면 (nil, nil)
func (s *TicketService) Get(ctx context.Context, id string) (*model.Ticket, error) {
	return s.store.GetTicketByID(ctx, id)
}
