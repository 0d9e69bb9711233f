// 티켓 임베딩 / 유사 티켓 검색 비즈니스 로직 정의

package service

import (
	"context"
	"fmt"

	"github.com/ticket-triage/backend/internal/model"
)

type EmbeddingRepo interface {
	InsertTicketEmbedding(ctx context.Context, ticketID, summary, model string, vector []float32) (int64, error)
	FindSimilarTickets(ctx context.Context, ticketID string, vector []float32, limit int32) ([]model.SimilarTicket, error)
}

type EmbeddingClient interface {
	EmbedText(ctx context.Context, text string) ([]float32, string, error)
}

type EmbeddingService struct {
	repo   EmbeddingRepo
	client EmbeddingClient
}

func NewEmbeddingService(repo EmbeddingRepo, client EmbeddingClient) *EmbeddingService {
	return &EmbeddingService{repo: repo, client: client}
}

// Ready - 임베딩 백엔드 연결 여부. main에서 클라이언트 생성에 실패하면
// nil client로 내려와 유사도 기능만 비활성화된다.
func (s *EmbeddingService) Ready() bool {
	return s.client != nil
}

// CreateEmbedding - 티켓 요약을 임베딩해 knowledge base에 저장
func (s *EmbeddingService) CreateEmbedding(ctx context.Context, ticketID, summary string) (int64, string, error) {
	if ticketID == "" || summary == "" {
		return 0, "", fmt.Errorf("ticket_id and summary are required")
	}
	if s.client == nil {
		return 0, "", fmt.Errorf("embedding backend unavailable")
	}

	vector, embedModel, err := s.client.EmbedText(ctx, summary)
	if err != nil {
		return 0, embedModel, err
	}
	id, err := s.repo.InsertTicketEmbedding(ctx, ticketID, summary, embedModel, vector)
	return id, embedModel, err
}

// FindSimilar - 요약 텍스트 기준 유사 티켓 검색 (자기 자신 제외)
func (s *EmbeddingService) FindSimilar(ctx context.Context, ticketID, summary string, limit int32) ([]model.SimilarTicket, error) {
	if ticketID == "" || summary == "" {
		return nil, fmt.Errorf("ticket_id and summary are required")
	}
	if s.client == nil {
		return nil, fmt.Errorf("embedding backend unavailable")
	}

	vector, _, err := s.client.EmbedText(ctx, summary)
	if err != nil {
		return nil, err
	}
	return s.repo.FindSimilarTickets(ctx, ticketID, vector, limit)
}
