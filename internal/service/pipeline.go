// 분석 파이프라인 오케스트레이션 로직 정의
//
// 처리 흐름:
//  1. 전체 티켓에서 이미 분석된 ticket_id를 집합 연산으로 제외
//  2. 남은 티켓이 없으면 no-op 요약 반환 (AI 호출 없음)
//  3. 입력 순서대로 티켓별 분석 실행 (분석기는 항상 usable한 레코드 반환)
//  4. 티켓별 저장 시도, 성공/실패 카운트는 독립 집계
//  5. 배치 결과를 system_logs에 SUCCESS / PARTIAL / ERROR로 기록
//
// 배치 내 동시성은 없다. 티켓 수가 적고 지연은 외부 AI 호출이 지배하므로
// 순차 처리로 충분하며, append-only 테이블에 대한 동시 쓰기 조정이 필요 없다.

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/ticket-triage/backend/internal/model"
)

type TicketAnalyzer interface {
	Analyze(ctx context.Context, ticket model.Ticket) model.AnalysisResult
}

type PipelineStore interface {
	GetTickets(ctx context.Context, statusFilter string, limit int32) ([]model.Ticket, error)
	GetProcessedTicketIDs(ctx context.Context) (map[string]struct{}, error)
	InsertProcessedTicket(ctx context.Context, ticketID string, analysis model.TicketAnalysis) error
	LogSystemEvent(ctx context.Context, functionName, status, details string)
}

// ProgressFunc - 티켓 1건 처리가 끝날 때마다 호출 (done/total)
type ProgressFunc func(done, total int)

// PipelineService 구조체 정의
type PipelineService struct {
	analyzer TicketAnalyzer
	store    PipelineStore
}

// PipelineService 객체 생성
func NewPipelineService(analyzer TicketAnalyzer, store PipelineStore) *PipelineService {
	return &PipelineService{analyzer: analyzer, store: store}
}

// RunAll - 저장소에서 티켓과 분석 이력을 읽어 Run을 실행
func (s *PipelineService) RunAll(ctx context.Context, progress ProgressFunc) (model.BatchSummary, error) {
	tickets, err := s.store.GetTickets(ctx, "", 1000)
	if err != nil {
		s.store.LogSystemEvent(ctx, "analyze_tickets", model.EventError, err.Error())
		return model.BatchSummary{}, fmt.Errorf("failed to load tickets: %w", err)
	}

	processedIDs, err := s.store.GetProcessedTicketIDs(ctx)
	if err != nil {
		s.store.LogSystemEvent(ctx, "analyze_tickets", model.EventError, err.Error())
		return model.BatchSummary{}, fmt.Errorf("failed to load processed ids: %w", err)
	}

	return s.Run(ctx, tickets, processedIDs, progress), nil
}

// Run - 파이프라인 본체. 입력 순서 그대로 순차 처리한다.
func (s *PipelineService) Run(ctx context.Context, tickets []model.Ticket, processedIDs map[string]struct{}, progress ProgressFunc) model.BatchSummary {
	unprocessed := make([]model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if _, done := processedIDs[t.ID]; !done {
			unprocessed = append(unprocessed, t)
		}
	}

	summary := model.BatchSummary{Total: len(tickets)}

	if len(unprocessed) == 0 {
		log.Printf("No unprocessed tickets found (total=%d)", len(tickets))
		return summary
	}

	log.Printf("Analyzing %d tickets", len(unprocessed))

	for i, ticket := range unprocessed {
		result := s.analyzer.Analyze(ctx, ticket)
		summary.Processed++

		if err := s.store.InsertProcessedTicket(ctx, result.TicketID, result.Analysis); err != nil {
			log.Printf("Failed to save analysis (ticket_id=%s): %v", result.TicketID, err)
			summary.Failed++
		} else {
			summary.Saved++
		}

		if progress != nil {
			progress(i+1, len(unprocessed))
		}
	}

	switch {
	case summary.Failed == 0:
		s.store.LogSystemEvent(ctx, "analyze_tickets", model.EventSuccess,
			fmt.Sprintf("Analyzed %d tickets", summary.Saved))
	case summary.Saved == 0:
		s.store.LogSystemEvent(ctx, "analyze_tickets", model.EventError,
			fmt.Sprintf("Failed to save all %d tickets", summary.Failed))
	default:
		s.store.LogSystemEvent(ctx, "analyze_tickets", model.EventPartial,
			fmt.Sprintf("Analyzed %d tickets, failed %d", summary.Saved, summary.Failed))
	}

	return summary
}
