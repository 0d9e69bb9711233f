package model

import "time"

// ============================================================================
// AI 분석 모델 (processed_tickets 테이블 및 분석 스키마)
// ============================================================================

// 위험도 enum
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// SuggestedSolution - 분석 결과에 포함되는 개별 해결 방안
type SuggestedSolution struct {
	Title         string   `json:"title"`
	Steps         []string `json:"steps"`
	Confidence    float64  `json:"confidence"`
	EstimatedTime string   `json:"estimated_time"`
}

// TicketAnalysis - AI가 생성하는 구조화된 진단 레코드.
// 10개 필드 전부 항상 채워진 상태로만 존재한다 (검증기가 보장).
type TicketAnalysis struct {
	Category                string              `json:"category"`
	Priority                string              `json:"priority"`
	Confidence              float64             `json:"confidence"`
	UrgencyScore            int                 `json:"urgency_score"`
	ComplexityScore         int                 `json:"complexity_score"`
	EstimatedResolutionTime string              `json:"estimated_resolution_time"`
	SuggestedSolutions      []SuggestedSolution `json:"suggested_solutions"`
	KnowledgeBaseSearch     []string            `json:"knowledge_base_search"`
	EscalationTriggers      []string            `json:"escalation_triggers"`
	RiskAssessment          string              `json:"risk_assessment"`
}

// AnalysisResult - 티켓 1건 분석 결과. 분석기 특성상 Success는 항상 true
// (백엔드 실패 시에도 fallback 레코드로 대체되므로)
type AnalysisResult struct {
	Success  bool           `json:"success"`
	TicketID string         `json:"ticket_id"`
	Analysis TicketAnalysis `json:"analysis"`
}

// ProcessedTicket - processed_tickets 테이블 한 행 + 조인한 티켓 요약 정보
type ProcessedTicket struct {
	ID            string         `json:"id"`
	TicketID      string         `json:"ticket_id"`
	Analysis      TicketAnalysis `json:"analysis"`
	Confidence    float64        `json:"confidence"`
	ProcessedDate time.Time      `json:"processed_date"`
	Status        string         `json:"status"`

	// 조인 필드 (목록 조회 시 포함)
	Summary  string `json:"summary,omitempty"`
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// BatchSummary - 파이프라인 1회 실행 결과 요약
type BatchSummary struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Saved     int `json:"saved"`
	Failed    int `json:"failed"`
}

// NoOp - 처리할 티켓이 없어서 아무 작업도 하지 않았는지 여부
func (s BatchSummary) NoOp() bool {
	return s.Processed == 0
}

// RunAnalysisResponse - 파이프라인 실행 API 응답 구조체
type RunAnalysisResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Summary BatchSummary `json:"summary"`
}
