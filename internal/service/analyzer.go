// 티켓 AI 분석 비즈니스 로직 정의
//
// 처리 흐름:
//  1. 티켓 정보를 담은 프롬프트 생성
//  2. TextGenerator(Gemini)에 전송
//  3. 응답 텍스트에서 JSON을 추출해 스키마 검증/보정 (ParseAnalysis)
//  4. 생성기 부재/호출 실패/빈 응답이면 fallback 레코드로 대체
//
// Analyze는 실패를 밖으로 전파하지 않는다. 어떤 입력이든 완전한
// 분석 레코드를 반환하므로 파이프라인은 저장 실패만 신경 쓰면 된다.

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/ticket-triage/backend/internal/model"
)

type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// AnalyzerService 구조체 정의. generator가 nil이면 degraded mode로,
// 모든 티켓이 fallback 레코드를 받는다.
type AnalyzerService struct {
	generator TextGenerator
}

func NewAnalyzerService(generator TextGenerator) *AnalyzerService {
	return &AnalyzerService{generator: generator}
}

// Ready - 실제 AI 백엔드가 연결되어 있는지 여부
func (s *AnalyzerService) Ready() bool {
	return s.generator != nil
}

// Analyze - 티켓 1건 분석. 항상 Success=true인 결과를 반환한다.
func (s *AnalyzerService) Analyze(ctx context.Context, ticket model.Ticket) model.AnalysisResult {
	if s.generator == nil {
		return fallbackResult(ticket)
	}

	text, err := s.generator.GenerateText(ctx, buildAnalysisPrompt(ticket))
	if err != nil || text == "" {
		log.Printf("AI analysis failed (ticket_id=%s): %v", ticket.ID, err)
		return fallbackResult(ticket)
	}

	return model.AnalysisResult{
		Success:  true,
		TicketID: ticket.ID,
		Analysis: ParseAnalysis(text),
	}
}

const analysisPromptTemplate = `Analyze this IT support ticket and provide a JSON response:

TICKET ID: %s
SUMMARY: %s
DESCRIPTION: %s
CURRENT CATEGORY: %s
PRIORITY: %s

Provide your analysis in this exact JSON format:
{
  "category": "Hardware|Software|Network|Security|General",
  "priority": "Critical|High|Medium|Low",
  "confidence": 0.85,
  "urgency_score": 7,
  "complexity_score": 5,
  "estimated_resolution_time": "2 hours",
  "suggested_solutions": [
    {
      "title": "Primary Solution",
      "steps": ["Step 1", "Step 2", "Step 3"],
      "confidence": 0.9,
      "estimated_time": "30 minutes"
    }
  ],
  "knowledge_base_search": ["keyword1", "keyword2"],
  "escalation_triggers": ["trigger1"],
  "risk_assessment": "Low|Medium|High"
}

Focus on practical IT solutions. Be specific and actionable.`

func buildAnalysisPrompt(t model.Ticket) string {
	summary := t.Summary
	if summary == "" {
		summary = "No summary"
	}
	description := t.Description
	if description == "" {
		description = "No description"
	}
	category := t.Category
	if category == "" {
		category = model.CategoryGeneral
	}
	priority := t.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	return fmt.Sprintf(analysisPromptTemplate, t.ID, summary, description, category, priority)
}

// ============================================================================
// 스키마 검증/보정
// ============================================================================

// ParseAnalysis - 모델 응답 텍스트에서 분석 레코드를 복원한다.
// 응답이 산문이나 코드펜스로 감싸여 있어도 첫 '{'부터 마지막 '}'까지를
// JSON으로 파싱하고, 필드별로 타입이 맞으면 채택, 아니면 기본값으로
// 대체한다. 파싱 자체가 불가능하면 완전한 fallback 레코드를 반환한다.
// 절대 에러를 반환하지 않는다.
func ParseAnalysis(raw string) model.TicketAnalysis {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return FallbackAnalysis()
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return FallbackAnalysis()
	}

	return model.TicketAnalysis{
		Category:                enumField(fields, "category", model.IsCategory, model.CategoryGeneral),
		Priority:                enumField(fields, "priority", model.IsPriority, model.PriorityMedium),
		Confidence:              unitFloatField(fields, "confidence", 0.5),
		UrgencyScore:            intField(fields, "urgency_score", 5),
		ComplexityScore:         intField(fields, "complexity_score", 5),
		EstimatedResolutionTime: stringField(fields, "estimated_resolution_time", "Unknown"),
		SuggestedSolutions:      solutionsField(fields, "suggested_solutions"),
		KnowledgeBaseSearch:     stringsField(fields, "knowledge_base_search"),
		EscalationTriggers:      stringsField(fields, "escalation_triggers"),
		RiskAssessment:          enumField(fields, "risk_assessment", isRisk, model.RiskMedium),
	}
}

// FallbackAnalysis - AI를 쓸 수 없을 때의 완전한 기본 레코드.
// 부분 병합이 아니라 그 자체로 유효한 단일 객체다.
func FallbackAnalysis() model.TicketAnalysis {
	return model.TicketAnalysis{
		Category:                model.CategoryGeneral,
		Priority:                model.PriorityMedium,
		Confidence:              0.3,
		UrgencyScore:            5,
		ComplexityScore:         5,
		EstimatedResolutionTime: "Manual review required",
		SuggestedSolutions: []model.SuggestedSolution{
			{
				Title:         "Manual Review Required",
				Steps:         []string{"Review ticket details", "Analyze requirements", "Provide custom solution"},
				Confidence:    0.3,
				EstimatedTime: "Variable",
			},
		},
		KnowledgeBaseSearch: []string{},
		EscalationTriggers:  []string{"Manual review needed"},
		RiskAssessment:      model.RiskMedium,
	}
}

func fallbackResult(ticket model.Ticket) model.AnalysisResult {
	return model.AnalysisResult{
		Success:  true,
		TicketID: ticket.ID,
		Analysis: FallbackAnalysis(),
	}
}

func isRisk(s string) bool {
	return s == model.RiskLow || s == model.RiskMedium || s == model.RiskHigh
}

func stringField(fields map[string]any, key, fallback string) string {
	if v, ok := fields[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func enumField(fields map[string]any, key string, valid func(string) bool, fallback string) string {
	if v, ok := fields[key].(string); ok && valid(v) {
		return v
	}
	return fallback
}

// JSON 숫자는 전부 float64로 디코딩된다
func unitFloatField(fields map[string]any, key string, fallback float64) float64 {
	if v, ok := fields[key].(float64); ok && v >= 0 && v <= 1 {
		return v
	}
	return fallback
}

func intField(fields map[string]any, key string, fallback int) int {
	if v, ok := fields[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func stringsField(fields map[string]any, key string) []string {
	out := []string{}
	items, ok := fields[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func solutionsField(fields map[string]any, key string) []model.SuggestedSolution {
	out := []model.SuggestedSolution{}
	items, ok := fields[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.SuggestedSolution{
			Title:         stringField(entry, "title", ""),
			Steps:         stringsField(entry, "steps"),
			Confidence:    unitFloatField(entry, "confidence", 0),
			EstimatedTime: stringField(entry, "estimated_time", ""),
		})
	}
	return out
}
