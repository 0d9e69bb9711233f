// Package template provides tracker comment template rendering.
//
// 지원하는 변수 형식:
//
//	{{ticket.id}}, {{ticket.summary}}, {{ticket.category}}, {{ticket.priority}}
//
//	{{analysis.category}}, {{analysis.priority}}, {{analysis.confidence}},
//	{{analysis.estimated_time}}, {{analysis.risk}}, {{analysis.solution}},
//	{{analysis.solution_steps}}
//
//	{{feedback.agent}}, {{feedback.rating}}, {{feedback.action}},
//	{{feedback.comments}}
package template

import (
	"fmt"
	"strings"

	"github.com/ticket-triage/backend/internal/model"
)

// DefaultCommentBody - Applied 피드백 시 트래커에 남기는 기본 코멘트
const DefaultCommentBody = `AI Analysis applied by {{feedback.agent}} (rating {{feedback.rating}}/5).

Category: {{analysis.category}}
Priority: {{analysis.priority}}
Confidence: {{analysis.confidence}}
Risk: {{analysis.risk}}
Estimated resolution time: {{analysis.estimated_time}}

Suggested solution: {{analysis.solution}}
{{analysis.solution_steps}}

Agent comments: {{feedback.comments}}`

// TicketData - 템플릿 렌더링에 사용할 티켓 데이터
type TicketData struct {
	ID       string
	Summary  string
	Category string
	Priority string
}

// FeedbackData - 템플릿 렌더링에 사용할 피드백 데이터
type FeedbackData struct {
	Agent    string
	Rating   int
	Action   string
	Comments string
}

// TicketDataFromModel - model.Ticket에서 TicketData 생성
func TicketDataFromModel(t model.Ticket) TicketData {
	return TicketData{
		ID:       t.ID,
		Summary:  t.Summary,
		Category: t.Category,
		Priority: t.Priority,
	}
}

// RenderComment - 코멘트 템플릿의 변수를 실제 값으로 치환
//
// ticket 또는 analysis 중 하나만 전달해도 동작합니다.
// nil로 전달된 항목의 변수는 빈 문자열로 치환됩니다.
func RenderComment(body string, ticket *TicketData, analysis *model.TicketAnalysis, feedback *FeedbackData) string {
	pairs := make([]string, 0, 30)

	// --- Ticket 변수 ---
	if ticket != nil {
		pairs = append(pairs,
			"{{ticket.id}}", ticket.ID,
			"{{ticket.summary}}", ticket.Summary,
			"{{ticket.category}}", ticket.Category,
			"{{ticket.priority}}", ticket.Priority,
		)
	} else {
		pairs = append(pairs,
			"{{ticket.id}}", "",
			"{{ticket.summary}}", "",
			"{{ticket.category}}", "",
			"{{ticket.priority}}", "",
		)
	}

	// --- Analysis 변수 ---
	if analysis != nil {
		solution := ""
		steps := ""
		if len(analysis.SuggestedSolutions) > 0 {
			first := analysis.SuggestedSolutions[0]
			solution = first.Title
			var lines []string
			for i, step := range first.Steps {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
			}
			steps = strings.Join(lines, "\n")
		}
		pairs = append(pairs,
			"{{analysis.category}}", analysis.Category,
			"{{analysis.priority}}", analysis.Priority,
			"{{analysis.confidence}}", fmt.Sprintf("%.2f", analysis.Confidence),
			"{{analysis.estimated_time}}", analysis.EstimatedResolutionTime,
			"{{analysis.risk}}", analysis.RiskAssessment,
			"{{analysis.solution}}", solution,
			"{{analysis.solution_steps}}", steps,
		)
	} else {
		pairs = append(pairs,
			"{{analysis.category}}", "",
			"{{analysis.priority}}", "",
			"{{analysis.confidence}}", "",
			"{{analysis.estimated_time}}", "",
			"{{analysis.risk}}", "",
			"{{analysis.solution}}", "",
			"{{analysis.solution_steps}}", "",
		)
	}

	// --- Feedback 변수 ---
	if feedback != nil {
		pairs = append(pairs,
			"{{feedback.agent}}", feedback.Agent,
			"{{feedback.rating}}", fmt.Sprintf("%d", feedback.Rating),
			"{{feedback.action}}", feedback.Action,
			"{{feedback.comments}}", feedback.Comments,
		)
	} else {
		pairs = append(pairs,
			"{{feedback.agent}}", "",
			"{{feedback.rating}}", "",
			"{{feedback.action}}", "",
			"{{feedback.comments}}", "",
		)
	}

	return strings.NewReplacer(pairs...).Replace(body)
}
