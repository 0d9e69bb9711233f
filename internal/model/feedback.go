package model

import "time"

// 피드백 액션 enum
const (
	ActionApplied   = "Applied"
	ActionModified  = "Modified"
	ActionRejected  = "Rejected"
	ActionEscalated = "Escalated"
)

func IsFeedbackAction(s string) bool {
	switch s {
	case ActionApplied, ActionModified, ActionRejected, ActionEscalated:
		return true
	}
	return false
}

// AgentFeedback - agent_feedback 테이블 한 행 (append-only)
type AgentFeedback struct {
	ID        int64     `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AgentID   string    `json:"agent_id"`
	Rating    int       `json:"rating"`
	Action    string    `json:"action"`
	Comments  string    `json:"comments"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateFeedbackRequest - 피드백 등록 요청 구조체.
// agent_id는 인증 토큰에서 가져오므로 본문에 받지 않는다.
type CreateFeedbackRequest struct {
	TicketID string `json:"ticket_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Action   string `json:"action" binding:"required"`
	Comments string `json:"comments"`
}

// FeedbackResult - 피드백 저장 결과. Applied 액션은 트래커 상태 변경까지
// 시도하며, 트래커 실패는 부분 성공으로만 보고한다.
type FeedbackResult struct {
	Status         string `json:"status"` // success | partial
	Message        string `json:"message"`
	TicketID       string `json:"ticket_id"`
	TrackerUpdated bool   `json:"tracker_updated"`
}
