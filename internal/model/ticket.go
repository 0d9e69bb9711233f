package model

import "time"

// ============================================================================
// Ticket 모델 (외부 트래커에서 수집한 지원 티켓 단위)
// ============================================================================

// 티켓 카테고리 (분류기/AI 분석이 공유하는 enum)
const (
	CategoryHardware = "Hardware"
	CategorySoftware = "Software"
	CategoryNetwork  = "Network"
	CategorySecurity = "Security"
	CategoryTelecom  = "Telecom"
	CategoryGeneral  = "General"
)

// 티켓 우선순위
const (
	PriorityCritical = "Critical"
	PriorityHigh     = "High"
	PriorityMedium   = "Medium"
	PriorityLow      = "Low"
)

var Categories = []string{
	CategoryHardware,
	CategorySoftware,
	CategoryNetwork,
	CategorySecurity,
	CategoryTelecom,
	CategoryGeneral,
}

var Priorities = []string{
	PriorityCritical,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if s == c {
			return true
		}
	}
	return false
}

func IsPriority(s string) bool {
	for _, p := range Priorities {
		if s == p {
			return true
		}
	}
	return false
}

// Ticket - tickets 테이블 한 행. id는 트래커가 부여한 키 (예: "DEMO-001")
type Ticket struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Reporter    string    `json:"reporter"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// FetchTicketsRequest - 트래커 수집 요청 구조체
type FetchTicketsRequest struct {
	DaysBack   int `json:"days_back"`
	MaxResults int `json:"max_results"`
}

// FetchTicketsResponse - 트래커 수집 API 응답 구조체
type FetchTicketsResponse struct {
	Status   string `json:"status"`
	Count    int    `json:"count"`
	DemoMode bool   `json:"demo_mode"`
}
