package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuthMeResponse struct {
	UserID  int64  `json:"userId"`
	LoginID string `json:"loginId"`
}

// DashboardMetrics - 대시보드 상단 지표
type DashboardMetrics struct {
	TotalTickets     int64   `json:"total_tickets"`
	ProcessedTickets int64   `json:"processed_tickets"`
	AvgConfidence    float64 `json:"avg_confidence"`
	PendingTickets   int64   `json:"pending_tickets"`
	AvgFeedback      float64 `json:"avg_feedback"`
}

// IntegrityReport - 데이터 정합성 점검 결과
type IntegrityReport struct {
	TotalTickets    int64            `json:"total_tickets"`
	ProcessedCount  int64            `json:"processed_count"`
	UniqueProcessed int64            `json:"unique_processed"`
	Duplicates      []DuplicateGroup `json:"duplicates"`
	Orphans         []string         `json:"orphans"`
}

// DuplicateGroup - 같은 ticket_id를 공유하는 processed 행 그룹
type DuplicateGroup struct {
	TicketID string `json:"ticket_id"`
	Count    int64  `json:"count"`
}

// MaintenanceResponse - 중복/고아 정리 API 응답 구조체
type MaintenanceResponse struct {
	Status  string `json:"status"`
	Removed int64  `json:"removed"`
}
