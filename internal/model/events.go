package model

import "time"

// 시스템 이벤트 상태 enum
const (
	EventSuccess = "SUCCESS"
	EventError   = "ERROR"
	EventPartial = "PARTIAL"
)

// SystemEvent - system_logs 테이블 한 행 (append-only 감사 로그)
type SystemEvent struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	FunctionName string    `json:"function_name"`
	Status       string    `json:"status"`
	Details      string    `json:"details"`
}
