package db

import (
	"context"
	"log"

	"github.com/ticket-triage/backend/internal/model"
)

func (db *Postgres) EnsureSystemLogSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS system_logs (
			id BIGSERIAL PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			function_name TEXT NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('SUCCESS', 'ERROR', 'PARTIAL')),
			details TEXT NOT NULL DEFAULT ''
		)
		`,
		`CREATE INDEX IF NOT EXISTS system_logs_timestamp_idx ON system_logs(timestamp DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// LogSystemEvent - 감사 로그 append. 실패해도 원래 작업을 막으면 안 되므로
// 에러는 로컬 로그에만 남기고 삼킨다.
func (db *Postgres) LogSystemEvent(ctx context.Context, functionName, status, details string) {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO system_logs (timestamp, function_name, status, details)
		VALUES (NOW(), $1, $2, $3)
	`, functionName, status, details)
	if err != nil {
		log.Printf("Failed to write system log (function=%s, status=%s): %v", functionName, status, err)
	}
}

// GetRecentEvents - 최근 시스템 이벤트 조회
func (db *Postgres) GetRecentEvents(ctx context.Context, limit int32) ([]model.SystemEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT id, timestamp, function_name, status, details
		FROM system_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.SystemEvent, 0)
	for rows.Next() {
		var e model.SystemEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.FunctionName, &e.Status, &e.Details); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
