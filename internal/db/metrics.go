package db

import (
	"context"

	"github.com/ticket-triage/backend/internal/model"
)

// GetDashboardMetrics - 대시보드 상단 지표 집계.
// 개별 쿼리 실패는 0으로 처리해서 화면이 깨지지 않게 한다.
func (db *Postgres) GetDashboardMetrics(ctx context.Context) model.DashboardMetrics {
	var m model.DashboardMetrics

	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&m.TotalTickets); err != nil {
		m.TotalTickets = 0
	}

	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM processed_tickets`).Scan(&m.ProcessedTickets); err != nil {
		m.ProcessedTickets = 0
	}

	if err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(confidence), 0) FROM processed_tickets WHERE confidence IS NOT NULL`,
	).Scan(&m.AvgConfidence); err != nil {
		m.AvgConfidence = 0
	}

	m.PendingTickets = m.TotalTickets - m.ProcessedTickets
	if m.PendingTickets < 0 {
		m.PendingTickets = 0
	}

	if err := db.Pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0)
		FROM agent_feedback
		WHERE timestamp > NOW() - INTERVAL '7 days' AND rating IS NOT NULL
	`).Scan(&m.AvgFeedback); err != nil {
		m.AvgFeedback = 0
	}

	return m
}
