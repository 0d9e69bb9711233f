package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/ticket-triage/backend/internal/model"
)

func normalizeAction(action string) (string, error) {
	trimmed := strings.TrimSpace(action)
	if !model.IsFeedbackAction(trimmed) {
		return "", fmt.Errorf("invalid action: %s", action)
	}
	return trimmed, nil
}

func (db *Postgres) EnsureFeedbackSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS agent_feedback (
			id BIGSERIAL PRIMARY KEY,
			ticket_id TEXT NOT NULL,
			agent_id TEXT NOT NULL,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			action TEXT NOT NULL CHECK (action IN ('Applied', 'Modified', 'Rejected', 'Escalated')),
			comments TEXT NOT NULL DEFAULT '',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS agent_feedback_ticket_idx ON agent_feedback(ticket_id)`,
		`CREATE INDEX IF NOT EXISTS agent_feedback_timestamp_idx ON agent_feedback(timestamp DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// InsertFeedback - 상담원 피드백 append-only 저장
func (db *Postgres) InsertFeedback(ctx context.Context, ticketID, agentID string, rating int, action, comments string) (int64, error) {
	normalizedAction, err := normalizeAction(action)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO agent_feedback (ticket_id, agent_id, rating, action, comments, timestamp)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	var id int64
	err = db.Pool.QueryRow(ctx, query, ticketID, agentID, rating, normalizedAction, comments).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetFeedbackByTicket - 특정 티켓의 피드백 이력 (최신순)
func (db *Postgres) GetFeedbackByTicket(ctx context.Context, ticketID string, limit int32) ([]model.AgentFeedback, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT id, ticket_id, agent_id, rating, action, comments, timestamp
		FROM agent_feedback
		WHERE ticket_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, ticketID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.AgentFeedback, 0)
	for rows.Next() {
		var f model.AgentFeedback
		if err := rows.Scan(
			&f.ID,
			&f.TicketID,
			&f.AgentID,
			&f.Rating,
			&f.Action,
			&f.Comments,
			&f.Timestamp,
		); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
