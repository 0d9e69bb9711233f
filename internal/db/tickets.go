package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ticket-triage/backend/internal/model"
)

func (db *Postgres) EnsureTicketSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS tickets (
			id TEXT PRIMARY KEY,
			summary TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'General',
			priority TEXT NOT NULL DEFAULT 'Medium',
			status TEXT NOT NULL DEFAULT '',
			reporter TEXT NOT NULL DEFAULT '',
			created TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS tickets_created_idx ON tickets(created DESC)`,
		`CREATE INDEX IF NOT EXISTS tickets_status_idx ON tickets(status)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// UpsertTickets - 티켓 배치를 하나의 트랜잭션으로 upsert.
// id가 이미 있으면 mutable 필드만 갱신하고 created는 보존한다.
// 배치 중 하나라도 실패하면 전체 롤백 (부분 저장 불가).
func (db *Postgres) UpsertTickets(ctx context.Context, tickets []model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO tickets
			(id, summary, description, category, priority, status, reporter, created, updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			summary = EXCLUDED.summary,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			priority = EXCLUDED.priority,
			status = EXCLUDED.status,
			reporter = EXCLUDED.reporter,
			updated = EXCLUDED.updated
	`

	for _, t := range tickets {
		if _, err := tx.Exec(ctx, query,
			t.ID,
			t.Summary,
			t.Description,
			t.Category,
			t.Priority,
			t.Status,
			t.Reporter,
			t.Created,
			t.Updated,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetTickets - 최신순 티켓 조회. statusFilter가 비어 있으면 전체.
func (db *Postgres) GetTickets(ctx context.Context, statusFilter string, limit int32) ([]model.Ticket, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, summary, description, category, priority, status, reporter, created, updated
		FROM tickets
		ORDER BY created DESC
		LIMIT $1
	`
	args := []any{limit}

	if statusFilter != "" {
		query = `
			SELECT id, summary, description, category, priority, status, reporter, created, updated
			FROM tickets
			WHERE status = $1
			ORDER BY created DESC
			LIMIT $2
		`
		args = []any{statusFilter, limit}
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(
			&t.ID,
			&t.Summary,
			&t.Description,
			&t.Category,
			&t.Priority,
			&t.Status,
			&t.Reporter,
			&t.Created,
			&t.Updated,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// GetTicketByID - 단건 조회. 없으면 (nil, nil)
func (db *Postgres) GetTicketByID(ctx context.Context, id string) (*model.Ticket, error) {
	query := `
		SELECT id, summary, description, category, priority, status, reporter, created, updated
		FROM tickets
		WHERE id = $1
	`

	var t model.Ticket
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Summary,
		&t.Description,
		&t.Category,
		&t.Priority,
		&t.Status,
		&t.Reporter,
		&t.Created,
		&t.Updated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
