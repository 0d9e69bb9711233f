package db

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"github.com/ticket-triage/backend/internal/model"
)

func (db *Postgres) EnsureEmbeddingSchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`
		CREATE TABLE IF NOT EXISTS ticket_embeddings (
			id BIGSERIAL PRIMARY KEY,
			ticket_id TEXT NOT NULL,
			summary TEXT NOT NULL,
			embedding vector(768) NOT NULL,
			model TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS ticket_embeddings_ticket_id_idx ON ticket_embeddings(ticket_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) InsertTicketEmbedding(ctx context.Context, ticketID, summary, model string, vector []float32) (int64, error) {
	query := `
		INSERT INTO ticket_embeddings (ticket_id, summary, embedding, model)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := db.Pool.QueryRow(ctx, query, ticketID, summary, pgvector.NewVector(vector), model).Scan(&id)
	return id, err
}

// FindSimilarTickets - 임베딩 거리 기준 유사 티켓 조회 (자기 자신 제외)
func (db *Postgres) FindSimilarTickets(ctx context.Context, ticketID string, vector []float32, limit int32) ([]model.SimilarTicket, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT ticket_id, summary, embedding <-> $1 AS distance
		FROM ticket_embeddings
		WHERE ticket_id <> $2
		ORDER BY embedding <-> $1
		LIMIT $3
	`, pgvector.NewVector(vector), ticketID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.SimilarTicket, 0)
	for rows.Next() {
		var s model.SimilarTicket
		if err := rows.Scan(&s.TicketID, &s.Summary, &s.Distance); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
