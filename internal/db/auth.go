package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// AgentAccount - agents 테이블 한 행 (피드백의 agent_id 주체)
type AgentAccount struct {
	ID           int64
	LoginID      string
	PasswordHash string
}

func (db *Postgres) EnsureAuthSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS agents (
			id BIGSERIAL PRIMARY KEY,
			login_id TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// CreateAgent - 계정 생성. 이미 있으면 그대로 둔다 (부트스트랩용).
func (db *Postgres) CreateAgent(ctx context.Context, loginID, passwordHash string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO agents (login_id, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (login_id) DO NOTHING
	`, loginID, passwordHash)
	return err
}

// GetAgentByLoginID - 로그인용 계정 조회. 없으면 (nil, nil)
func (db *Postgres) GetAgentByLoginID(ctx context.Context, loginID string) (*AgentAccount, error) {
	var a AgentAccount
	err := db.Pool.QueryRow(ctx, `
		SELECT id, login_id, password_hash
		FROM agents
		WHERE login_id = $1
	`, loginID).Scan(&a.ID, &a.LoginID, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
