package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ticket-triage/backend/internal/model"
)

const processedIDPrefix = "processed"

// NewProcessedID - processed_tickets 기본키 생성.
// 같은 티켓을 재분석해도 타임스탬프 덕분에 항상 새 id가 나온다.
// 같은 ticket_id 안에서는 문자열 MAX(id)가 최신 행과 일치한다.
func NewProcessedID(ticketID string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d", processedIDPrefix, ticketID, now.Unix())
}

func (db *Postgres) EnsureProcessedSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS processed_tickets (
			id TEXT PRIMARY KEY,
			ticket_id TEXT NOT NULL,
			analysis TEXT NOT NULL DEFAULT '{}',
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0.5,
			processed_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			status TEXT NOT NULL DEFAULT 'pending'
		)
		`,
		`CREATE INDEX IF NOT EXISTS processed_tickets_ticket_id_idx ON processed_tickets(ticket_id)`,
		`CREATE INDEX IF NOT EXISTS processed_tickets_date_idx ON processed_tickets(processed_date DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// InsertProcessedTicket - 분석 레코드 append-only 저장.
// 같은 ticket_id의 기존 행이 있어도 새 행을 추가한다 (재분석 이력 허용).
func (db *Postgres) InsertProcessedTicket(ctx context.Context, ticketID string, analysis model.TicketAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}

	query := `
		INSERT INTO processed_tickets (id, ticket_id, analysis, confidence, processed_date, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
	`

	now := time.Now()
	_, err = db.Pool.Exec(ctx, query,
		NewProcessedID(ticketID, now),
		ticketID,
		string(payload),
		analysis.Confidence,
		now,
	)
	return err
}

// GetProcessedTicketIDs - 이미 분석된 ticket_id 집합 (파이프라인 diff용)
func (db *Postgres) GetProcessedTicketIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := db.Pool.Query(ctx, `SELECT DISTINCT ticket_id FROM processed_tickets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// GetProcessedTickets - 분석 결과 목록 (티켓 조인 포함, 최신순).
// analysis 컬럼이 손상돼 있어도 행을 버리지 않고 빈 레코드로 반환한다.
func (db *Postgres) GetProcessedTickets(ctx context.Context, statusFilter string, limit int32) ([]model.ProcessedTicket, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT pt.id, pt.ticket_id, pt.analysis, pt.confidence, pt.processed_date, pt.status,
			t.summary, t.category, t.priority
		FROM processed_tickets pt
		JOIN tickets t ON pt.ticket_id = t.id
	`
	args := []any{}
	if statusFilter != "" {
		query += ` WHERE pt.status = $1`
		args = append(args, statusFilter)
	}
	query += fmt.Sprintf(` ORDER BY pt.processed_date DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.ProcessedTicket, 0)
	for rows.Next() {
		var p model.ProcessedTicket
		var rawAnalysis string
		if err := rows.Scan(
			&p.ID,
			&p.TicketID,
			&rawAnalysis,
			&p.Confidence,
			&p.ProcessedDate,
			&p.Status,
			&p.Summary,
			&p.Category,
			&p.Priority,
		); err != nil {
			return nil, err
		}
		// 저장된 JSON이 깨져 있으면 zero value 유지
		_ = json.Unmarshal([]byte(rawAnalysis), &p.Analysis)
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetLatestAnalysis - 티켓의 가장 최근 분석 레코드 조회. 없으면 (nil, nil)
func (db *Postgres) GetLatestAnalysis(ctx context.Context, ticketID string) (*model.TicketAnalysis, error) {
	var rawAnalysis string
	err := db.Pool.QueryRow(ctx, `
		SELECT analysis
		FROM processed_tickets
		WHERE ticket_id = $1
		ORDER BY processed_date DESC
		LIMIT 1
	`, ticketID).Scan(&rawAnalysis)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	var analysis model.TicketAnalysis
	_ = json.Unmarshal([]byte(rawAnalysis), &analysis)
	return &analysis, nil
}

// ============================================================================
// 데이터 정합성 유지보수 (중복/고아 탐지 및 정리)
// ============================================================================

// FindDuplicateProcessed - ticket_id별 행이 2개 이상인 그룹 조회
func (db *Postgres) FindDuplicateProcessed(ctx context.Context) ([]model.DuplicateGroup, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT ticket_id, COUNT(*) AS cnt
		FROM processed_tickets
		GROUP BY ticket_id
		HAVING COUNT(*) > 1
		ORDER BY cnt DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]model.DuplicateGroup, 0)
	for rows.Next() {
		var g model.DuplicateGroup
		if err := rows.Scan(&g.TicketID, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// PruneDuplicateProcessed - ticket_id별로 id가 가장 큰(최신) 행만 남기고 삭제.
// 삭제한 행 수를 반환한다.
func (db *Postgres) PruneDuplicateProcessed(ctx context.Context) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM processed_tickets
		WHERE id NOT IN (
			SELECT MAX(id)
			FROM processed_tickets
			GROUP BY ticket_id
		)
	`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// FindOrphanedProcessed - 참조하는 티켓이 삭제된 processed 행의 ticket_id 조회
func (db *Postgres) FindOrphanedProcessed(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT DISTINCT ticket_id
		FROM processed_tickets
		WHERE ticket_id NOT IN (SELECT id FROM tickets)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PruneOrphanedProcessed - 고아 행 삭제, 삭제 수 반환
func (db *Postgres) PruneOrphanedProcessed(ctx context.Context) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM processed_tickets
		WHERE ticket_id NOT IN (SELECT id FROM tickets)
	`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountIntegrity - 정합성 리포트용 행 수 집계
func (db *Postgres) CountIntegrity(ctx context.Context) (totalTickets, processedCount, uniqueProcessed int64, err error) {
	err = db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM tickets),
			(SELECT COUNT(*) FROM processed_tickets),
			(SELECT COUNT(DISTINCT ticket_id) FROM processed_tickets)
	`).Scan(&totalTickets, &processedCount, &uniqueProcessed)
	return totalTickets, processedCount, uniqueProcessed, err
}

// ResetProcessed - processed_tickets 전체 삭제. 호출측에서 2단계 확인을
// 거친 뒤에만 불러야 한다.
func (db *Postgres) ResetProcessed(ctx context.Context) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM processed_tickets`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
