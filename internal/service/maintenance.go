// 데이터 정합성 유지보수 비즈니스 로직 정의
//
// 제공 기능:
//   - 정합성 리포트 (중복/고아 탐지, 행 수 집계)
//   - 중복 정리: ticket_id별 최신 분석만 유지
//   - 고아 정리: 삭제된 티켓을 참조하는 분석 제거
//   - 분석 이력 전체 리셋 (호출측 확인 필수)

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticket-triage/backend/internal/model"
)

// ErrConfirmationRequired - 파괴적 작업에 확인 플래그가 없을 때
var ErrConfirmationRequired = errors.New("confirmation required")

type MaintenanceStore interface {
	CountIntegrity(ctx context.Context) (totalTickets, processedCount, uniqueProcessed int64, err error)
	FindDuplicateProcessed(ctx context.Context) ([]model.DuplicateGroup, error)
	PruneDuplicateProcessed(ctx context.Context) (int64, error)
	FindOrphanedProcessed(ctx context.Context) ([]string, error)
	PruneOrphanedProcessed(ctx context.Context) (int64, error)
	ResetProcessed(ctx context.Context) (int64, error)
	LogSystemEvent(ctx context.Context, functionName, status, details string)
}

// MaintenanceService 구조체 정의
type MaintenanceService struct {
	store MaintenanceStore
}

// MaintenanceService 객체 생성
func NewMaintenanceService(store MaintenanceStore) *MaintenanceService {
	return &MaintenanceService{store: store}
}

// Integrity - 정합성 리포트 생성 (읽기 전용)
func (s *MaintenanceService) Integrity(ctx context.Context) (model.IntegrityReport, error) {
	total, processed, unique, err := s.store.CountIntegrity(ctx)
	if err != nil {
		return model.IntegrityReport{}, fmt.Errorf("failed to count rows: %w", err)
	}

	duplicates, err := s.store.FindDuplicateProcessed(ctx)
	if err != nil {
		return model.IntegrityReport{}, fmt.Errorf("failed to find duplicates: %w", err)
	}

	orphans, err := s.store.FindOrphanedProcessed(ctx)
	if err != nil {
		return model.IntegrityReport{}, fmt.Errorf("failed to find orphans: %w", err)
	}

	return model.IntegrityReport{
		TotalTickets:    total,
		ProcessedCount:  processed,
		UniqueProcessed: unique,
		Duplicates:      duplicates,
		Orphans:         orphans,
	}, nil
}

// PruneDuplicates - ticket_id별 최신 분석만 남기고 삭제
func (s *MaintenanceService) PruneDuplicates(ctx context.Context) (int64, error) {
	removed, err := s.store.PruneDuplicateProcessed(ctx)
	if err != nil {
		s.store.LogSystemEvent(ctx, "clean_database", model.EventError, err.Error())
		return 0, fmt.Errorf("failed to prune duplicates: %w", err)
	}

	s.store.LogSystemEvent(ctx, "clean_database", model.EventSuccess,
		fmt.Sprintf("Removed %d duplicate records", removed))
	return removed, nil
}

// PruneOrphans - 참조 티켓이 사라진 분석 행 삭제
func (s *MaintenanceService) PruneOrphans(ctx context.Context) (int64, error) {
	removed, err := s.store.PruneOrphanedProcessed(ctx)
	if err != nil {
		s.store.LogSystemEvent(ctx, "clean_database", model.EventError, err.Error())
		return 0, fmt.Errorf("failed to prune orphans: %w", err)
	}

	s.store.LogSystemEvent(ctx, "clean_database", model.EventSuccess,
		fmt.Sprintf("Removed %d orphaned records", removed))
	return removed, nil
}

// Reset - 분석 이력 전체 삭제. confirm이 false면 아무것도 지우지 않고
// ErrConfirmationRequired를 반환한다.
func (s *MaintenanceService) Reset(ctx context.Context, confirm bool) (int64, error) {
	if !confirm {
		return 0, ErrConfirmationRequired
	}

	removed, err := s.store.ResetProcessed(ctx)
	if err != nil {
		s.store.LogSystemEvent(ctx, "reset_processed", model.EventError, err.Error())
		return 0, fmt.Errorf("failed to reset processed tickets: %w", err)
	}

	s.store.LogSystemEvent(ctx, "reset_processed", model.EventSuccess,
		fmt.Sprintf("Removed %d processed records", removed))
	return removed, nil
}
