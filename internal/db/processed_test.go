package db

import (
	"strings"
	"testing"
	"time"
)

func TestNewProcessedID(t *testing.T) {
	now := time.Unix(1717200000, 0)

	id := NewProcessedID("DEMO-005", now)
	if id != "processed_DEMO-005_1717200000" {
		t.Fatalf("unexpected id: %s", id)
	}
	if !strings.HasPrefix(id, "processed_") {
		t.Fatalf("expected processed_ prefix, got %s", id)
	}
}

// 같은 티켓을 나중에 재분석하면 id가 달라지고, 문자열 비교로도
// 최신 행이 더 크게 정렬되어야 한다 (MAX(id) 정리 규칙의 전제)
func TestNewProcessedIDOrdering(t *testing.T) {
	first := NewProcessedID("DEMO-001", time.Unix(1717200000, 0))
	second := NewProcessedID("DEMO-001", time.Unix(1717200060, 0))

	if first == second {
		t.Fatal("expected distinct ids for repeated analysis")
	}
	if !(second > first) {
		t.Fatalf("expected later id to sort greater: %s vs %s", first, second)
	}
}
