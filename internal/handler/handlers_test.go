package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ticket-triage/backend/internal/service"
)

func TestEmbeddingsHandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.EmbeddingService
	r.POST("/api/v1/embeddings", NewEmbeddingHandler(svc).CreateEmbedding)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/embeddings", bytes.NewBufferString(`{"ticket_id":"","summary":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// confirm 플래그 없는 리셋 요청은 428로 거부된다
func TestMaintenanceResetRequiresConfirm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/maintenance/reset", NewMaintenanceHandler(service.NewMaintenanceService(nil)).Reset)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/maintenance/reset", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected 428, got %d", w.Code)
	}
}

func TestFeedbackListRequiresTicketID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.FeedbackService
	r.GET("/api/v1/feedback", NewFeedbackHandler(svc).GetFeedback)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", Ping)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated X-Request-ID header")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}
