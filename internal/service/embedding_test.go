package service

import (
	"context"
	"testing"

	"github.com/ticket-triage/backend/internal/model"
)

type fakeEmbeddingRepo struct {
	inserted []string
	similar  []model.SimilarTicket
}

func (f *fakeEmbeddingRepo) InsertTicketEmbedding(ctx context.Context, ticketID, summary, embedModel string, vector []float32) (int64, error) {
	f.inserted = append(f.inserted, ticketID)
	return int64(len(f.inserted)), nil
}

func (f *fakeEmbeddingRepo) FindSimilarTickets(ctx context.Context, ticketID string, vector []float32, limit int32) ([]model.SimilarTicket, error) {
	return f.similar, nil
}

type fakeEmbeddingClient struct {
	vector []float32
}

func (f *fakeEmbeddingClient) EmbedText(ctx context.Context, text string) ([]float32, string, error) {
	return f.vector, "text-embedding-004", nil
}

func TestCreateEmbedding(t *testing.T) {
	repo := &fakeEmbeddingRepo{}
	svc := NewEmbeddingService(repo, &fakeEmbeddingClient{vector: []float32{0.1, 0.2}})

	id, embedModel, err := svc.CreateEmbedding(context.Background(), "T1", "VPN down")
	if err != nil {
		t.Fatalf("CreateEmbedding: %v", err)
	}
	if id != 1 || embedModel != "text-embedding-004" {
		t.Fatalf("unexpected result: id=%d model=%s", id, embedModel)
	}

	if _, _, err := svc.CreateEmbedding(context.Background(), "", "VPN down"); err == nil {
		t.Fatal("expected error for empty ticket_id")
	}
}

func TestFindSimilarWithoutBackend(t *testing.T) {
	svc := NewEmbeddingService(&fakeEmbeddingRepo{}, nil)
	if svc.Ready() {
		t.Fatal("expected unavailable backend")
	}
	if _, err := svc.FindSimilar(context.Background(), "T1", "VPN down", 5); err == nil {
		t.Fatal("expected error when backend unavailable")
	}
}
