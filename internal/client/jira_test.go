package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ticket-triage/backend/internal/config"
	"github.com/ticket-triage/backend/internal/model"
)

func TestDemoTickets(t *testing.T) {
	c := NewJiraClient(config.JiraConfig{})
	if !c.DemoMode() {
		t.Fatal("expected demo mode without credentials")
	}

	tickets, err := c.FetchTickets(30, 50)
	if err != nil {
		t.Fatalf("FetchTickets: %v", err)
	}
	if len(tickets) != 10 {
		t.Fatalf("expected 10 demo tickets, got %d", len(tickets))
	}

	seen := make(map[string]bool)
	for _, ticket := range tickets {
		if ticket.ID == "" || ticket.Summary == "" {
			t.Fatalf("demo ticket missing id or summary: %+v", ticket)
		}
		if !model.IsCategory(ticket.Category) {
			t.Fatalf("invalid category %q for %s", ticket.Category, ticket.ID)
		}
		seen[ticket.Category] = true
	}

	// 픽스처는 5개 분류 카테고리를 전부 포괄해야 한다
	for _, cat := range []string{
		model.CategoryHardware, model.CategorySoftware,
		model.CategoryNetwork, model.CategorySecurity, model.CategoryTelecom,
	} {
		if !seen[cat] {
			t.Fatalf("demo fixture missing category %s", cat)
		}
	}
}

func TestDemoTicketsMaxResults(t *testing.T) {
	c := NewJiraClient(config.JiraConfig{})
	tickets, err := c.FetchTickets(30, 3)
	if err != nil {
		t.Fatalf("FetchTickets: %v", err)
	}
	if len(tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(tickets))
	}
}

func TestExtractDescriptionText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain-string", `"plain description"`, "plain description"},
		{"empty", ``, ""},
		{
			"adf-document",
			`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"VPN is"},{"type":"text","text":"down"}]}]}`,
			"VPN is down",
		},
		{
			"adf-nested",
			`{"type":"doc","content":[{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"step one"}]}]}]}]}`,
			"step one",
		},
		{"invalid-json", `{{{`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDescriptionText(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Fatalf("ExtractDescriptionText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchTicketsFromServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"issues": [
				{
					"key": "IT-42",
					"fields": {
						"summary": "VPN connection issues",
						"description": "Times out during authentication.",
						"priority": {"name": "Critical"},
						"status": {"name": "Open"},
						"reporter": {"displayName": "David Brown"},
						"created": "2024-05-01T09:30:00.000+0000",
						"updated": "2024-05-01T10:00:00.000+0000"
					}
				}
			]
		}`))
	}))
	defer srv.Close()

	c := NewJiraClient(config.JiraConfig{
		BaseURL:  srv.URL,
		Email:    "agent@example.com",
		APIToken: "token",
	})

	tickets, err := c.FetchTickets(30, 50)
	if err != nil {
		t.Fatalf("FetchTickets: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}

	got := tickets[0]
	if got.ID != "IT-42" || got.Priority != "Critical" || got.Status != "Open" {
		t.Fatalf("unexpected ticket: %+v", got)
	}
	if got.Category != model.CategoryNetwork {
		t.Fatalf("expected Network category, got %q", got.Category)
	}
	if got.Created.IsZero() {
		t.Fatal("expected parsed created timestamp")
	}
}

func TestUpdateTicketStatus(t *testing.T) {
	var transitioned bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"transitions":[{"id":"31","to":{"name":"Done"}},{"id":"21","to":{"name":"In Progress"}}]}`))
		case http.MethodPost:
			var body struct {
				Transition struct {
					ID string `json:"id"`
				} `json:"transition"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode transition body: %v", err)
			}
			if body.Transition.ID != "31" {
				t.Fatalf("expected transition 31, got %s", body.Transition.ID)
			}
			transitioned = true
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewJiraClient(config.JiraConfig{
		BaseURL:  srv.URL,
		Email:    "agent@example.com",
		APIToken: "token",
	})

	if err := c.UpdateTicketStatus("IT-42", "done"); err != nil {
		t.Fatalf("UpdateTicketStatus: %v", err)
	}
	if !transitioned {
		t.Fatal("transition was not executed")
	}
}
