package classify

import (
	"testing"

	"github.com/ticket-triage/backend/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"laptop-is-hardware", "Laptop won't start after Windows update", model.CategoryHardware},
		{"printer-is-hardware", "Office printer showing error code E001", model.CategoryHardware},
		{"license-is-software", "Microsoft Office license expired", model.CategorySoftware},
		{"vpn-is-network", "Remote employee cannot establish VPN connection", model.CategoryNetwork},
		{"smtp-is-network", "SMTP server connection failed", model.CategoryNetwork},
		{"locked-account-is-security", "User locked out after failed attempts", model.CategorySecurity},
		{"phone-is-telecom", "Phone system completely down", model.CategoryTelecom},
		{"no-match-is-general", "Please review the quarterly report", model.CategoryGeneral},
		{"empty-is-general", "", model.CategoryGeneral},
		{"case-insensitive", "PASSWORD reset needed", model.CategorySecurity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Fatalf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// 버킷 순서 보장: hardware 키워드가 software 키워드보다 우선
func TestClassifyPrecedence(t *testing.T) {
	got := Classify("printer driver software update")
	if got != model.CategoryHardware {
		t.Fatalf("expected first-match Hardware, got %q", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	const text = "cannot access shared network drive"
	first := Classify(text)
	for i := 0; i < 100; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("Classify not deterministic: %q then %q", first, got)
		}
	}
}
