// Package classify provides the deterministic keyword classifier used to tag
// tickets at ingestion and to back the degraded analysis path.
//
// 버킷은 순서대로 평가하고 첫 매치가 이긴다:
// Hardware → Software → Network → Security → Telecom, 없으면 General.
package classify

import (
	"strings"

	"github.com/ticket-triage/backend/internal/model"
)

type bucket struct {
	category string
	keywords []string
}

var buckets = []bucket{
	{model.CategoryHardware, []string{"computer", "laptop", "desktop", "monitor", "printer", "hardware", "usb", "mouse", "keyboard"}},
	{model.CategorySoftware, []string{"software", "application", "program", "install", "update", "office", "microsoft", "license"}},
	{model.CategoryNetwork, []string{"network", "wifi", "internet", "connection", "vpn", "email", "smtp"}},
	{model.CategorySecurity, []string{"password", "login", "access", "security", "account", "locked", "authentication"}},
	{model.CategoryTelecom, []string{"phone", "telephone", "call", "voip"}},
}

// Classify - 대소문자 무시 키워드 매칭으로 카테고리 결정. 순수 함수.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, b := range buckets {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.category
			}
		}
	}
	return model.CategoryGeneral
}
