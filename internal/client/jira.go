// Jira REST API와 통신하는 이슈 트래커 클라이언트 정의
//
// 환경변수:
//   - JIRA_URL: Jira 인스턴스 URL (예: https://yourcompany.atlassian.net)
//   - JIRA_EMAIL: 계정 이메일
//   - JIRA_API_TOKEN: API 토큰
//
// 자격증명이 하나라도 없으면 demo mode로 동작하며, 전 카테고리를 포괄하는
// 고정 샘플 티켓 10건을 반환한다.

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ticket-triage/backend/internal/classify"
	"github.com/ticket-triage/backend/internal/config"
	"github.com/ticket-triage/backend/internal/model"
)

// JiraClient 구조체 정의
type JiraClient struct {
	baseURL    string
	email      string
	apiToken   string
	demoMode   bool
	httpClient *http.Client
	now        func() time.Time
}

// JiraClient 객체 생성
func NewJiraClient(cfg config.JiraConfig) *JiraClient {
	demoMode := cfg.DemoMode()
	if demoMode {
		log.Printf("Jira credentials missing, running in DEMO MODE with sample data")
	}

	return &JiraClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		email:    cfg.Email,
		apiToken: cfg.APIToken,
		demoMode: demoMode,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

func (c *JiraClient) DemoMode() bool {
	return c.demoMode
}

// ============================================================================
// 티켓 조회
// ============================================================================

type jiraSearchResponse struct {
	Issues []jiraIssue `json:"issues"`
}

type jiraIssue struct {
	Key    string     `json:"key"`
	Fields jiraFields `json:"fields"`
}

type jiraFields struct {
	Summary string `json:"summary"`
	// 구버전은 평문 문자열, 신버전은 ADF 오브젝트
	Description json.RawMessage `json:"description"`
	Priority    *jiraNamed      `json:"priority"`
	Status      *jiraNamed      `json:"status"`
	Reporter    *jiraReporter   `json:"reporter"`
	Created     string          `json:"created"`
	Updated     string          `json:"updated"`
}

type jiraNamed struct {
	Name string `json:"name"`
}

type jiraReporter struct {
	DisplayName string `json:"displayName"`
}

// FetchTickets - 최근 daysBack일 내 생성된 티켓을 최대 maxResults건 조회.
// 필터 JQL이 거부되면 open query로 한 번 더 시도한다.
func (c *JiraClient) FetchTickets(daysBack, maxResults int) ([]model.Ticket, error) {
	if c.demoMode {
		return c.demoTickets(maxResults), nil
	}

	jql := fmt.Sprintf("created >= -%dd ORDER BY created DESC", daysBack)
	tickets, err := c.searchTickets(jql, maxResults)
	if err == nil {
		return tickets, nil
	}

	// 프로젝트 권한/필드 설정에 따라 날짜 필터가 거부될 수 있음
	log.Printf("Filtered JQL failed (%v), retrying with open query", err)
	return c.searchTickets("ORDER BY created DESC", maxResults)
}

func (c *JiraClient) searchTickets(jql string, maxResults int) ([]model.Ticket, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("fields", "key,summary,description,priority,status,reporter,created,updated")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/rest/api/2/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to jira: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("jira returned status %d: %s", resp.StatusCode, string(body))
	}

	var search jiraSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to parse jira response: %w", err)
	}

	return c.processIssues(search.Issues), nil
}

func (c *JiraClient) processIssues(issues []jiraIssue) []model.Ticket {
	tickets := make([]model.Ticket, 0, len(issues))
	for _, issue := range issues {
		description := ExtractDescriptionText(issue.Fields.Description)

		priority := model.PriorityMedium
		if issue.Fields.Priority != nil && issue.Fields.Priority.Name != "" {
			priority = issue.Fields.Priority.Name
		}
		status := "Unknown"
		if issue.Fields.Status != nil && issue.Fields.Status.Name != "" {
			status = issue.Fields.Status.Name
		}
		reporter := "Unknown"
		if issue.Fields.Reporter != nil && issue.Fields.Reporter.DisplayName != "" {
			reporter = issue.Fields.Reporter.DisplayName
		}

		tickets = append(tickets, model.Ticket{
			ID:          issue.Key,
			Summary:     issue.Fields.Summary,
			Description: description,
			Category:    classify.Classify(issue.Fields.Summary + " " + description),
			Priority:    priority,
			Status:      status,
			Reporter:    reporter,
			Created:     parseJiraTime(issue.Fields.Created),
			Updated:     parseJiraTime(issue.Fields.Updated),
		})
	}
	return tickets
}

// Jira 타임스탬프 포맷: 2006-01-02T15:04:05.000-0700
func parseJiraTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02T15:04:05.000-0700", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// ============================================================================
// ADF (Atlassian Document Format) 평탄화
// ============================================================================

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

// ExtractDescriptionText - description 필드를 평문으로 변환.
// 평문 문자열과 ADF 오브젝트 둘 다 처리한다.
func ExtractDescriptionText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var root adfNode
	if err := json.Unmarshal(raw, &root); err != nil {
		return ""
	}

	var parts []string
	var walk func(node adfNode)
	walk = func(node adfNode) {
		if node.Type == "text" && node.Text != "" {
			parts = append(parts, node.Text)
		}
		for _, child := range node.Content {
			walk(child)
		}
	}
	walk(root)

	return strings.TrimSpace(strings.Join(parts, " "))
}

// ============================================================================
// 티켓 상태 변경 / 코멘트
// ============================================================================

type jiraTransitionsResponse struct {
	Transitions []struct {
		ID string `json:"id"`
		To struct {
			Name string `json:"name"`
		} `json:"to"`
	} `json:"transitions"`
}

// UpdateTicketStatus - 목표 상태명에 해당하는 transition을 찾아 실행
func (c *JiraClient) UpdateTicketStatus(ticketID, targetStatus string) error {
	if c.demoMode {
		log.Printf("DEMO MODE: would update %s to %s", ticketID, targetStatus)
		return nil
	}

	transitionsURL := fmt.Sprintf("%s/rest/api/2/issue/%s/transitions", c.baseURL, ticketID)

	req, err := http.NewRequest(http.MethodGet, transitionsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get transitions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jira transitions returned status: %d", resp.StatusCode)
	}

	var transitions jiraTransitionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&transitions); err != nil {
		return fmt.Errorf("failed to parse transitions: %w", err)
	}

	transitionID := ""
	for _, tr := range transitions.Transitions {
		if strings.EqualFold(tr.To.Name, targetStatus) {
			transitionID = tr.ID
			break
		}
	}
	if transitionID == "" {
		return fmt.Errorf("no transition found for status: %s", targetStatus)
	}

	payload, err := json.Marshal(map[string]any{
		"transition": map[string]string{"id": transitionID},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal transition request: %w", err)
	}

	postReq, err := http.NewRequest(http.MethodPost, transitionsURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	postReq.SetBasicAuth(c.email, c.apiToken)
	postReq.Header.Set("Content-Type", "application/json")

	postResp, err := c.httpClient.Do(postReq)
	if err != nil {
		return fmt.Errorf("failed to execute transition: %w", err)
	}
	defer postResp.Body.Close()

	if postResp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("jira transition returned status: %d", postResp.StatusCode)
	}
	return nil
}

// AddComment - 티켓에 코멘트 추가
func (c *JiraClient) AddComment(ticketID, comment string) error {
	if c.demoMode {
		log.Printf("DEMO MODE: would add comment to %s", ticketID)
		return nil
	}

	payload, err := json.Marshal(map[string]string{"body": comment})
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	commentURL := fmt.Sprintf("%s/rest/api/2/issue/%s/comment", c.baseURL, ticketID)
	req, err := http.NewRequest(http.MethodPost, commentURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("jira comment returned status: %d", resp.StatusCode)
	}
	return nil
}

// ============================================================================
// Demo 티켓 (테스트 가능한 고정 픽스처)
// ============================================================================

func (c *JiraClient) demoTickets(maxResults int) []model.Ticket {
	now := c.now()

	demo := []model.Ticket{
		{
			ID:          "DEMO-001",
			Summary:     "Laptop won't start after Windows update",
			Description: "User reports laptop shows black screen after latest Windows update. Power button works but no display.",
			Priority:    model.PriorityHigh,
			Status:      "Open",
			Reporter:    "John Smith",
			Created:     now.Add(-2 * time.Hour),
			Updated:     now.Add(-1 * time.Hour),
		},
		{
			ID:          "DEMO-002",
			Summary:     "Cannot access shared network drive",
			Description: `Employee cannot connect to shared drive \\server\finance. Gets access denied error.`,
			Priority:    model.PriorityMedium,
			Status:      "In Progress",
			Reporter:    "Jane Doe",
			Created:     now.Add(-4 * time.Hour),
			Updated:     now.Add(-3 * time.Hour),
		},
		{
			ID:          "DEMO-003",
			Summary:     "Office printer not working",
			Description: "Main office printer showing error code E001. Paper jams cleared but still not printing.",
			Priority:    model.PriorityLow,
			Status:      "Open",
			Reporter:    "Mike Johnson",
			Created:     now.Add(-24 * time.Hour),
			Updated:     now.Add(-8 * time.Hour),
		},
		{
			ID:          "DEMO-004",
			Summary:     "Email account locked out",
			Description: "User locked out of email account after multiple failed login attempts. Needs password reset.",
			Priority:    model.PriorityHigh,
			Status:      "To Do",
			Reporter:    "Sarah Wilson",
			Created:     now.Add(-6 * time.Hour),
			Updated:     now.Add(-5 * time.Hour),
		},
		{
			ID:          "DEMO-005",
			Summary:     "VPN connection issues",
			Description: "Remote employee cannot establish VPN connection. Times out during authentication.",
			Priority:    model.PriorityCritical,
			Status:      "Open",
			Reporter:    "David Brown",
			Created:     now.Add(-30 * time.Minute),
			Updated:     now.Add(-15 * time.Minute),
		},
		{
			ID:          "DEMO-006",
			Summary:     "Microsoft Office license expired",
			Description: "User getting activation errors when opening Word and Excel. License needs renewal.",
			Priority:    model.PriorityMedium,
			Status:      "In Progress",
			Reporter:    "Lisa Anderson",
			Created:     now.Add(-12 * time.Hour),
			Updated:     now.Add(-10 * time.Hour),
		},
		{
			ID:          "DEMO-007",
			Summary:     "Slow computer performance",
			Description: "Employee reports computer is very slow, takes 10+ minutes to boot up and programs freeze frequently.",
			Priority:    model.PriorityMedium,
			Status:      "Open",
			Reporter:    "Robert Chen",
			Created:     now.Add(-48 * time.Hour),
			Updated:     now.Add(-24 * time.Hour),
		},
		{
			ID:          "DEMO-008",
			Summary:     "Cannot send emails",
			Description: `User can receive emails but cannot send. Gets error: "SMTP server connection failed".`,
			Priority:    model.PriorityHigh,
			Status:      "To Do",
			Reporter:    "Maria Garcia",
			Created:     now.Add(-8 * time.Hour),
			Updated:     now.Add(-7 * time.Hour),
		},
		{
			ID:          "DEMO-009",
			Summary:     "USB devices not recognized",
			Description: "Computer not recognizing USB flash drives and external hard drives. Tried multiple ports.",
			Priority:    model.PriorityLow,
			Status:      "Open",
			Reporter:    "Kevin Martinez",
			Created:     now.Add(-72 * time.Hour),
			Updated:     now.Add(-48 * time.Hour),
		},
		{
			ID:          "DEMO-010",
			Summary:     "Phone system down",
			Description: "Office phone system completely down. No incoming or outgoing calls possible.",
			Priority:    model.PriorityCritical,
			Status:      "In Progress",
			Reporter:    "Amanda Taylor",
			Created:     now.Add(-45 * time.Minute),
			Updated:     now.Add(-30 * time.Minute),
		},
	}

	for i := range demo {
		demo[i].Category = classify.Classify(demo[i].Summary + " " + demo[i].Description)
	}

	if maxResults < len(demo) {
		demo = demo[:maxResults]
	}
	return demo
}
