package model

type EmbeddingRequest struct {
	TicketID string `json:"ticket_id"`
	Summary  string `json:"summary"`
}

type EmbeddingResponse struct {
	Status      string `json:"status"`
	EmbeddingID int64  `json:"embedding_id"`
	Model       string `json:"model"`
}

// SimilarTicket - 임베딩 거리 기반 유사 티켓 검색 결과
type SimilarTicket struct {
	TicketID string  `json:"ticket_id"`
	Summary  string  `json:"summary"`
	Distance float64 `json:"distance"`
}
