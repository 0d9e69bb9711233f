// Gemini 텍스트 생성 클라이언트 정의
//
// 환경변수:
//   - GEMINI_API_KEY: Google AI API 키
//
// 모델 선택 정책: 후보 모델을 순서대로 간단한 프롬프트로 probe하고
// 처음 응답에 성공한 모델을 채택한다. 전부 실패하면 생성자가 에러를
// 반환하고, 호출측(main)은 fallback 전용 degraded mode로 동작한다.

package client

import (
	"context"
	"fmt"
	"log"

	"github.com/ticket-triage/backend/internal/config"
	"google.golang.org/genai"
)

var analysisModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
}

// GenAIClient 구조체 정의
type GenAIClient struct {
	client *genai.Client
	model  string
}

// GenAIClient 객체 생성. 사용 가능한 모델을 찾지 못하면 에러.
func NewGenAIClient(ctx context.Context, cfg config.GenAIConfig) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}

	model, err := probeModels(ctx, client)
	if err != nil {
		return nil, err
	}

	log.Printf("Initialized GenAI client (model=%s)", model)
	return &GenAIClient{client: client, model: model}, nil
}

func probeModels(ctx context.Context, client *genai.Client) (string, error) {
	for _, model := range analysisModels {
		res, err := client.Models.GenerateContent(ctx, model, genai.Text("Hello"), nil)
		if err != nil {
			log.Printf("Model probe failed (model=%s): %v", model, err)
			continue
		}
		if res != nil && res.Text() != "" {
			return model, nil
		}
	}
	return "", fmt.Errorf("no usable genai model among %v", analysisModels)
}

func (c *GenAIClient) Model() string {
	return c.model
}

// GenerateText - 프롬프트를 보내고 응답 텍스트를 반환
func (c *GenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := ""
	if res != nil {
		text = res.Text()
	}
	if text == "" {
		return "", fmt.Errorf("empty generation result")
	}
	return text, nil
}
