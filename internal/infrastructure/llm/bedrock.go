package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	anthropicVersion = "bedrock-2023-05-31"
	defaultModelID   = "anthropic.claude-3-haiku-20240307-v1:0"
	maxTokens        = 4096
)

// ErrEmptyCompletion 表示模型沒有回傳任何文字。
var ErrEmptyCompletion = errors.New("empty completion")

// Invoker 為 bedrockruntime.Client 的 InvokeModel 能力。
type Invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type invokeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	System           string    `json:"system,omitempty"`
	Messages         []message `json:"messages"`
}

type invokeResponse struct {
	Content []contentBlock `json:"content"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// BedrockSummarizer 透過 Bedrock 上的 Claude 產生洞察文字。
type BedrockSummarizer struct {
	client  Invoker
	modelID string
}

// NewBedrockSummarizer 以預設 AWS 憑證鏈建立 summarizer。
func NewBedrockSummarizer(ctx context.Context, region, modelID string) (*BedrockSummarizer, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	log.Printf("bedrock summarizer ready model=%s region=%s", modelOrDefault(modelID), region)
	return NewBedrockSummarizerWithClient(bedrockruntime.NewFromConfig(cfg), modelID), nil
}

// NewBedrockSummarizerWithClient 以既有 client 建立 summarizer。
func NewBedrockSummarizerWithClient(client Invoker, modelID string) *BedrockSummarizer {
	return &BedrockSummarizer{client: client, modelID: modelOrDefault(modelID)}
}

func modelOrDefault(id string) string {
	if id == "" {
		return defaultModelID
	}
	return id
}

// Summarize 送出單輪對話並回傳所有 text 區塊的串接。
func (s *BedrockSummarizer) Summarize(ctx context.Context, system, prompt string) (string, error) {
	body, err := json.Marshal(invokeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		System:           system,
		Messages: []message{{
			Role:    "user",
			Content: []contentBlock{{Type: "text", Text: prompt}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	out, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(s.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke model: %w", err)
	}

	var resp invokeResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	var b strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	log.Printf("bedrock summarize done in=%d out=%d", resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return b.String(), nil
}
