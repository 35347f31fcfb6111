package docgen

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// LLM はモデル呼び出しを「プロンプト入力・テキスト出力」に正規化するアダプターです。
// クライアントライブラリごとの応答形式の差異はこの境界で吸収します。
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient は genai 公式クライアントの薄いラッパーです。
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// NewGeminiClient は Gemini クライアントを初期化します。
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init gemini client: %w", err)
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

// Generate はプロンプトを送信し、応答テキストをそのまま返します。
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
