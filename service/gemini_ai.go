package service

import (
	"context"
	"fmt"

	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiService implements AIService on Google's Gemini API.
type GeminiService struct {
	client         *genai.Client
	embeddingModel *genai.EmbeddingModel
	chatModel      *genai.GenerativeModel
}

func NewGeminiService(ctx context.Context, apiKey, embeddingModelName, chatModelName string, maxOutputTokens int, temperature float32) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	chatModel := client.GenerativeModel(chatModelName)
	chatModel.SetMaxOutputTokens(int32(maxOutputTokens))
	chatModel.SetTemperature(temperature)

	return &GeminiService{
		client:         client,
		embeddingModel: client.EmbeddingModel(embeddingModelName),
		chatModel:      chatModel,
	}, nil
}

func (s *GeminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := s.embeddingModel.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("%w: embed content: %v", types.ErrProvider, err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned", types.ErrMalformedResponse)
	}
	return res.Embedding.Values, nil
}

func (s *GeminiService) Generate(ctx context.Context, contextText, question string) (string, error) {
	resp, err := s.chatModel.GenerateContent(ctx, genai.Text(BuildPrompt(contextText, question)))
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", types.ErrProvider, err)
	}

	content := ""
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}
	if content == "" {
		return "", fmt.Errorf("%w: no output text returned", types.ErrMalformedResponse)
	}
	return content, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}
