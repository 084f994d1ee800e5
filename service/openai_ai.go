package service

import (
	"context"
	"fmt"

	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/sashabaranov/go-openai"
)

// OpenAIService talks to OpenAI or any OpenAI-compatible server (the base
// URL is configurable, so local inference servers work too).
type OpenAIService struct {
	client         *openai.Client
	embeddingModel string
	chatModel      string
	maxTokens      int
	temperature    float32
}

func NewOpenAIService(baseURL, apiKey, embeddingModel, chatModel string, maxTokens int, temperature float32) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client:         client,
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
		maxTokens:      maxTokens,
		temperature:    temperature,
	}
}

func (s *OpenAIService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(s.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: embeddings: %v", types.ErrProvider, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned", types.ErrMalformedResponse)
	}
	return resp.Data[0].Embedding, nil
}

func (s *OpenAIService) Generate(ctx context.Context, contextText, question string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(contextText, question),
			},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", types.ErrProvider, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no output text returned", types.ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}
