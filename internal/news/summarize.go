package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Summarizer condenses article prose into a short text_content string.
// Implementations must accept empty input and return an empty summary for it.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// LeadSummarizer is the dependency-free fallback: it keeps the first few
// sentences of the article, which for news prose is usually the lede.
type LeadSummarizer struct {
	MaxSentences int
}

func (s LeadSummarizer) Summarize(_ context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	max := s.MaxSentences
	if max <= 0 {
		max = 3
	}

	var (
		b     strings.Builder
		count int
	)
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			count++
			if count >= max {
				break
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// OpenAISummarizer summarizes through the chat completions API.
type OpenAISummarizer struct {
	client openai.Client
}

func NewOpenAISummarizer(apiKey string) *OpenAISummarizer {
	return &OpenAISummarizer{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	response, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You summarize news articles in two to three plain sentences, keeping the article's language."),
			openai.UserMessage(text),
		},
		MaxTokens: openai.Int(200),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
