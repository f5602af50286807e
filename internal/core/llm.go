package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"protos.app/smartlife-api/pkg/log"
)

const generationModelName = "models/gemini-flash-latest"

// ErrGenerationFailed marks provider call failures and malformed provider
// output. The API layer converts it into an error payload instead of an
// HTTP failure.
var ErrGenerationFailed = errors.New("generation failed")

// Relay forwards composed prompts to the LLM provider. It holds no memory
// between calls; every invocation carries its full context.
type Relay interface {
	AnswerFromKnowledge(systemInstruction, retrievalPrompt string) (string, error)
	AnswerFromChat(systemInstruction string, history []*genai.Content, prompt string) (string, error)
}

type LLMService struct {
	client *genai.Client
}

// NewLLMService creates the Gemini client. A missing or rejected API key is
// not fatal: the service is still constructed and every generation call
// fails with ErrGenerationFailed until the key is fixed.
func NewLLMService(apiKey string) *LLMService {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		log.Error("failed to create GenAI client, generation calls will fail", err)
		return &LLMService{}
	}
	return &LLMService{client: client}
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Error("error closing GenAI client", err)
		}
	}
}

// AnswerFromKnowledge makes a single-shot completion call with the persona
// bound as the model's system instruction.
func (s *LLMService) AnswerFromKnowledge(systemInstruction, retrievalPrompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: no provider client configured", ErrGenerationFailed)
	}

	ctx := context.Background()
	model := s.client.GenerativeModel(generationModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(retrievalPrompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate request: %w", ErrGenerationFailed, err)
	}
	return extractText(resp)
}

// AnswerFromChat replays the caller-supplied history on a fresh chat session
// and submits the new prompt as the latest turn. History must already be in
// the provider's role vocabulary.
func (s *LLMService) AnswerFromChat(systemInstruction string, history []*genai.Content, prompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: no provider client configured", ErrGenerationFailed)
	}

	ctx := context.Background()
	model := s.client.GenerativeModel(generationModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini chat SendMessage: %w", ErrGenerationFailed, err)
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response from provider", ErrGenerationFailed)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		} else {
			log.Warnf("gemini response part was not text: %T", part)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts in provider response", ErrGenerationFailed)
	}
	return text.String(), nil
}
