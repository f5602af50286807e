package core

import (
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"protos.app/smartlife-api/internal/store"
)

// History roles accepted at the boundary. The provider calls its assistant
// role "model"; translation happens in toProviderHistory.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	providerAssistantRole = "model"
)

// noKnowledgeDataMessage is returned without a provider call when a
// knowledge entry has no fact rows.
const noKnowledgeDataMessage = "Hmm, I couldn't find any data for that one... sorry about that!"

// ChatTurn is one prior turn of a client-held conversation. Nothing is
// persisted server-side; the client resends the full history every request.
type ChatTurn struct {
	Role string
	Text string
}

// AssistantService funnels both answer-producing paths (preset knowledge
// and free chat) through the prompt composer and the relay.
type AssistantService struct {
	store   store.Store
	relay   Relay
	persona Persona
}

func NewAssistantService(st store.Store, relay Relay, persona Persona) *AssistantService {
	return &AssistantService{
		store:   st,
		relay:   relay,
		persona: persona,
	}
}

// AnswerFromKnowledge produces a retrieval-augmented answer for one
// knowledge entry. An entry with no facts short-circuits to a fixed
// not-found message and never reaches the provider.
func (s *AssistantService) AnswerFromKnowledge(knowledgeID int64, userID string) (string, error) {
	details, err := s.store.GetKnowledgeDetails(knowledgeID)
	if err != nil {
		return "", fmt.Errorf("failed to load knowledge details: %w", err)
	}
	if len(details) == 0 {
		return noKnowledgeDataMessage, nil
	}

	userName, err := s.store.GetUserName(userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user name: %w", err)
	}

	return s.relay.AnswerFromKnowledge(
		s.persona.Instruction(userName),
		BuildRetrievalPrompt(details),
	)
}

// AnswerFromChat answers a free-form chat turn against the caller-supplied
// history.
func (s *AssistantService) AnswerFromChat(history []ChatTurn, prompt, userID string) (string, error) {
	providerHistory, err := toProviderHistory(history)
	if err != nil {
		return "", err
	}

	userName, err := s.store.GetUserName(userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user name: %w", err)
	}

	return s.relay.AnswerFromChat(s.persona.Instruction(userName), providerHistory, prompt)
}

// toProviderHistory translates boundary roles into the provider's
// vocabulary: "assistant" becomes "model", "user" passes through. Anything
// else is rejected rather than forwarded opaquely.
func toProviderHistory(turns []ChatTurn) ([]*genai.Content, error) {
	var history []*genai.Content
	for i, turn := range turns {
		var role string
		switch turn.Role {
		case RoleUser:
			role = RoleUser
		case RoleAssistant:
			role = providerAssistantRole
		default:
			return nil, fmt.Errorf("history entry %d has unsupported role %q", i, turn.Role)
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}
	return history, nil
}
