// Package chat implements the lead-qualification chat proxy. The service is
// stateless: the browser resends the whole transcript each turn, the server
// prepends the fixed qualification script and returns exactly one assistant
// message.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

// FallbackReply is returned when the provider produces an empty completion.
const FallbackReply = "Sorry, I didn't catch that. Could you rephrase?"

// Completer issues one non-streaming completion request and returns the
// assistant's text.
type Completer interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

// Service channels the upstream model through the qualification script.
type Service struct {
	completer    Completer
	systemPrompt string
}

// NewService creates a chat service with the given qualification script.
func NewService(completer Completer, systemPrompt string) *Service {
	return &Service{completer: completer, systemPrompt: systemPrompt}
}

// Reply prepends the system prompt to the caller-supplied transcript tail and
// returns the next assistant message. The system entry is never part of what
// the client sent or gets back.
func (s *Service) Reply(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	full := make([]domain.ChatMessage, 0, len(messages)+1)
	full = append(full, domain.ChatMessage{Role: domain.RoleSystem, Content: s.systemPrompt})
	full = append(full, messages...)

	reply, err := s.completer.Complete(ctx, full)
	if err != nil {
		return "", fmt.Errorf("chat: completion: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackReply, nil
	}
	return reply, nil
}
