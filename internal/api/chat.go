package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
	"github.com/lewieville/g1-creative-sub000/internal/metrics"
)

// ChatService produces the next assistant message for a transcript tail.
type ChatService interface {
	Reply(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

// ChatHandler serves the lead-qualification chat proxy. A nil service means
// no upstream credential is configured: the handler answers 500 without
// attempting an upstream call, but the rest of the site keeps working.
type ChatHandler struct {
	svc ChatService
}

// NewChatHandler creates a chat handler. Pass a nil service when the
// completion provider is unconfigured.
func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	m := metrics.Global()
	m.ChatRequests.Inc()

	if h.svc == nil {
		Error(w, http.StatusInternalServerError, "OpenAI API key not configured")
		return
	}

	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("Chat request body unreadable", "error", err)
		m.ChatFailures.Inc()
		Error(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	reply, err := h.svc.Reply(r.Context(), req.Messages)
	if err != nil {
		// Upstream detail stays in the server log, never in the response.
		slog.Error("Chat completion failed", "error", err, "messages", len(req.Messages))
		m.ChatFailures.Inc()
		Error(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": reply})
}

// RegisterRoutes registers chat routes.
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/chat", h.Chat)
}
