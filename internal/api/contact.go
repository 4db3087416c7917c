package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
	"github.com/lewieville/g1-creative-sub000/internal/metrics"
	"github.com/lewieville/g1-creative-sub000/internal/relay"
)

// LeadRelay forwards one validated submission to the form backend.
type LeadRelay interface {
	Send(ctx context.Context, lead domain.LeadSubmission) error
}

// ContactHandler serves the contact-form relay proxy.
type ContactHandler struct {
	relay LeadRelay
}

// NewContactHandler creates a contact handler.
func NewContactHandler(relay LeadRelay) *ContactHandler {
	return &ContactHandler{relay: relay}
}

// Contact handles POST /api/contact. Validation happens locally before any
// network call; relay failures map onto the three-tier taxonomy (400
// validation, upstream status passthrough, 504 timeout, 500 otherwise).
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	m := metrics.Global()

	var lead domain.LeadSubmission
	if err := decodeJSON(w, r, &lead); err != nil {
		slog.Error("Contact request body unreadable", "error", err)
		JSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to send message. Please try again later.",
			"details": err.Error(),
		})
		return
	}

	if err := lead.Validate(); err != nil {
		m.ContactRejected.Inc()
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			Error(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, domain.ErrInvalidEmail):
			Error(w, http.StatusBadRequest, "Invalid email address")
		default:
			Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if err := h.relay.Send(r.Context(), lead); err != nil {
		m.RelayFailures.Inc()

		var transport *relay.TransportError
		if errors.As(err, &transport) {
			if transport.Kind == relay.TransportTimeout {
				slog.Error("Contact relay timed out", "email", lead.Email)
				Error(w, http.StatusGatewayTimeout, "Request timeout. Please try again.")
				return
			}
			slog.Error("Contact relay unreachable", "error", err)
			JSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Failed to send message. Please try again later.",
				"details": string(transport.Kind),
			})
			return
		}

		var upstream *relay.UpstreamError
		if errors.As(err, &upstream) {
			slog.Error("Contact relay rejected submission",
				"status", upstream.Status, "message", upstream.Message)
			status := upstream.Status
			if status == 0 {
				status = http.StatusInternalServerError
			}
			Error(w, status, upstream.Message)
			return
		}

		slog.Error("Contact relay failed unexpectedly", "error", err)
		JSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to send message. Please try again later.",
			"details": err.Error(),
		})
		return
	}

	m.ContactAccepted.Inc()
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message sent successfully",
	})
}

// RegisterRoutes registers contact routes. OPTIONS pre-flight is answered by
// the CORS middleware before reaching any handler.
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/contact", h.Contact)
}
