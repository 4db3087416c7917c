package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lewieville/g1-creative-sub000/internal/behavior"
	"github.com/lewieville/g1-creative-sub000/internal/visitor"
)

// BehaviorHandler exposes the personalization engine to the browser. The
// embedded pages post a pageview on load and a heartbeat once per second;
// both return the updated profile and the CTA copy selected from it.
type BehaviorHandler struct {
	engine *behavior.Engine
}

// NewBehaviorHandler creates a behavior handler.
func NewBehaviorHandler(engine *behavior.Engine) *BehaviorHandler {
	return &BehaviorHandler{engine: engine}
}

type pageviewRequest struct {
	Path string `json:"path"`
}

// Pageview handles POST /api/behavior/pageview.
func (h *BehaviorHandler) Pageview(w http.ResponseWriter, r *http.Request) {
	visitorID := visitor.IDFromContext(r.Context())
	if visitorID == "" {
		Error(w, http.StatusBadRequest, "missing visitor identity")
		return
	}

	var req pageviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.engine.PageView(r.Context(), visitorID, req.Path)
	if err != nil {
		slog.Error("Pageview update failed", "visitor_id", visitorID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to record pageview")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"cta":     behavior.SelectCTA(profile),
	})
}

// Heartbeat handles POST /api/behavior/heartbeat: one second of dwell time,
// written through immediately.
func (h *BehaviorHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	visitorID := visitor.IDFromContext(r.Context())
	if visitorID == "" {
		Error(w, http.StatusBadRequest, "missing visitor identity")
		return
	}

	profile, err := h.engine.Tick(r.Context(), visitorID)
	if err != nil {
		slog.Error("Heartbeat update failed", "visitor_id", visitorID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to record heartbeat")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"cta":     behavior.SelectCTA(profile),
	})
}

// CTA handles GET /api/behavior/cta without mutating the profile.
func (h *BehaviorHandler) CTA(w http.ResponseWriter, r *http.Request) {
	visitorID := visitor.IDFromContext(r.Context())
	if visitorID == "" {
		Error(w, http.StatusBadRequest, "missing visitor identity")
		return
	}

	cta, err := h.engine.CTA(r.Context(), visitorID)
	if err != nil {
		slog.Error("CTA lookup failed", "visitor_id", visitorID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to select call to action")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"cta": cta})
}

// RegisterRoutes registers behavior routes.
func (h *BehaviorHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/behavior/pageview", h.Pageview)
	r.Post("/api/behavior/heartbeat", h.Heartbeat)
	r.Get("/api/behavior/cta", h.CTA)
}
