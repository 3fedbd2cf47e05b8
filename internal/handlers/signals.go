package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	"github.com/radarloop/radarloop-backend/internal/requestdata"
	"github.com/radarloop/radarloop-backend/internal/services"
	"github.com/radarloop/radarloop-backend/internal/signals"
)

type SignalsHandler struct {
	log       *logger.Logger
	signalSvc services.SignalService
}

func NewSignalsHandler(log *logger.Logger, signalSvc services.SignalService) *SignalsHandler {
	return &SignalsHandler{
		log:       log.With("handler", "SignalsHandler"),
		signalSvc: signalSvc,
	}
}

// GET /api/signals/weights
// The user's full learned weight map, including muted entries.
func (h *SignalsHandler) GetWeights(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	weights, err := h.signalSvc.GetWeights(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"weights": weights})
}

// POST /api/signals/mute
func (h *SignalsHandler) Mute(c *gin.Context) {
	h.setMuted(c, true)
}

// POST /api/signals/unmute
func (h *SignalsHandler) Unmute(c *gin.Context) {
	h.setMuted(c, false)
}

func (h *SignalsHandler) setMuted(c *gin.Context, muted bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.signalSvc.MuteSignal(c.Request.Context(), rd.UserID, req.Type, req.Value, muted); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"muted": muted})
}

// POST /api/signals/reset
// Zeroes one weight and reactivates it.
func (h *SignalsHandler) Reset(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.signalSvc.ResetSignal(c.Request.Context(), rd.UserID, req.Type, req.Value); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"reset": true})
}

// POST /api/signals/extract
// Dry-run extraction for debugging dictionary coverage; nothing is stored.
func (h *SignalsHandler) Extract(c *gin.Context) {
	var req signals.ExtractInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	RespondOK(c, h.signalSvc.ExtractSignals(req))
}
