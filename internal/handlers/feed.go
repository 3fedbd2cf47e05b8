package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	"github.com/radarloop/radarloop-backend/internal/requestdata"
	"github.com/radarloop/radarloop-backend/internal/services"
)

type FeedHandler struct {
	log         *logger.Logger
	feedService services.FeedService
}

func NewFeedHandler(log *logger.Logger, feedService services.FeedService) *FeedHandler {
	return &FeedHandler{
		log:         log.With("handler", "FeedHandler"),
		feedService: feedService,
	}
}

// POST /api/items
// Ingest one analyzed item into the user's inbox.
func (h *FeedHandler) IngestItem(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req services.IngestItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := h.feedService.IngestItem(c.Request.Context(), rd.UserID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GET /api/feed?column=inbox
// Personalized feed, highest adjusted score first.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	feed, err := h.feedService.GetFeed(c.Request.Context(), rd.UserID, c.Query("column"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": feed})
}

// POST /api/items/:id/decision
// Record a triage action and fold it into the user's weights.
func (h *FeedHandler) Triage(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.feedService.Triage(c.Request.Context(), rd.UserID, itemID, req.Action)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, res)
}

// GET /api/decisions?limit=50
func (h *FeedHandler) ListDecisions(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	decisions, err := h.feedService.ListDecisions(c.Request.Context(), rd.UserID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"decisions": decisions})
}
