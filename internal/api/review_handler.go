package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/learning-tracker/internal/api/shared"
	"github.com/phrazzld/learning-tracker/internal/service/card_review"
)

// DefaultQueueLimit is used when neither the request nor the configuration
// sets a queue size.
const DefaultQueueLimit = 10

// ReviewHandler serves the study queue.
type ReviewHandler struct {
	reviews      card_review.CardReviewService
	defaultLimit int
	logger       *slog.Logger
}

// NewReviewHandler creates a ReviewHandler. A non-positive defaultLimit
// falls back to DefaultQueueLimit.
func NewReviewHandler(
	reviews card_review.CardReviewService,
	defaultLimit int,
	logger *slog.Logger,
) *ReviewHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}
	if defaultLimit < 1 {
		defaultLimit = DefaultQueueLimit
	}
	return &ReviewHandler{
		reviews:      reviews,
		defaultLimit: defaultLimit,
		logger:       logger.With(slog.String("component", "review_handler")),
	}
}

// GetReviewQueue handles GET /review?deck_id=&limit=
func (h *ReviewHandler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	deckID, err := getQueryUUID(r, "deck_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	limit, err := getQueryInt(r, "limit", h.defaultLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	queue, err := h.reviews.GetReviewQueue(r.Context(), deckID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build review queue")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewQueueResponse{
		Cards: queue,
		Count: len(queue),
		Limit: limit,
	})
}
