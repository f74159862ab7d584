package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/api/shared"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/service"
	"github.com/phrazzld/learning-tracker/internal/service/card_review"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cards   service.CardService
	reviews card_review.CardReviewService
	logger  *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(
	cards service.CardService,
	reviews card_review.CardReviewService,
	logger *slog.Logger,
) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cards:   cards,
		reviews: reviews,
		logger:  logger.With(slog.String("component", "card_handler")),
	}
}

// GetCard handles GET /cards/{id}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	card, err := h.cards.GetCard(r.Context(), cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// UpdateCard handles PUT /cards/{id}
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	update := service.CardUpdate{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: domain.Grade(req.Difficulty),
	}
	if req.DeckID != "" {
		deckID, err := uuid.Parse(req.DeckID)
		if err != nil {
			HandleAPIError(w, r, domain.NewValidationError("deck_id", "has invalid format", domain.ErrInvalidID), "")
			return
		}
		update.DeckID = &deckID
	}

	card, err := h.cards.UpdateCard(r.Context(), cardID, update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /cards/{id}
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(r.Context(), cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetCardStatus handles PUT /cards/{id}/status
func (h *CardHandler) SetCardStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	card, err := h.cards.SetCardStatus(r.Context(), cardID, domain.ReviewStatus(req.ReviewStatus))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card status")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// RecordReview handles POST /cards/{id}/review
func (h *CardHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req RecordReviewRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	card, err := h.reviews.RecordReview(r.Context(), cardID, domain.Grade(req.Grade))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record review")
		return
	}

	log.Debug("review recorded",
		slog.String("card_id", cardID.String()),
		slog.String("grade", req.Grade))
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}
