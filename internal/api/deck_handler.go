package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/learning-tracker/internal/api/shared"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/service"
)

// DeckHandler handles deck routes and the card routes nested under a deck.
type DeckHandler struct {
	decks  service.DeckService
	cards  service.CardService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(decks service.DeckService, cards service.CardService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}
	return &DeckHandler{
		decks:  decks,
		cards:  cards,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /decks
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.ListDecks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// CreateDeck handles POST /decks
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DeckRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	deck, err := h.decks.CreateDeck(r.Context(), req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create deck")
		return
	}

	log.Debug("deck created", slog.String("deck_id", deck.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// GetDeck handles GET /decks/{id}
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.decks.GetDeck(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

// UpdateDeck handles PUT /decks/{id}
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req DeckRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	deck, err := h.decks.UpdateDeck(r.Context(), deckID, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /decks/{id}
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.decks.DeleteDeck(r.Context(), deckID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCards handles GET /decks/{id}/cards?status=
func (h *DeckHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	deckID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var status *domain.ReviewStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseReviewStatus(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		status = &parsed
	}

	cards, err := h.cards.ListCards(r.Context(), deckID, status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// CreateCard handles POST /decks/{id}/cards
func (h *DeckHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CreateCardRequest
	if !parseAndValidateRequest(w, r, &req, log) {
		return
	}

	card, err := h.cards.CreateCard(r.Context(), deckID, req.Question, req.Answer, domain.Grade(req.Difficulty))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}
