package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/learning-tracker/internal/api/middleware"
	"github.com/phrazzld/learning-tracker/internal/api/shared"
	"github.com/phrazzld/learning-tracker/internal/service"
	"github.com/phrazzld/learning-tracker/internal/service/auth"
	"github.com/phrazzld/learning-tracker/internal/service/card_review"
)

// BasePath is the prefix of every flashcard route.
const BasePath = "/api/flashcards"

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Decks   service.DeckService
	Cards   service.CardService
	Reviews card_review.CardReviewService

	// JWTService enables bearer authentication on the flashcard routes when
	// non-nil.
	JWTService auth.JWTService

	AllowedOrigins    []string
	DefaultQueueLimit int
	Logger            *slog.Logger
}

// NewRouter builds the chi router serving the flashcard API and /health.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	deckHandler := NewDeckHandler(cfg.Decks, cfg.Cards, log)
	cardHandler := NewCardHandler(cfg.Cards, cfg.Reviews, log)
	reviewHandler := NewReviewHandler(cfg.Reviews, cfg.DefaultQueueLimit, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTraceMiddleware(log))
	r.Use(chimiddleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.NewCORS(cfg.AllowedOrigins))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	})

	r.Route(BasePath, func(r chi.Router) {
		if cfg.JWTService != nil {
			r.Use(middleware.NewAuthMiddleware(cfg.JWTService).Authenticate)
		}

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)
			r.Get("/{id}", deckHandler.GetDeck)
			r.Put("/{id}", deckHandler.UpdateDeck)
			r.Delete("/{id}", deckHandler.DeleteDeck)
			r.Get("/{id}/cards", deckHandler.ListCards)
			r.Post("/{id}/cards", deckHandler.CreateCard)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/{id}", cardHandler.GetCard)
			r.Put("/{id}", cardHandler.UpdateCard)
			r.Delete("/{id}", cardHandler.DeleteCard)
			r.Put("/{id}/status", cardHandler.SetCardStatus)
			r.Post("/{id}/review", cardHandler.RecordReview)
		})

		r.Get("/review", reviewHandler.GetReviewQueue)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
