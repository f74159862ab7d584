package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/store"
)

// DeckDigest reports how many of a deck's cards are due.
type DeckDigest struct {
	DeckID uuid.UUID
	Name   string
	Due    int
	Total  int
}

// Digest is the result of one due-digest run.
type Digest struct {
	GeneratedAt time.Time
	Decks       []DeckDigest
	TotalDue    int
}

// DueDigestJob counts, per deck, the cards that are due for study: never
// scheduled, or scheduled at or before the run time.
type DueDigestJob struct {
	decks  store.DeckStore
	cards  store.CardStore
	clock  func() time.Time
	logger *slog.Logger
}

var _ Job = (*DueDigestJob)(nil)

// NewDueDigestJob creates the job. A nil clock uses the current UTC time.
func NewDueDigestJob(
	decks store.DeckStore,
	cards store.CardStore,
	clock func() time.Time,
	logger *slog.Logger,
) *DueDigestJob {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DueDigestJob{
		decks:  decks,
		cards:  cards,
		clock:  clock,
		logger: logger.With(slog.String("component", "due_digest_job")),
	}
}

func (j *DueDigestJob) Name() string { return "due_digest" }

// Build computes the digest without logging it.
func (j *DueDigestJob) Build(ctx context.Context) (Digest, error) {
	now := j.clock()

	decks, err := j.decks.List(ctx)
	if err != nil {
		return Digest{}, fmt.Errorf("list decks: %w", err)
	}
	cards, err := j.cards.List(ctx, store.CardFilter{})
	if err != nil {
		return Digest{}, fmt.Errorf("list cards: %w", err)
	}

	byDeck := make(map[uuid.UUID][]*domain.Card, len(decks))
	for _, c := range cards {
		byDeck[c.DeckID] = append(byDeck[c.DeckID], c)
	}

	digest := Digest{GeneratedAt: now, Decks: make([]DeckDigest, 0, len(decks))}
	for _, d := range decks {
		entry := DeckDigest{DeckID: d.ID, Name: d.Name, Total: len(byDeck[d.ID])}
		for _, c := range byDeck[d.ID] {
			if c.IsDue(now) {
				entry.Due++
			}
		}
		digest.TotalDue += entry.Due
		digest.Decks = append(digest.Decks, entry)
	}
	return digest, nil
}

// Run implements Job.
func (j *DueDigestJob) Run(ctx context.Context) error {
	digest, err := j.Build(ctx)
	if err != nil {
		return err
	}

	for _, d := range digest.Decks {
		if d.Due == 0 {
			continue
		}
		j.logger.Info("cards due",
			slog.String("deck_id", d.DeckID.String()),
			slog.String("deck", d.Name),
			slog.Int("due", d.Due),
			slog.Int("total", d.Total))
	}
	j.logger.Info("due digest",
		slog.Int("decks", len(digest.Decks)),
		slog.Int("total_due", digest.TotalDue),
		slog.Time("at", digest.GeneratedAt))
	return nil
}
