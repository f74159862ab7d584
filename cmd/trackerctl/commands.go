package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/app"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/platform/postgres"
	"github.com/phrazzld/learning-tracker/internal/service/auth"
	"github.com/spf13/cobra"
)

var errAuthDisabled = errors.New("auth.jwt_secret is not configured")

func migrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Run database schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}
			return c.withBackend(cmd.Context(), func(backend *app.Backend) error {
				if err := backend.Migrate(cmd.Context(), command); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "migrate %s: ok\n", command)
				return nil
			})
		},
	}
}

func tokenCmd(c *cli) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.Auth.Enabled() {
				return errAuthDisabled
			}
			jwtService, err := auth.NewJWTService(c.cfg.Auth)
			if err != nil {
				return err
			}
			token, err := jwtService.GenerateToken(cmd.Context(), subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "trackerctl", "token subject")
	return cmd
}

func decksCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List decks with their study statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(cmd.Context(), func(s *app.Services) error {
				decks, err := s.Decks.ListDecks(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tCARDS\tMASTERED\tLAST STUDIED")
				for _, d := range decks {
					fmt.Fprintf(w, "%s\t%s\t%d\t%.0f%%\t%s\n",
						d.ID, d.Name, d.Stats.TotalCards, d.Stats.MasteryPercentage, formatTime(d.LastStudiedAt))
				}
				return w.Flush()
			})
		},
	}
}

func queueCmd(c *cli) *cobra.Command {
	var (
		deck  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show the next cards to review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var deckID *uuid.UUID
			if deck != "" {
				id, err := uuid.Parse(deck)
				if err != nil {
					return fmt.Errorf("invalid --deck: %w", err)
				}
				deckID = &id
			}
			if !cmd.Flags().Changed("limit") {
				limit = c.cfg.Review.DefaultQueueLimit
			}

			return c.withServices(cmd.Context(), func(s *app.Services) error {
				cards, err := s.Reviews.GetReviewQueue(cmd.Context(), deckID, limit)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSTATUS\tLAST REVIEWED\tQUESTION")
				for _, card := range cards {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						card.ID, card.ReviewStatus, formatTime(card.LastReviewedAt), card.Question)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&deck, "deck", "", "only cards from this deck ID")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum cards to show (default from config)")
	return cmd
}

func reviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "review <card-id> <Easy|Medium|Hard>",
		Short: "Record a review for a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid card ID: %w", err)
			}
			grade, err := domain.ParseGrade(normalizeGrade(args[1]))
			if err != nil {
				return err
			}

			return c.withServices(cmd.Context(), func(s *app.Services) error {
				card, err := s.Reviews.RecordReview(cmd.Context(), cardID, grade)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "reviewed %s as %s, next review %s\n",
					card.ID, grade, formatTime(card.NextReviewAt))
				return nil
			})
		},
	}
}

// normalizeGrade accepts grades in any case ("easy", "HARD").
func normalizeGrade(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
