package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/learning-tracker/internal/app"
	"github.com/phrazzld/learning-tracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:               0,
			LogLevel:           "debug",
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: config.DatabaseConfig{
			Driver: app.DriverSQLite,
			URL:    ":memory:",
		},
		Auth: config.AuthConfig{
			TokenLifetimeMinutes: 60,
		},
		Review: config.ReviewConfig{
			EasyIntervalDays:   7,
			MediumIntervalDays: 3,
			HardIntervalDays:   1,
			DefaultQueueLimit:  10,
		},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend, err := app.OpenBackend(context.Background(), cfg.Database, logger)
	require.NoError(t, err)
	require.NoError(t, backend.Migrate(context.Background(), "up"))

	a, err := newApplication(cfg, logger, backend)
	require.NoError(t, err)
	return a
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	t.Run("without auth or jobs", func(t *testing.T) {
		t.Parallel()
		a := newTestApplication(t, testConfig())
		t.Cleanup(func() { a.cleanup(context.Background()) })

		assert.Nil(t, a.jwtService)
		assert.Nil(t, a.scheduler)
	})

	t.Run("with auth and due digest", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Auth.JWTSecret = testSecret
		cfg.Jobs.DueDigestSchedule = "@every 1h"

		a := newTestApplication(t, cfg)
		t.Cleanup(func() { a.cleanup(context.Background()) })

		assert.NotNil(t, a.jwtService)
		require.NotNil(t, a.scheduler)
		assert.Equal(t, 1, a.scheduler.Entries())
	})

	t.Run("bad schedule", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Jobs.DueDigestSchedule = "whenever"

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		backend, err := app.OpenBackend(context.Background(), cfg.Database, logger)
		require.NoError(t, err)
		t.Cleanup(func() { _ = backend.Close() })

		_, err = newApplication(cfg, logger, backend)
		assert.Error(t, err)
	})
}

func TestRouterEndToEnd(t *testing.T) {
	t.Parallel()

	a := newTestApplication(t, testConfig())
	t.Cleanup(func() { a.cleanup(context.Background()) })
	router := a.setupRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/flashcards/decks",
		strings.NewReader(`{"name":"Capitals"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)

	var deck struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&deck))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/flashcards/decks/"+deck.ID+"/cards",
		strings.NewReader(`{"question":"Capital of France?","answer":"Paris"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)

	var card struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&card))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/flashcards/cards/"+card.ID+"/review",
		strings.NewReader(`{"grade":"Medium"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	var reviewed struct {
		ReviewStatus   string     `json:"review_status"`
		LastReviewedAt *time.Time `json:"last_reviewed_at"`
		NextReviewAt   *time.Time `json:"next_review_at"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&reviewed))
	assert.Equal(t, "Learning", reviewed.ReviewStatus)
	require.NotNil(t, reviewed.LastReviewedAt)
	require.NotNil(t, reviewed.NextReviewAt)
	assert.Equal(t, 72*time.Hour, reviewed.NextReviewAt.Sub(*reviewed.LastReviewedAt))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/flashcards/review?deck_id="+deck.ID, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"count":1`)
	assert.Contains(t, rr.Body.String(), `"limit":10`)
}

func TestRouterRequiresTokenWhenAuthEnabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Auth.JWTSecret = testSecret
	a := newTestApplication(t, cfg)
	t.Cleanup(func() { a.cleanup(context.Background()) })
	router := a.setupRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/flashcards/decks", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token, err := a.jwtService.GenerateToken(context.Background(), "operator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards/decks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	a := newTestApplication(t, testConfig())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, listener, a.setupRouter()) }()

	url := "http://" + listener.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
