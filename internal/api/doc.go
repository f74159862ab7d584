// Package api provides the HTTP handlers and router for the flashcard API.
//
// All routes live under /api/flashcards and exchange JSON. Errors are
// returned as {"error": ..., "trace_id": ...} with messages that never carry
// internal detail; the full, redacted error is logged under the same trace ID.
package api
