package shared

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hexTraceID = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestSetTraceID(t *testing.T) {
	t.Parallel()

	first := GetTraceID(SetTraceID(context.Background()))
	second := GetTraceID(SetTraceID(context.Background()))

	assert.Regexp(t, hexTraceID, first)
	assert.Regexp(t, hexTraceID, second)
	assert.NotEqual(t, first, second)
}

func TestGenerateFallbackTraceID(t *testing.T) {
	t.Parallel()

	assert.Regexp(t, hexTraceID, generateFallbackTraceID())
}

func TestGetTraceIDMissing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))
}

func TestSubject(t *testing.T) {
	t.Parallel()

	_, ok := GetSubject(context.Background())
	assert.False(t, ok)

	_, ok = GetSubject(WithSubject(context.Background(), ""))
	assert.False(t, ok)

	subject, ok := GetSubject(WithSubject(context.Background(), "operator"))
	assert.True(t, ok)
	assert.Equal(t, "operator", subject)
}
