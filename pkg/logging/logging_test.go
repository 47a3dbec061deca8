package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	Ctx(ctx).Info().Msg("hello")

	assert.Contains(t, tl.Output(), "hello")
}

func TestFromContextFallsBack(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck // nil context fallback is the point
}

func TestWithLabelAndEntity(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithLabel(ctx, "Accenture")
	ctx = WithEntity(ctx, "id-42")
	Ctx(ctx).Info().Msg("resolved")

	out := tl.Output()
	assert.Contains(t, out, `"label":"Accenture"`)
	assert.Contains(t, out, `"entity_id":"id-42"`)
}

func TestTestLoggerLines(t *testing.T) {
	tl := NewTestLogger(t)
	assert.Nil(t, tl.Lines())

	tl.Info().Msg("one")
	tl.Info().Msg("two")
	assert.Len(t, tl.Lines(), 2)
}
