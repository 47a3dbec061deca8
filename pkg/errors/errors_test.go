package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	tests := []struct {
		name        string
		err         *FetchError
		wantMessage string
		matches     []error
	}{
		{
			name:        "status code error",
			err:         NewFetchError("https://example.com/logo.png", 404, nil),
			wantMessage: "fetch https://example.com/logo.png: status 404",
			matches:     []error{ErrFetchFailed},
		},
		{
			name:        "transport error",
			err:         NewFetchError("https://example.com/logo.png", 0, New("connection refused")),
			wantMessage: "fetch https://example.com/logo.png: connection refused",
			matches:     []error{ErrFetchFailed},
		},
		{
			name:        "throttled fetch is also rate limited",
			err:         NewFetchError("https://example.com/logo.png", 429, nil),
			wantMessage: "fetch https://example.com/logo.png: status 429",
			matches:     []error{ErrFetchFailed, ErrRateLimited},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.err.Error())
			for _, target := range tt.matches {
				assert.ErrorIs(t, tt.err, target)
			}
		})
	}
}

func TestStorageError(t *testing.T) {
	cause := New("permission denied")
	err := NewStorageError("brand-assets", "accenture/logo.png", cause)

	assert.Equal(t, "storage write brand-assets/accenture/logo.png: permission denied", err.Error())
	assert.ErrorIs(t, err, ErrStorageFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrRegistryFailed)
}

func TestRegistryError(t *testing.T) {
	cause := New("timeout")

	err := NewRegistryError("update", "media", "abc-123", cause)
	assert.Equal(t, "registry update media abc-123: timeout", err.Error())
	assert.ErrorIs(t, err, ErrRegistryFailed)
	assert.ErrorIs(t, err, cause)

	noID := NewRegistryError("list", "entity", "", cause)
	assert.Equal(t, "registry list entity: timeout", noID.Error())
}

func TestAmbiguousMatchError(t *testing.T) {
	err := &AmbiguousMatchError{
		Label:      "wipro",
		Candidates: []string{"Wipro", "Wipro"},
	}
	assert.Contains(t, err.Error(), `ambiguous match for "wipro"`)
	assert.Contains(t, err.Error(), "2 candidates")
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, WrapIO("read", "/tmp/x", nil))
	assert.NoError(t, WrapRegistry("find", "media", "", nil))
	assert.NoError(t, WrapStorage("bucket", "key", nil))

	cause := New("boom")
	wrapped := WrapRegistry("find", "media", "id-1", cause)
	assert.ErrorIs(t, wrapped, ErrRegistryFailed)
	assert.ErrorIs(t, wrapped, cause)
}

func TestHelperPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"not found", fmt.Errorf("outer: %w", ErrNotFound), IsNotFound, true},
		{"unresolved", ErrUnresolved, IsUnresolved, true},
		{"fetch via typed error", NewFetchError("u", 500, nil), IsFetchFailure, true},
		{"storage via typed error", NewStorageError("b", "k", New("x")), IsStorageFailure, true},
		{"registry via typed error", NewRegistryError("find", "media", "", New("x")), IsRegistryFailure, true},
		{"context canceled", context.Canceled, IsCanceled, true},
		{"deadline exceeded", context.DeadlineExceeded, IsCanceled, true},
		{"deadline via fetch error", NewFetchError("u", 0, context.DeadlineExceeded), IsCanceled, true},
		{"sentinel canceled", ErrCanceled, IsCanceled, true},
		{"mismatch", ErrNotFound, IsStorageFailure, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}
