package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobcal-web/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	store := session.NewMemoryStore()

	_, ok := store.Token()
	assert.False(t, ok)

	store.SetToken("abc")
	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	// Last write wins
	store.SetToken("def")
	token, _ = store.Token()
	assert.Equal(t, "def", token)

	store.Clear()
	_, ok = store.Token()
	assert.False(t, ok)
}

func TestParseBearer(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"empty", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
		{"padded token", "Bearer  abc123 ", "abc123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.ParseBearer(tc.header))
		})
	}
}
