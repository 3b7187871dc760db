package slug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello_world"},
		{"punctuation stripped", "Hello, World!", "hello_world"},
		{"mixed case", "Organic Skin Care 101", "organic_skin_care_101"},
		{"whitespace runs collapse", "a   b\tc", "a_b_c"},
		{"leading and trailing space", "  Trimmed Title  ", "trimmed_title"},
		{"only punctuation", "!!!", ""},
		{"underscores survive", "snake_case title", "snake_case_title"},
		{"digits survive", "Top 10 tips", "top_10_tips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.title))
		})
	}
}

func TestEnsureUnique_FreeBase(t *testing.T) {
	t.Parallel()

	got, err := EnsureUnique("hello_world", func(string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello_world", got)
}

func TestEnsureUnique_SuffixesUntilFree(t *testing.T) {
	t.Parallel()

	taken := map[string]bool{
		"hello_world":   true,
		"hello_world-1": true,
		"hello_world-2": true,
	}
	var probes []string
	got, err := EnsureUnique("hello_world", func(c string) (bool, error) {
		probes = append(probes, c)
		return taken[c], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello_world-3", got)
	assert.Equal(t, []string{"hello_world", "hello_world-1", "hello_world-2", "hello_world-3"}, probes)
}

func TestEnsureUnique_PropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("store down")
	_, err := EnsureUnique("x", func(string) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}
