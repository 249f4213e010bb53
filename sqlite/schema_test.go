package sqlite

import (
	"strings"
	"testing"

	"github.com/fwojciec/zealdoc"
	"github.com/stretchr/testify/assert"
)

func TestEscapeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"O'Reilly", "O''Reilly"},
		{"a_b", `a\_b`},
		{"100%", `100\%`},
		{`C:\path`, `C:\\path`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeQuery(tt.in), "escapeQuery(%q)", tt.in)
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a\_b\%c'd`, escapeLike("a_b%c'd"))
}

func TestSchema_SearchQuery(t *testing.T) {
	t.Parallel()

	for variant, s := range schemas {
		t.Run(variant.String(), func(t *testing.T) {
			t.Parallel()

			short := s.searchQuery("ab")
			assert.Contains(t, short, "zealScore('ab', ")
			assert.True(t, strings.HasSuffix(short, " LIMIT 1000"))

			// Multi-byte characters count once.
			assert.True(t, strings.HasSuffix(s.searchQuery("äö"), " LIMIT 1000"))

			long := s.searchQuery("abc")
			assert.NotContains(t, long, "LIMIT")
			assert.Contains(t, long, "ORDER BY score DESC")
		})
	}

	assert.NotContains(t, schemas, zealdoc.VariantInvalid)
}

func TestSchema_IndexName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "__zi_name0001", schemas[zealdoc.VariantLegacy].indexName())
}
