package zealdoc_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/zealdoc"
	"github.com/stretchr/testify/assert"
)

func TestParseSymbolType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"Public Member Functions", zealdoc.SymbolFunction},
		{"Private Slots", zealdoc.SymbolFunction},
		{"func", zealdoc.SymbolFunction},
		{"enumm", zealdoc.SymbolMethod},
		{"clm", zealdoc.SymbolMethod},
		{"intfp", zealdoc.SymbolProperty},
		{"cl", zealdoc.SymbolClass},
		{"tdef", zealdoc.SymbolType},
		{"Data Fields", zealdoc.SymbolField},
		{"ns", zealdoc.SymbolNamespace},
		{"intf", zealdoc.SymbolProtocol},
		{"opfunc", zealdoc.SymbolOperator},
		{"var", zealdoc.SymbolVariable},
		{"doc", zealdoc.SymbolGuide},
		{"Class", zealdoc.SymbolClass},
		{"Widget", "Widget"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got := zealdoc.ParseSymbolType(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, zealdoc.ParseSymbolType(got), "idempotent")
		})
	}
}

func TestSymbolIndex(t *testing.T) {
	t.Parallel()

	a := &url.URL{Scheme: "file", Path: "/docs/a.html"}
	b := &url.URL{Scheme: "file", Path: "/docs/b.html"}
	c := &url.URL{Scheme: "file", Path: "/docs/c.html"}

	idx := &zealdoc.SymbolIndex{
		Category: zealdoc.SymbolFunction,
		Symbols: []zealdoc.Symbol{
			{Name: "append", URL: a},
			{Name: "append", URL: b},
			{Name: "copy", URL: c},
		},
	}

	t.Run("lookup returns every URL for a name", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []*url.URL{a, b}, idx.Lookup("append"))
		assert.Empty(t, idx.Lookup("missing"))
	})

	t.Run("names are distinct and ordered", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"append", "copy"}, idx.Names())
		assert.Equal(t, 3, idx.Len())
	})

	t.Run("nil index is empty", func(t *testing.T) {
		t.Parallel()

		var empty *zealdoc.SymbolIndex
		assert.Zero(t, empty.Len())
		assert.Nil(t, empty.Names())
		assert.Nil(t, empty.Lookup("append"))
	})
}
