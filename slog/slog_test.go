package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/zealdoc"
	"github.com/fwojciec/zealdoc/mock"
	zslog "github.com/fwojciec/zealdoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Searcher{
			SearchFn: func(context.Context, string, zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
				return []*zealdoc.SearchResult{{Name: "Foo"}, {Name: "Foobar"}}, nil
			},
		}

		s := zslog.NewLoggingSearcher(inner, debugLogger(&buf))
		results, err := s.Search(context.Background(), "foo", zealdoc.NewCancellationToken())

		require.NoError(t, err)
		assert.Len(t, results, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=search")
		assert.Contains(t, output, "query=foo")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "canceled=false")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Searcher{
			SearchFn: func(context.Context, string, zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
				return nil, errors.New("no such table")
			},
		}

		s := zslog.NewLoggingSearcher(inner, debugLogger(&buf))
		_, err := s.Search(context.Background(), "foo", zealdoc.NewCancellationToken())

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="no such table"`)
	})

	t.Run("silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Searcher{
			SearchFn: func(context.Context, string, zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
				return nil, nil
			},
		}

		s := zslog.NewLoggingSearcher(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := s.Search(context.Background(), "foo", zealdoc.NewCancellationToken())

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("logs load and wraps searches", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocsetLoader{
			LoadFn: func(_ context.Context, path string) (zealdoc.Docset, error) {
				return &mock.Docset{
					NameFn:    func() string { return "Go" },
					TitleFn:   func() string { return "Go" },
					IsValidFn: func() bool { return true },
					VariantFn: func() zealdoc.Variant { return zealdoc.VariantModern },
					SearchFn: func(context.Context, string, zealdoc.CancellationToken) ([]*zealdoc.SearchResult, error) {
						return []*zealdoc.SearchResult{{Name: "Println"}}, nil
					},
				}, nil
			},
		}

		loader := zslog.NewLoggingLoader(inner, debugLogger(&buf))
		d, err := loader.Load(context.Background(), "/docsets/Go.docset")
		require.NoError(t, err)

		assert.Equal(t, "Go", d.Title())
		output := buf.String()
		assert.Contains(t, output, `msg="docset load"`)
		assert.Contains(t, output, "path=/docsets/Go.docset")
		assert.Contains(t, output, "variant=zdash")
		assert.Contains(t, output, "valid=true")

		results, err := d.Search(context.Background(), "println", zealdoc.NewCancellationToken())
		require.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Contains(t, buf.String(), "docset=Go")
		assert.Contains(t, buf.String(), "query=println")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocsetLoader{
			LoadFn: func(context.Context, string) (zealdoc.Docset, error) {
				return nil, context.Canceled
			},
		}

		loader := zslog.NewLoggingLoader(inner, debugLogger(&buf))
		_, err := loader.Load(context.Background(), "/docsets/Go.docset")

		require.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, buf.String(), `err="context canceled"`)
	})
}
