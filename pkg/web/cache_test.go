package web

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/pview-dev/pview/pkg/project"
	"github.com/pview-dev/pview/pkg/proto"
	dto "github.com/prometheus/client_model/go"
)

func cacheCount(t *testing.T, result string) float64 {
	t.Helper()
	var m dto.Metric
	if err := highlightCacheCounter.WithLabelValues(result).Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestHighlightCacheHit(t *testing.T) {
	is := is.New(t)
	_, c := setup(t)
	ctx := context.Background()
	opts := project.BlobOptions{Highlight: true}

	hits, misses := cacheCount(t, "hit"), cacheCount(t, "miss")
	first, err := project.GetBlob(ctx, c, upstream, head, "src/main.ts", opts)
	is.NoErr(err)
	is.Equal(cacheCount(t, "miss"), misses+1)
	is.Equal(cacheCount(t, "hit"), hits)

	second, err := project.GetBlob(ctx, c, upstream, head, "src/main.ts", opts)
	is.NoErr(err)
	is.Equal(cacheCount(t, "hit"), hits+1)
	is.Equal(*second, *first)
	is.True(second.HTML)

	// plain requests bypass the cache
	plain, err := project.GetBlob(ctx, c, upstream, head, "src/main.ts", project.BlobOptions{})
	is.NoErr(err)
	is.True(!plain.HTML)
	is.Equal(cacheCount(t, "hit"), hits+1)
	is.Equal(cacheCount(t, "miss"), misses+1)
}

func TestHighlightCacheEviction(t *testing.T) {
	is := is.New(t)
	c := newHighlightCache(0)
	a := highlightKey{id: "p1", commit: "abc", path: "a"}
	b := highlightKey{id: "p1", commit: "abc", path: "b"}

	c.Set(a, &proto.Blob{Path: "a"})
	c.Set(b, &proto.Blob{Path: "b"})
	is.Equal(c.Len(), 1)

	_, ok := c.Get(a)
	is.True(!ok)
	blob, ok := c.Get(b)
	is.True(ok)
	is.Equal(blob.Path, "b")
}
