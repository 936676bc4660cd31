package web

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pview-dev/pview/pkg/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultHighlightCacheSize is the number of highlighted blobs kept in
// memory.
const DefaultHighlightCacheSize = 256

var highlightCacheCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pview",
	Subsystem: "http",
	Name:      "highlight_cache_total",
	Help:      "The total number of highlight cache lookups",
}, []string{"result"})

// highlightKey identifies a blob. Snapshots are read-only, so the content
// behind a key never changes.
type highlightKey struct {
	id, commit, path string
}

type highlightCache struct {
	blobs *lru.Cache[highlightKey, *proto.Blob]
}

func newHighlightCache(size int) *highlightCache {
	if size <= 0 {
		size = 1
	}
	c := &highlightCache{}
	cache, _ := lru.New[highlightKey, *proto.Blob](size)
	c.blobs = cache
	return c
}

func (c *highlightCache) Get(k highlightKey) (*proto.Blob, bool) {
	b, ok := c.blobs.Get(k)
	if ok {
		highlightCacheCounter.WithLabelValues("hit").Inc()
	} else {
		highlightCacheCounter.WithLabelValues("miss").Inc()
	}
	return b, ok
}

func (c *highlightCache) Set(k highlightKey, b *proto.Blob) {
	c.blobs.Add(k, b)
}

func (c *highlightCache) Len() int {
	return c.blobs.Len()
}
