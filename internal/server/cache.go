package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// renderCache keeps recently rendered artifacts keyed by the content hash of
// (kind, format, source document). Rendering is deterministic so a hit is always valid.
type renderCache struct {
	entries *lru.Cache[string, *rendering.Artifact]
	metrics *observability.Metrics
}

func newRenderCache(size int, m *observability.Metrics) (*renderCache, error) {
	entries, err := lru.New[string, *rendering.Artifact](size)
	if err != nil {
		return nil, err
	}
	return &renderCache{entries: entries, metrics: m}, nil
}

// renderKey hashes the document as the client sent it. Parsing assigns fresh IDs to
// entries that have none, so the parsed document cannot serve as the key.
func renderKey(source []byte, format types.LayoutFormat, kind rendering.Kind) string {
	var compact bytes.Buffer
	if err := json.Compact(&compact, source); err == nil {
		source = compact.Bytes()
	}
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// getOrRender returns the cached artifact for key or calls render and stores its result.
// Failed renders are not cached.
func (c *renderCache) getOrRender(key string, render func() (*rendering.Artifact, error)) (*rendering.Artifact, bool, error) {
	if c == nil {
		a, err := render()
		return a, false, err
	}
	if a, ok := c.entries.Get(key); ok {
		c.metrics.CacheHit()
		return a, true, nil
	}
	c.metrics.CacheMiss()

	a, err := render()
	if err != nil {
		return nil, false, err
	}
	c.entries.Add(key, a)
	return a, false, nil
}
