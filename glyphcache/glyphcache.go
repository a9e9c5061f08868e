/*
Package glyphcache caches rasterized glyphs on top of a rasterizer.

Rasterizers render every glyph request anew. A Cache remembers the results,
keyed by termfont.GlyphKey, and evicts the least recently used glyphs once
its capacity is reached. Errors are passed through and never cached.

A Cache is not safe for concurrent use, just like the rasterizer below it.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphcache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont"
)

// tracer writes to trace with key 'termfont'
func tracer() tracing.Trace {
	return tracing.Select("termfont")
}

// GlyphRasterizer renders glyphs. *rasterizer.Rasterizer is a GlyphRasterizer.
type GlyphRasterizer interface {
	GetGlyph(termfont.GlyphKey) (termfont.RasterizedGlyph, error)
}

// DefaultCapacity is used for caches created with a capacity ≤ 0.
const DefaultCapacity = 1024

// Cache is an LRU cache of rasterized glyphs.
type Cache struct {
	r        GlyphRasterizer
	capacity int
	glyphs   *lru.Cache[termfont.GlyphKey, termfont.RasterizedGlyph]
	hits     uint64
	misses   uint64
}

// New creates a cache for glyphs of r, holding at most capacity glyphs.
func New(r GlyphRasterizer, capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	glyphs, err := lru.NewWithEvict(capacity, func(key termfont.GlyphKey, _ termfont.RasterizedGlyph) {
		tracer().Debugf("glyph cache: evicted %s", key)
	})
	if err != nil { // only for capacity ≤ 0
		panic(fmt.Sprintf("glyph cache: %v", err))
	}
	return &Cache{
		r:        r,
		capacity: capacity,
		glyphs:   glyphs,
	}
}

// Get returns the glyph for key, rasterizing it on a cache miss.
//
// Glyphs are shared between callers and must not be modified.
func (c *Cache) Get(key termfont.GlyphKey) (termfont.RasterizedGlyph, error) {
	if g, ok := c.glyphs.Get(key); ok {
		c.hits++
		return g, nil
	}
	c.misses++
	g, err := c.r.GetGlyph(key)
	if err != nil {
		return termfont.RasterizedGlyph{}, err
	}
	c.glyphs.Add(key, g)
	return g, nil
}

// Contains reports whether key is cached, without touching its recency.
func (c *Cache) Contains(key termfont.GlyphKey) bool {
	return c.glyphs.Contains(key)
}

// Len returns the number of cached glyphs.
func (c *Cache) Len() int {
	return c.glyphs.Len()
}

// Capacity returns the maximum number of cached glyphs.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns the number of cache hits and misses since creation or the
// last purge.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}

// Purge removes all glyphs and resets the statistics.
func (c *Cache) Purge() {
	tracer().Debugf("glyph cache: purging %d glyphs (%d hits, %d misses)", c.glyphs.Len(), c.hits, c.misses)
	c.glyphs.Purge()
	c.hits, c.misses = 0, 0
}
