/*
Package registry implements the face cache of a rasterizer.

A Registry owns the faces loaded by a rasterizer and hands out FontKeys for
them. It maps font descriptions to keys and keys to faces. Both mappings are
always updated together: every key reachable from a description refers to a
stored face. Faces are never evicted.

Registries are not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package registry

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont"
)

// tracer writes to trace with key 'termfont'
func tracer() tracing.Trace {
	return tracing.Select("termfont")
}

// Registry caches faces of type F, keyed by font description and by FontKey.
type Registry[F any] struct {
	faces map[termfont.FontKey]F
	keys  map[termfont.FontDesc]termfont.FontKey
	descs map[termfont.FontKey]termfont.FontDesc
}

// New creates an empty registry.
func New[F any]() *Registry[F] {
	return &Registry[F]{
		faces: make(map[termfont.FontKey]F),
		keys:  make(map[termfont.FontDesc]termfont.FontKey),
		descs: make(map[termfont.FontKey]termfont.FontDesc),
	}
}

// LookupByDescriptor returns the key of a face previously inserted for desc.
// A nil style of desc is treated as the regular Description.
func (reg *Registry[F]) LookupByDescriptor(desc termfont.FontDesc) (termfont.FontKey, bool) {
	key, ok := reg.keys[desc.Normalized()]
	return key, ok
}

// Insert stores face for desc under a freshly minted key and returns the key.
// If desc has been inserted before, the description is re-bound to the new
// key; the old face remains reachable by its key.
func (reg *Registry[F]) Insert(desc termfont.FontDesc, face F) termfont.FontKey {
	desc = desc.Normalized()
	key := termfont.NextFontKey()
	reg.faces[key] = face
	reg.keys[desc] = key
	reg.descs[key] = desc
	tracer().Debugf("registry: %s bound to %s", key, desc)
	return key
}

// Face returns the face stored under key.
func (reg *Registry[F]) Face(key termfont.FontKey) (F, bool) {
	face, ok := reg.faces[key]
	return face, ok
}

// Desc returns the description a key has been inserted for.
func (reg *Registry[F]) Desc(key termfont.FontKey) (termfont.FontDesc, bool) {
	desc, ok := reg.descs[key]
	return desc, ok
}

// Len returns the number of faces in the registry.
func (reg *Registry[F]) Len() int {
	return len(reg.faces)
}

// Keys returns the keys of all faces, in no particular order.
func (reg *Registry[F]) Keys() []termfont.FontKey {
	keys := make([]termfont.FontKey, 0, len(reg.faces))
	for key := range reg.faces {
		keys = append(keys, key)
	}
	return keys
}
