// Package graph builds the entity graph of a music library out of the tag
// descriptors of its media files. A Builder ingests one song descriptor at a
// time and wires song, album, artist and genre vertices with bidirectional
// edges. Finalizing the builder runs the duplicate resolution which merges
// same-entity vertices the descriptors alone could not identify, for example
// two spellings of the same artist name. The result is a read-only Graph
// which the catalog package projects into the public library entities.
//
// The whole graph lives in memory and is rebuilt on every scan, nothing in
// this package is persisted.
package graph

import "slices"

// Graph is the finalized, fully resolved entity graph of one library scan.
// It is immutable. The vertex collections and all vertex adjacency may be
// read from any number of goroutines concurrently.
type Graph struct {
	songs   []*SongVertex
	albums  []*AlbumVertex
	artists []*ArtistVertex
	genres  []*GenreVertex
}

// Songs returns all song vertices in the graph.
func (g *Graph) Songs() []*SongVertex {
	return slices.Clone(g.songs)
}

// Albums returns all album vertices left after duplicate resolution.
func (g *Graph) Albums() []*AlbumVertex {
	return slices.Clone(g.albums)
}

// Artists returns all artist vertices left after duplicate resolution.
func (g *Graph) Artists() []*ArtistVertex {
	return slices.Clone(g.artists)
}

// Genres returns all genre vertices left after duplicate resolution.
func (g *Graph) Genres() []*GenreVertex {
	return slices.Clone(g.genres)
}
