package graph

import (
	"slices"

	"github.com/ironsmile/aoede/src/tags"
)

// store is the identity-keyed index of all album, artist and genre vertices
// owned by a builder. Descriptors with equal keys collapse to one vertex at
// insertion time, before any explicit duplicate resolution takes place.
//
// Songs are not part of the store. They are keyed by their file path and are
// never merged, the builder tracks them on its own.
type store struct {
	albums  map[string]*AlbumVertex
	artists map[string]*ArtistVertex
	genres  map[string]*GenreVertex

	// The *Order slices keep the vertices of every kind in insertion order.
	// All iteration during resolution goes through them so that the outcome
	// does not depend on map iteration order.
	albumOrder  []*AlbumVertex
	artistOrder []*ArtistVertex
	genreOrder  []*GenreVertex
}

func newStore() *store {
	return &store{
		albums:  make(map[string]*AlbumVertex),
		artists: make(map[string]*ArtistVertex),
		genres:  make(map[string]*GenreVertex),
	}
}

// getOrCreateAlbum returns the vertex of the album descriptor with this exact
// key, creating it first when there is none. The second return value tells
// whether the vertex was just created.
func (st *store) getOrCreateAlbum(album tags.Album) (*AlbumVertex, bool) {
	key := album.Key()
	if found, ok := st.albums[key]; ok {
		return found, false
	}

	created := &AlbumVertex{album: album}
	st.albums[key] = created
	st.albumOrder = append(st.albumOrder, created)
	return created, true
}

// getOrCreateArtist is getOrCreateAlbum for artist descriptors.
func (st *store) getOrCreateArtist(artist tags.Artist) (*ArtistVertex, bool) {
	key := artist.Key()
	if found, ok := st.artists[key]; ok {
		return found, false
	}

	created := &ArtistVertex{artist: artist}
	st.artists[key] = created
	st.artistOrder = append(st.artistOrder, created)
	return created, true
}

// getOrCreateGenre is getOrCreateAlbum for genre descriptors.
func (st *store) getOrCreateGenre(genre tags.Genre) (*GenreVertex, bool) {
	key := genre.Key()
	if found, ok := st.genres[key]; ok {
		return found, false
	}

	created := &GenreVertex{genre: genre}
	st.genres[key] = created
	st.genreOrder = append(st.genreOrder, created)
	return created, true
}

// removeAlbum drops a vertex from the store index. The vertex descriptor is
// immutable so it still derives the key the vertex was registered under.
func (st *store) removeAlbum(album *AlbumVertex) {
	delete(st.albums, album.album.Key())
	if i := slices.Index(st.albumOrder, album); i >= 0 {
		st.albumOrder = slices.Delete(st.albumOrder, i, i+1)
	}
}

// removeArtist drops a vertex from the store index.
func (st *store) removeArtist(artist *ArtistVertex) {
	delete(st.artists, artist.artist.Key())
	if i := slices.Index(st.artistOrder, artist); i >= 0 {
		st.artistOrder = slices.Delete(st.artistOrder, i, i+1)
	}
}

// removeGenre drops a vertex from the store index.
func (st *store) removeGenre(genre *GenreVertex) {
	delete(st.genres, genre.genre.Key())
	if i := slices.Index(st.genreOrder, genre); i >= 0 {
		st.genreOrder = slices.Delete(st.genreOrder, i, i+1)
	}
}
