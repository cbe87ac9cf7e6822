package graph

import (
	"log"
	"slices"

	"github.com/ironsmile/aoede/src/tags"
)

// Builder ingests song descriptors one at a time and incrementally wires
// them into the entity graph. It is driven by a single goroutine, its
// methods are not safe for concurrent use. Every library scan constructs a
// fresh builder, feeds it all parsed files and finalizes it with Build.
type Builder struct {
	store *store

	// songs indexes all song vertices by their file path. The first
	// descriptor for a path wins, repeated insertions are dropped.
	songs     map[string]*SongVertex
	songOrder []*SongVertex

	finalized bool
}

// NewBuilder returns an empty builder ready for Add calls.
func NewBuilder() *Builder {
	return &Builder{
		store: newStore(),
		songs: make(map[string]*SongVertex),
	}
}

// Add wires one song descriptor into the graph. It resolves or creates the
// vertices for the song's genres, artists and album, creates the song vertex
// and links it to all of them in both directions. Artists additionally
// inherit the genres of the song. When the album is seen for the first time
// its own album artists are resolved and linked to it as well.
//
// A descriptor whose file path is already in the graph is dropped, the
// earlier insertion wins.
func (b *Builder) Add(song tags.Song) {
	if b.finalized {
		panic("graph: Add called on an already finalized builder")
	}

	if _, found := b.songs[song.Path]; found {
		log.Printf("Skipping duplicate song descriptor for `%s`", song.Path)
		return
	}

	genres := make([]*GenreVertex, 0, len(song.Genres))
	for _, descriptor := range song.Genres {
		genre, _ := b.store.getOrCreateGenre(descriptor)
		if !slices.Contains(genres, genre) {
			genres = append(genres, genre)
		}
	}

	artists := make([]*ArtistVertex, 0, len(song.Artists))
	for _, descriptor := range song.Artists {
		artist, _ := b.store.getOrCreateArtist(descriptor)
		if !slices.Contains(artists, artist) {
			artists = append(artists, artist)
		}
	}

	album, created := b.store.getOrCreateAlbum(song.Album)
	if created {
		for _, descriptor := range song.Album.Artists {
			artist, _ := b.store.getOrCreateArtist(descriptor)
			linkAlbumArtist(album, artist)
		}
	}

	vertex := &SongVertex{song: song}
	linkSongAlbum(vertex, album)
	for _, artist := range artists {
		linkSongArtist(vertex, artist)
	}
	for _, genre := range genres {
		linkSongGenre(vertex, genre)
	}

	for _, artist := range artists {
		for _, genre := range genres {
			linkArtistGenre(artist, genre)
		}
	}

	b.songs[song.Path] = vertex
	b.songOrder = append(b.songOrder, vertex)
}

// Build finalizes the graph. It merges all vertices which the exact key
// matching of the store left distinct but which describe the same entity,
// collapses any parallel edges left behind by the merging and hands the
// vertex collections over to the returned graph value. The builder must not
// be used after Build returns.
func (b *Builder) Build() *Graph {
	if b.finalized {
		panic("graph: Build called more than once")
	}
	b.finalized = true

	b.resolveGenres()
	b.resolveArtists()
	b.resolveAlbums()
	b.dedupeEdges()

	return &Graph{
		songs:   b.songOrder,
		albums:  b.store.albumOrder,
		artists: b.store.artistOrder,
		genres:  b.store.genreOrder,
	}
}

// dedupeEdges collapses duplicated neighbors in the adjacency lists of all
// vertices. Merging two vertices may leave a neighbor with parallel edges to
// the merged one, this is the final cleanup pass behind it.
func (b *Builder) dedupeEdges() {
	for _, song := range b.songOrder {
		song.artists = dedupeNeighbors(song.artists)
		song.genres = dedupeNeighbors(song.genres)
	}
	for _, album := range b.store.albumOrder {
		album.songs = dedupeNeighbors(album.songs)
		album.artists = dedupeNeighbors(album.artists)
	}
	for _, artist := range b.store.artistOrder {
		artist.songs = dedupeNeighbors(artist.songs)
		artist.albums = dedupeNeighbors(artist.albums)
		artist.genres = dedupeNeighbors(artist.genres)
	}
	for _, genre := range b.store.genreOrder {
		genre.songs = dedupeNeighbors(genre.songs)
		genre.artists = dedupeNeighbors(genre.artists)
	}
}

// dedupeNeighbors removes repeated elements from an adjacency list in place,
// keeping the first occurrence of each.
func dedupeNeighbors[V comparable](neighbors []V) []V {
	seen := make(map[V]struct{}, len(neighbors))
	deduped := neighbors[:0]

	for _, neighbor := range neighbors {
		if _, found := seen[neighbor]; found {
			continue
		}
		seen[neighbor] = struct{}{}
		deduped = append(deduped, neighbor)
	}

	return deduped
}
