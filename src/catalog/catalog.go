// Package catalog projects a finalized entity graph into the immutable,
// public-facing library entities served to API consumers. The projection is
// a single pass which wraps every graph vertex in a thin entity before any
// relationship accessor runs. Relationship accessors do not copy anything,
// they look the neighbor vertex up in the catalog's per-kind tables. This is
// what makes projecting a cyclic graph possible without recursive
// construction, every lookup target already exists by the time it is needed.
//
// A catalog never changes after New returns and may be read from any number
// of goroutines. Rescanning the library builds a whole new catalog which
// replaces the old one in the Holder.
package catalog

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pborman/uuid"

	"github.com/ironsmile/aoede/src/graph"
)

// Catalog is the read model of one library scan.
type Catalog struct {
	id        string
	createdAt time.Time

	songs   []*Song
	albums  []*Album
	artists []*Artist
	genres  []*Genre

	songsByPath map[string]*Song

	songsByID   map[int64]*Song
	albumsByID  map[int64]*Album
	artistsByID map[int64]*Artist
	genresByID  map[int64]*Genre

	songTable   map[*graph.SongVertex]*Song
	albumTable  map[*graph.AlbumVertex]*Album
	artistTable map[*graph.ArtistVertex]*Artist
	genreTable  map[*graph.GenreVertex]*Genre
}

// New projects the graph into a fresh catalog.
func New(g *graph.Graph) *Catalog {
	songs := g.Songs()
	albums := g.Albums()
	artists := g.Artists()
	genres := g.Genres()

	c := &Catalog{
		id:        uuid.New(),
		createdAt: time.Now(),

		songs:   make([]*Song, 0, len(songs)),
		albums:  make([]*Album, 0, len(albums)),
		artists: make([]*Artist, 0, len(artists)),
		genres:  make([]*Genre, 0, len(genres)),

		songsByPath: make(map[string]*Song, len(songs)),

		songsByID:   make(map[int64]*Song, len(songs)),
		albumsByID:  make(map[int64]*Album, len(albums)),
		artistsByID: make(map[int64]*Artist, len(artists)),
		genresByID:  make(map[int64]*Genre, len(genres)),

		songTable:   make(map[*graph.SongVertex]*Song, len(songs)),
		albumTable:  make(map[*graph.AlbumVertex]*Album, len(albums)),
		artistTable: make(map[*graph.ArtistVertex]*Artist, len(artists)),
		genreTable:  make(map[*graph.GenreVertex]*Genre, len(genres)),
	}

	// Populate the tables for all vertices first. Only after that is it
	// safe to follow any relationship between the entities.
	for _, vertex := range songs {
		song := &Song{catalog: c, vertex: vertex}
		c.songTable[vertex] = song
		c.songsByPath[vertex.Descriptor().Path] = song
		c.songs = append(c.songs, song)
	}
	for _, vertex := range albums {
		album := &Album{catalog: c, vertex: vertex}
		c.albumTable[vertex] = album
		c.albums = append(c.albums, album)
	}
	for _, vertex := range artists {
		artist := &Artist{catalog: c, vertex: vertex}
		c.artistTable[vertex] = artist
		c.artists = append(c.artists, artist)
	}
	for _, vertex := range genres {
		genre := &Genre{catalog: c, vertex: vertex}
		c.genreTable[vertex] = genre
		c.genres = append(c.genres, genre)
	}

	sort.SliceStable(c.songs, func(i, j int) bool {
		return lessNames(c.songs[i].Title(), c.songs[j].Title())
	})
	sort.SliceStable(c.albums, func(i, j int) bool {
		return lessNames(c.albums[i].Name(), c.albums[j].Name())
	})
	sort.SliceStable(c.artists, func(i, j int) bool {
		return lessNames(c.artists[i].Name(), c.artists[j].Name())
	})
	sort.SliceStable(c.genres, func(i, j int) bool {
		return lessNames(c.genres[i].Name(), c.genres[j].Name())
	})

	// IDs are assigned in listing order. They identify an entity within this
	// catalog build only, a rescan hands out fresh ones.
	for i, song := range c.songs {
		song.id = int64(i) + 1
		c.songsByID[song.id] = song
	}
	for i, album := range c.albums {
		album.id = int64(i) + 1
		c.albumsByID[album.id] = album
	}
	for i, artist := range c.artists {
		artist.id = int64(i) + 1
		c.artistsByID[artist.id] = artist
	}
	for i, genre := range c.genres {
		genre.id = int64(i) + 1
		c.genresByID[genre.id] = genre
	}

	return c
}

// lessNames orders display names case-insensitively with the original names
// as a tie breaker so that listings are stable.
func lessNames(first, second string) bool {
	lowFirst := strings.ToLower(first)
	lowSecond := strings.ToLower(second)
	if lowFirst != lowSecond {
		return lowFirst < lowSecond
	}
	return first < second
}

// ID returns the unique identifier of this particular catalog build. Every
// scan produces a catalog with a new ID, clients use it to notice that their
// cached listings went stale.
func (c *Catalog) ID() string {
	return c.id
}

// CreatedAt returns the moment this catalog was built.
func (c *Catalog) CreatedAt() time.Time {
	return c.createdAt
}

// Songs returns all songs ordered by title.
func (c *Catalog) Songs() []*Song {
	return slices.Clone(c.songs)
}

// Albums returns all albums ordered by name.
func (c *Catalog) Albums() []*Album {
	return slices.Clone(c.albums)
}

// Artists returns all artists ordered by name.
func (c *Catalog) Artists() []*Artist {
	return slices.Clone(c.artists)
}

// Genres returns all genres ordered by name.
func (c *Catalog) Genres() []*Genre {
	return slices.Clone(c.genres)
}

// SongByPath returns the song for a media file path.
func (c *Catalog) SongByPath(path string) (*Song, bool) {
	song, found := c.songsByPath[path]
	return song, found
}

// SongByID returns the song with this catalog ID.
func (c *Catalog) SongByID(id int64) (*Song, bool) {
	song, found := c.songsByID[id]
	return song, found
}

// AlbumByID returns the album with this catalog ID.
func (c *Catalog) AlbumByID(id int64) (*Album, bool) {
	album, found := c.albumsByID[id]
	return album, found
}

// ArtistByID returns the artist with this catalog ID.
func (c *Catalog) ArtistByID(id int64) (*Artist, bool) {
	artist, found := c.artistsByID[id]
	return artist, found
}

// GenreByID returns the genre with this catalog ID.
func (c *Catalog) GenreByID(id int64) (*Genre, bool) {
	genre, found := c.genresByID[id]
	return genre, found
}
