package catalog

import (
	"sort"
	"time"

	"github.com/ironsmile/aoede/src/graph"
)

// Song is the public entity for a single media file. It holds nothing but
// its catalog ID and a reference into the graph, all other accessors read
// the vertex directly.
type Song struct {
	id      int64
	catalog *Catalog
	vertex  *graph.SongVertex
}

// ID returns the catalog ID of the song.
func (s *Song) ID() int64 {
	return s.id
}

// Path returns the media file path which uniquely identifies the song.
func (s *Song) Path() string {
	return s.vertex.Descriptor().Path
}

// Title returns the display title of the song.
func (s *Song) Title() string {
	return s.vertex.Descriptor().Title
}

// MBID returns the MusicBrainz recording ID of the song or an empty string.
func (s *Song) MBID() string {
	return s.vertex.Descriptor().MBID
}

// TrackNumber returns the position of the song in its album, zero when
// unknown.
func (s *Song) TrackNumber() int {
	return s.vertex.Descriptor().TrackNumber
}

// Year returns the release year of the song, zero when unknown.
func (s *Song) Year() int {
	return s.vertex.Descriptor().Year
}

// Duration returns the media duration, zero when the tag reader could not
// determine it.
func (s *Song) Duration() time.Duration {
	return s.vertex.Descriptor().Duration
}

// Format returns the media format of the file, e.g. "mp3".
func (s *Song) Format() string {
	return s.vertex.Descriptor().Format
}

// Album returns the album the song belongs to.
func (s *Song) Album() *Album {
	return s.catalog.albumTable[s.vertex.Album()]
}

// Artists returns the artists performing the song.
func (s *Song) Artists() []*Artist {
	vertices := s.vertex.Artists()
	artists := make([]*Artist, 0, len(vertices))
	for _, vertex := range vertices {
		artists = append(artists, s.catalog.artistTable[vertex])
	}
	return artists
}

// Genres returns the genres of the song.
func (s *Song) Genres() []*Genre {
	vertices := s.vertex.Genres()
	genres := make([]*Genre, 0, len(vertices))
	for _, vertex := range vertices {
		genres = append(genres, s.catalog.genreTable[vertex])
	}
	return genres
}

// Album is the public entity for one resolved album.
type Album struct {
	id      int64
	catalog *Catalog
	vertex  *graph.AlbumVertex
}

// ID returns the catalog ID of the album.
func (al *Album) ID() int64 {
	return al.id
}

// Name returns the display name of the album.
func (al *Album) Name() string {
	return al.vertex.Descriptor().Name
}

// MBID returns the MusicBrainz release ID of the album or an empty string.
func (al *Album) MBID() string {
	return al.vertex.Descriptor().MBID
}

// Songs returns the songs of the album in track order. Songs without a
// track number sort before the rest and fall back to their titles. The graph
// stores neighbors in scan order which is no order at all for an album.
func (al *Album) Songs() []*Song {
	vertices := al.vertex.Songs()
	songs := make([]*Song, 0, len(vertices))
	for _, vertex := range vertices {
		songs = append(songs, al.catalog.songTable[vertex])
	}
	sort.SliceStable(songs, func(i, j int) bool {
		if songs[i].TrackNumber() != songs[j].TrackNumber() {
			return songs[i].TrackNumber() < songs[j].TrackNumber()
		}
		return lessNames(songs[i].Title(), songs[j].Title())
	})
	return songs
}

// Artists returns the album artists.
func (al *Album) Artists() []*Artist {
	vertices := al.vertex.Artists()
	artists := make([]*Artist, 0, len(vertices))
	for _, vertex := range vertices {
		artists = append(artists, al.catalog.artistTable[vertex])
	}
	return artists
}

// Artist is the public entity for one resolved artist.
type Artist struct {
	id      int64
	catalog *Catalog
	vertex  *graph.ArtistVertex
}

// ID returns the catalog ID of the artist.
func (ar *Artist) ID() int64 {
	return ar.id
}

// Name returns the display name of the artist.
func (ar *Artist) Name() string {
	return ar.vertex.Descriptor().Name
}

// MBID returns the MusicBrainz artist ID or an empty string.
func (ar *Artist) MBID() string {
	return ar.vertex.Descriptor().MBID
}

// Songs returns the songs performed by the artist.
func (ar *Artist) Songs() []*Song {
	vertices := ar.vertex.Songs()
	songs := make([]*Song, 0, len(vertices))
	for _, vertex := range vertices {
		songs = append(songs, ar.catalog.songTable[vertex])
	}
	return songs
}

// Albums returns the albums the artist is credited on, ordered by name.
func (ar *Artist) Albums() []*Album {
	vertices := ar.vertex.Albums()
	albums := make([]*Album, 0, len(vertices))
	for _, vertex := range vertices {
		albums = append(albums, ar.catalog.albumTable[vertex])
	}
	sort.SliceStable(albums, func(i, j int) bool {
		return lessNames(albums[i].Name(), albums[j].Name())
	})
	return albums
}

// Genres returns the genres associated with the artist through their songs,
// ordered by name.
func (ar *Artist) Genres() []*Genre {
	vertices := ar.vertex.Genres()
	genres := make([]*Genre, 0, len(vertices))
	for _, vertex := range vertices {
		genres = append(genres, ar.catalog.genreTable[vertex])
	}
	sort.SliceStable(genres, func(i, j int) bool {
		return lessNames(genres[i].Name(), genres[j].Name())
	})
	return genres
}

// Genre is the public entity for one resolved genre.
type Genre struct {
	id      int64
	catalog *Catalog
	vertex  *graph.GenreVertex
}

// ID returns the catalog ID of the genre.
func (g *Genre) ID() int64 {
	return g.id
}

// Name returns the display name of the genre.
func (g *Genre) Name() string {
	return g.vertex.Descriptor().Name
}

// Songs returns the songs of the genre.
func (g *Genre) Songs() []*Song {
	vertices := g.vertex.Songs()
	songs := make([]*Song, 0, len(vertices))
	for _, vertex := range vertices {
		songs = append(songs, g.catalog.songTable[vertex])
	}
	return songs
}

// Artists returns the artists associated with the genre.
func (g *Genre) Artists() []*Artist {
	vertices := g.vertex.Artists()
	artists := make([]*Artist, 0, len(vertices))
	for _, vertex := range vertices {
		artists = append(artists, g.catalog.artistTable[vertex])
	}
	return artists
}
