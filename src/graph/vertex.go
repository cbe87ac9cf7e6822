package graph

import (
	"slices"

	"github.com/ironsmile/aoede/src/tags"
)

// SongVertex is the graph node for a single media file. Songs are never
// merged with one another, the file path is their unique identity.
type SongVertex struct {
	song tags.Song

	album   *AlbumVertex
	artists []*ArtistVertex
	genres  []*GenreVertex
}

// Descriptor returns the tag descriptor this song was created from.
func (v *SongVertex) Descriptor() tags.Song {
	return v.song
}

// Album returns the album vertex of this song. A song always has exactly
// one album.
func (v *SongVertex) Album() *AlbumVertex {
	return v.album
}

// Artists returns the artists performing this song.
func (v *SongVertex) Artists() []*ArtistVertex {
	return slices.Clone(v.artists)
}

// Genres returns the genres of this song. May be empty.
func (v *SongVertex) Genres() []*GenreVertex {
	return slices.Clone(v.genres)
}

// AlbumVertex is the graph node for one album.
type AlbumVertex struct {
	album tags.Album

	songs   []*SongVertex
	artists []*ArtistVertex
}

// Descriptor returns the tag descriptor this album was created from. After
// resolution it is the descriptor of the canonical vertex of the merged
// cluster.
func (v *AlbumVertex) Descriptor() tags.Album {
	return v.album
}

// Songs returns the songs which are part of this album.
func (v *AlbumVertex) Songs() []*SongVertex {
	return slices.Clone(v.songs)
}

// Artists returns the artists of the album. Those may differ from the
// artists of any particular song in it.
func (v *AlbumVertex) Artists() []*ArtistVertex {
	return slices.Clone(v.artists)
}

// ArtistVertex is the graph node for one artist.
type ArtistVertex struct {
	artist tags.Artist

	songs  []*SongVertex
	albums []*AlbumVertex
	genres []*GenreVertex
}

// Descriptor returns the tag descriptor this artist was created from.
func (v *ArtistVertex) Descriptor() tags.Artist {
	return v.artist
}

// Songs returns the songs performed by this artist.
func (v *ArtistVertex) Songs() []*SongVertex {
	return slices.Clone(v.songs)
}

// Albums returns the albums this artist is credited on as an album artist.
func (v *ArtistVertex) Albums() []*AlbumVertex {
	return slices.Clone(v.albums)
}

// Genres returns the genres associated with this artist. Artists inherit
// genres from their songs.
func (v *ArtistVertex) Genres() []*GenreVertex {
	return slices.Clone(v.genres)
}

// GenreVertex is the graph node for one genre.
type GenreVertex struct {
	genre tags.Genre

	songs   []*SongVertex
	artists []*ArtistVertex
}

// Descriptor returns the tag descriptor this genre was created from.
func (v *GenreVertex) Descriptor() tags.Genre {
	return v.genre
}

// Songs returns the songs of this genre.
func (v *GenreVertex) Songs() []*SongVertex {
	return slices.Clone(v.songs)
}

// Artists returns the artists associated with this genre.
func (v *GenreVertex) Artists() []*ArtistVertex {
	return slices.Clone(v.artists)
}

// The link functions below wire one edge in both directions. Adjacency
// lists are sets, wiring an edge which is already present changes nothing.

func linkSongAlbum(song *SongVertex, album *AlbumVertex) {
	song.album = album
	if !slices.Contains(album.songs, song) {
		album.songs = append(album.songs, song)
	}
}

func linkSongArtist(song *SongVertex, artist *ArtistVertex) {
	if !slices.Contains(song.artists, artist) {
		song.artists = append(song.artists, artist)
	}
	if !slices.Contains(artist.songs, song) {
		artist.songs = append(artist.songs, song)
	}
}

func linkSongGenre(song *SongVertex, genre *GenreVertex) {
	if !slices.Contains(song.genres, genre) {
		song.genres = append(song.genres, genre)
	}
	if !slices.Contains(genre.songs, song) {
		genre.songs = append(genre.songs, song)
	}
}

func linkAlbumArtist(album *AlbumVertex, artist *ArtistVertex) {
	if !slices.Contains(album.artists, artist) {
		album.artists = append(album.artists, artist)
	}
	if !slices.Contains(artist.albums, album) {
		artist.albums = append(artist.albums, album)
	}
}

func linkArtistGenre(artist *ArtistVertex, genre *GenreVertex) {
	if !slices.Contains(artist.genres, genre) {
		artist.genres = append(artist.genres, genre)
	}
	if !slices.Contains(genre.artists, artist) {
		genre.artists = append(genre.artists, artist)
	}
}
