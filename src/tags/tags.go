// Package tags defines the descriptor values which the tag parser extracts
// from media files. Descriptors are immutable records. The graph builder uses
// their structural identity for first-pass entity resolution so two
// descriptors with the same fields always describe the same entity.
package tags

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnknownLabel is used in place of a missing artist, album or song title tag.
// As a consequence all files without an artist tag end up under one "Unknown"
// artist and all without an album tag in one "Unknown" album.
const UnknownLabel = "Unknown"

// Song is the descriptor for a single media file. Songs are identified by
// their file path alone. Two files with the same tags are still two songs.
type Song struct {
	// Path is the filesystem path of the media file. It is the unique
	// identity of the song in the library.
	Path string

	// Title is the display name of the song. Never empty, the parser
	// substitutes UnknownLabel for missing titles.
	Title string

	// MBID is the MusicBrainz recording ID when the file tags contain one.
	// Empty otherwise.
	MBID string

	TrackNumber int
	Year        int
	Duration    time.Duration

	// Format is the media format of the file, e.g. "mp3" or "flac". Derived
	// from the file name.
	Format string

	// Album is the descriptor of the album this song claims to be part of.
	Album Album

	// Artists are the artists performing this song. At least one, possibly
	// the UnknownLabel artist.
	Artists []Artist

	// Genres are the genres of this song. May be empty.
	Genres []Genre
}

// Album is the descriptor for an album as claimed by a single file's tags.
type Album struct {
	Name string

	// MBID is the MusicBrainz release ID or empty when the tags have none.
	MBID string

	// Artists are the album-level artists. They may differ from the artists
	// of any particular song in the album.
	Artists []Artist
}

// Key returns the structural identity of the album descriptor. Two album
// descriptors with equal fields have equal keys. The key is exact, matching
// is case sensitive at this level.
func (al Album) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q %q", al.Name, al.MBID)
	for _, ar := range al.Artists {
		b.WriteByte(' ')
		b.WriteString(ar.Key())
	}
	return b.String()
}

// WithoutMBID returns a copy of the descriptor with its external ID removed.
func (al Album) WithoutMBID() Album {
	al.MBID = ""
	return al
}

// Artist is the descriptor for a single artist.
type Artist struct {
	Name string

	// MBID is the MusicBrainz artist ID or empty when the tags have none.
	MBID string
}

// Key returns the structural identity of the artist descriptor.
func (ar Artist) Key() string {
	return fmt.Sprintf("%q %q", ar.Name, ar.MBID)
}

// WithoutMBID returns a copy of the descriptor with its external ID removed.
func (ar Artist) WithoutMBID() Artist {
	ar.MBID = ""
	return ar
}

// Genre is the descriptor for a single genre. Genres have no external ID
// concept, their name is all there is to them.
type Genre struct {
	Name string
}

// Key returns the structural identity of the genre descriptor.
func (g Genre) Key() string {
	return strconv.Quote(g.Name)
}
