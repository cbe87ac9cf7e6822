package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dhowden/tag"
	taglib "github.com/wtolson/go-taglib"

	"github.com/ironsmile/aoede/src/helpers"
)

// ParseFile reads the metadata tags of the media file at path and converts
// them into a song descriptor.
//
// Parsing is done with the pure Go dhowden/tag reader first since it gives
// access to the raw tag fields from which the MusicBrainz IDs are extracted.
// Computing the media duration is beyond a tag reader though, for that the
// file is passed through TagLib as well. Files dhowden/tag cannot handle at
// all fall back to TagLib completely, it knows more formats but its
// descriptors never carry MusicBrainz IDs.
func ParseFile(path string) (Song, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Song{}, fmt.Errorf("opening media file failed: %w", err)
	}
	defer fh.Close()

	md, err := tag.ReadFrom(fh)
	if err != nil {
		tlFile, tlErr := taglib.Read(path)
		if tlErr != nil {
			return Song{}, fmt.Errorf(
				"no tag reader could parse `%s`: %s (taglib: %w)",
				path, err, tlErr,
			)
		}
		defer tlFile.Close()

		return songFromTagLib(path, tlFile), nil
	}

	song := songFromMetadata(path, md)
	song.Duration = mediaDuration(path)
	return song, nil
}

// mediaDuration computes the duration of a media file with TagLib. Returns
// zero for files TagLib cannot parse.
func mediaDuration(path string) time.Duration {
	tlFile, err := taglib.Read(path)
	if err != nil {
		return 0
	}
	defer tlFile.Close()

	return tlFile.Length()
}

// songFromMetadata builds the song descriptor from tags parsed with the
// dhowden/tag reader.
func songFromMetadata(path string, md tag.Metadata) Song {
	ids := mbidsFromRaw(md.Raw())

	artists := artistDescriptors(splitNames(md.Artist()), ids.artists)
	albumArtists := artistDescriptors(splitNames(md.AlbumArtist()), ids.albumArtists)
	if len(albumArtists) < 1 {
		albumArtists = artists
	}

	trackNumber, _ := md.Track()
	if trackNumber == 0 {
		trackNumber = int(helpers.GuessTrackNumber(path))
	}

	return Song{
		Path:        path,
		Title:       nameOrUnknown(md.Title()),
		MBID:        ids.song,
		TrackNumber: trackNumber,
		Year:        md.Year(),
		Format:      formatFromPath(path),
		Album: Album{
			Name:    nameOrUnknown(md.Album()),
			MBID:    ids.album,
			Artists: albumArtists,
		},
		Artists: artists,
		Genres:  genreDescriptors(splitNames(md.Genre())),
	}
}

// songFromTagLib builds the song descriptor from tags parsed with TagLib.
// TagLib does not expose the raw tag fields so descriptors from this reader
// never carry MusicBrainz IDs. It does not know about album artists either,
// the song artists are used in their place.
func songFromTagLib(path string, file *taglib.File) Song {
	artists := artistDescriptors(splitNames(file.Artist()), "")

	trackNumber := file.Track()
	if trackNumber == 0 {
		trackNumber = int(helpers.GuessTrackNumber(path))
	}

	return Song{
		Path:        path,
		Title:       nameOrUnknown(file.Title()),
		TrackNumber: trackNumber,
		Year:        file.Year(),
		Duration:    file.Length(),
		Format:      formatFromPath(path),
		Album: Album{
			Name:    nameOrUnknown(file.Album()),
			Artists: artists,
		},
		Artists: artists,
		Genres:  genreDescriptors(splitNames(file.Genre())),
	}
}

// nameOrUnknown trims value and substitutes the UnknownLabel when nothing
// is left.
func nameOrUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return UnknownLabel
	}
	return value
}

// splitNames splits a multi-valued tag field on ";" into its distinct parts.
func splitNames(value string) []string {
	var names []string

	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !slices.Contains(names, part) {
			names = append(names, part)
		}
	}

	return names
}

// artistDescriptors pairs artist names with their MusicBrainz IDs. The mbids
// value is a possibly multi-valued tag field. IDs are assigned only when their
// count matches the names exactly, an ID list which cannot be paired reliably
// is not used at all.
func artistDescriptors(names []string, mbids string) []Artist {
	if len(names) < 1 {
		return []Artist{{Name: UnknownLabel}}
	}

	ids := splitNames(mbids)

	artists := make([]Artist, 0, len(names))
	for i, name := range names {
		artist := Artist{Name: name}
		if len(ids) == len(names) {
			artist.MBID = ids[i]
		}
		artists = append(artists, artist)
	}

	return artists
}

// genreDescriptors converts genre names into descriptors. In contrast to
// artists there is no "Unknown" genre, a song without genre tags simply has
// none.
func genreDescriptors(names []string) []Genre {
	genres := make([]Genre, 0, len(names))
	for _, name := range names {
		genres = append(genres, Genre{Name: name})
	}
	return genres
}

// mbids holds the MusicBrainz IDs found among the raw tag fields of a file.
// The artists and albumArtists values are the raw possibly multi-valued
// fields, pairing them with names is artistDescriptors' job.
type mbids struct {
	song         string
	album        string
	artists      string
	albumArtists string
}

// mbidsFromRaw extracts the MusicBrainz IDs from the raw tag fields. Field
// names are normalized before matching so that the Vorbis, APE and ID3v2
// spellings of the same field are all recognized.
func mbidsFromRaw(raw map[string]interface{}) mbids {
	var found mbids

	for key, value := range raw {
		var name, text string

		switch val := value.(type) {
		case string:
			name, text = key, val
		case *tag.Comm:
			// ID3v2 user defined text frames carry the actual field name in
			// their description.
			name, text = key, val.Text
			if val.Description != "" {
				name = val.Description
			}
		case *tag.UFID:
			name, text = val.Provider, string(val.Identifier)
		default:
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		// Raw keys come in many spellings. Vorbis files have fields such as
		// MUSICBRAINZ_ALBUMID while ID3v2 files bury the same name in the
		// description of a TXXX frame whose raw key may be anything from
		// "TXXX" to "TXXX:MusicBrainz Album Id". Normalizing and matching on
		// substrings covers all of them.
		field := normalizeRawKey(name)
		switch {
		case strings.Contains(field, "musicbrainzalbumartistid"):
			found.albumArtists = text
		case strings.Contains(field, "musicbrainzalbumid"):
			found.album = text
		case strings.Contains(field, "musicbrainzartistid"):
			found.artists = text
		case strings.Contains(field, "musicbrainztrackid"),
			strings.Contains(field, "musicbrainzreleasetrackid"),
			strings.Contains(field, "httpmusicbrainzorg"):
			if found.song == "" {
				found.song = text
			}
		}
	}

	return found
}

// normalizeRawKey strips a raw tag field name down to its lower case
// alphanumeric characters.
func normalizeRawKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// formatFromPath returns the media format of a file judging by its file name.
func formatFromPath(path string) string {
	format := strings.TrimLeft(filepath.Ext(path), ".")
	if format == "" {
		format = "mp3"
	}
	return strings.ToLower(format)
}
