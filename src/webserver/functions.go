package webserver

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/ironsmile/aoede/src/catalog"
)

// noCatalogMessage is the error message returned by the API endpoints which
// need a media catalog before the first scan has finished.
const noCatalogMessage = "the media library has not been scanned yet, try again later"

// HandlerFuncWithError is similar to http.HandlerFunc but returns an error when
// the handling of the request failed.
type HandlerFuncWithError func(http.ResponseWriter, *http.Request) error

// WithInternalError converts HandlerFuncWithError to http.HandlerFunc by making sure
// all errors returned are flushed to the writer and Internal Server Error HTTP status
// is sent.
func WithInternalError(fnc HandlerFuncWithError) http.HandlerFunc {
	return func(writer http.ResponseWriter, req *http.Request) {
		err := fnc(writer, req)
		if err != nil {
			writer.WriteHeader(http.StatusInternalServerError)
			if _, err := writer.Write([]byte(err.Error())); err != nil {
				log.Printf("error writing body in InternalErrorHandler: %s", err)
			}
		}
	}
}

// apiSong is the on-the-wire description of a single song.
type apiSong struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	ArtistID    int64  `json:"artist_id"`
	Album       string `json:"album"`
	AlbumID     int64  `json:"album_id"`
	TrackNumber int    `json:"track"`
	Format      string `json:"format"`
	Duration    int64  `json:"duration"` // Song duration in millisecs.
	Year        int    `json:"year,omitempty"`
	MBID        string `json:"mbid,omitempty"`
}

// apiAlbum is the on-the-wire description of a single album.
type apiAlbum struct {
	ID         int64  `json:"id"`
	Name       string `json:"album"`
	Artist     string `json:"artist"`
	SongsCount int    `json:"songs_count"`
	Duration   int64  `json:"duration"` // Album duration in millisecs.
	MBID       string `json:"mbid,omitempty"`
}

// apiArtist is the on-the-wire description of a single artist.
type apiArtist struct {
	ID          int64  `json:"id"`
	Name        string `json:"artist"`
	AlbumsCount int    `json:"albums_count"`
	SongsCount  int    `json:"songs_count"`
	MBID        string `json:"mbid,omitempty"`
}

// apiGenre is the on-the-wire description of a single genre.
type apiGenre struct {
	ID           int64  `json:"id"`
	Name         string `json:"genre"`
	SongsCount   int    `json:"songs_count"`
	ArtistsCount int    `json:"artists_count"`
}

// toAPISong converts a catalog song to its API form.
func toAPISong(song *catalog.Song) apiSong {
	var (
		artistNames []string
		artistID    int64
	)
	for i, artist := range song.Artists() {
		if i == 0 {
			artistID = artist.ID()
		}
		artistNames = append(artistNames, artist.Name())
	}

	var (
		albumName string
		albumID   int64
	)
	if album := song.Album(); album != nil {
		albumName = album.Name()
		albumID = album.ID()
	}

	return apiSong{
		ID:          song.ID(),
		Title:       song.Title(),
		Artist:      strings.Join(artistNames, ", "),
		ArtistID:    artistID,
		Album:       albumName,
		AlbumID:     albumID,
		TrackNumber: song.TrackNumber(),
		Format:      song.Format(),
		Duration:    song.Duration().Milliseconds(),
		Year:        song.Year(),
		MBID:        song.MBID(),
	}
}

// toAPIAlbum converts a catalog album to its API form.
func toAPIAlbum(album *catalog.Album) apiAlbum {
	var artistNames []string
	for _, artist := range album.Artists() {
		artistNames = append(artistNames, artist.Name())
	}

	var duration int64
	songs := album.Songs()
	for _, song := range songs {
		duration += song.Duration().Milliseconds()
	}

	return apiAlbum{
		ID:         album.ID(),
		Name:       album.Name(),
		Artist:     strings.Join(artistNames, ", "),
		SongsCount: len(songs),
		Duration:   duration,
		MBID:       album.MBID(),
	}
}

// toAPIArtist converts a catalog artist to its API form.
func toAPIArtist(artist *catalog.Artist) apiArtist {
	return apiArtist{
		ID:          artist.ID(),
		Name:        artist.Name(),
		AlbumsCount: len(artist.Albums()),
		SongsCount:  len(artist.Songs()),
		MBID:        artist.MBID(),
	}
}

// toAPIGenre converts a catalog genre to its API form.
func toAPIGenre(genre *catalog.Genre) apiGenre {
	return apiGenre{
		ID:           genre.ID(),
		Name:         genre.Name(),
		SongsCount:   len(genre.Songs()),
		ArtistsCount: len(genre.Artists()),
	}
}

// pageParams are the parsed pagination arguments of a listing request.
type pageParams struct {
	page    int
	perPage int
}

// parsePageParams reads the `page` and `per-page` query arguments of a listing
// request. When absent, the first page with the default size is returned.
func parsePageParams(req *http.Request) (pageParams, error) {
	params := pageParams{
		page:    1,
		perPage: 40,
	}

	pageStr := req.URL.Query().Get("page")
	perPageStr := req.URL.Query().Get("per-page")

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return params, fmt.Errorf(`wrong "page" parameter: %s`, err)
		}
		params.page = page
	}

	if perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil {
			return params, fmt.Errorf(`wrong "per-page" parameter: %s`, err)
		}
		params.perPage = perPage
	}

	if params.page < 1 || params.perPage < 1 {
		return params, fmt.Errorf(
			`"page" and "per-page" must be integers greater than zero`,
		)
	}

	return params, nil
}

// paginate returns the half-open range [from, to) of the list with `total`
// elements which corresponds to the requested page.
func (p pageParams) paginate(total int) (from, to int) {
	from = (p.page - 1) * p.perPage
	if from > total {
		from = total
	}

	to = from + p.perPage
	if to > total {
		to = total
	}

	return from, to
}

// pagesCount returns the number of pages needed to list `total` elements.
func (p pageParams) pagesCount(total int) int {
	return (total + p.perPage - 1) / p.perPage
}

// nextPageURI returns the URI for the page after the current one or the empty
// string if this is the last page.
func (p pageParams) nextPageURI(path string, total int) string {
	if p.page*p.perPage >= total {
		return ""
	}
	return fmt.Sprintf("%s?page=%d&per-page=%d", path, p.page+1, p.perPage)
}

// previousPageURI returns the URI for the page before the current one or the
// empty string if this is the first page.
func (p pageParams) previousPageURI(path string) string {
	if p.page-1 < 1 {
		return ""
	}
	return fmt.Sprintf("%s?page=%d&per-page=%d", path, p.page-1, p.perPage)
}
