package webserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/ironsmile/aoede/src/assert"
	"github.com/ironsmile/aoede/src/webserver"
	"github.com/ironsmile/aoede/src/webserver/webserverfakes"
)

// TestSingleAlbum checks the response for a particular album. It must include
// the album description along with all of its songs.
func TestSingleAlbum(t *testing.T) {
	catalogs := &webserverfakes.FakeCatalogSource{}
	catalogs.CatalogReturns(testCatalog())

	handler := routeAlbumHandler(webserver.NewSingleAlbumHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/albums/1", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusOK, result.StatusCode, "unexpected HTTP response")
	assertJSONContentType(t, result)

	var album apiAlbumInfoResponse
	dec := json.NewDecoder(result.Body)
	if err := dec.Decode(&album); err != nil {
		t.Logf("HTTP response body:\n---\n%s\n---\n", resp.Body)
		t.Fatalf("cannot parse response JSON: %s", err)
	}

	assert.Equal(t, 1, album.ID, "album ID")
	assert.Equal(t, "Abbey Road", album.Name, "album name")
	assert.Equal(t, "Beatles", album.Artist, "album artist")
	assert.Equal(t, 2, album.SongsCount, "album songs count")
	assert.Equal(t, int64(441_000), album.Duration, "album duration")

	assert.Equal(t, 2, len(album.Songs), "wrong number of songs")

	first := album.Songs[0]
	assert.Equal(t, 1, first.ID, "first song ID")
	assert.Equal(t, "Come Together", first.Title, "first song title")
	assert.Equal(t, "Beatles", first.Artist, "first song artist")
	assert.Equal(t, 1, first.ArtistID, "first song artist ID")
	assert.Equal(t, "Abbey Road", first.Album, "first song album")
	assert.Equal(t, 1, first.AlbumID, "first song album ID")
	assert.Equal(t, 1, first.TrackNumber, "first song track number")
	assert.Equal(t, "mp3", first.Format, "first song format")
	assert.Equal(t, int64(259_000), first.Duration, "first song duration")
	assert.Equal(t, 1969, first.Year, "first song year")

	second := album.Songs[1]
	assert.Equal(t, 3, second.ID, "second song ID")
	assert.Equal(t, "Something", second.Title, "second song title")
	assert.Equal(t, 2, second.TrackNumber, "second song track number")
}

// TestSingleAlbumErrors checks the error responses for a single album.
func TestSingleAlbumErrors(t *testing.T) {
	tests := []struct {
		desc         string
		url          string
		noCatalog    bool
		expectedCode int
	}{
		{
			desc:         "before the first scan",
			url:          "/v1/albums/1",
			noCatalog:    true,
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			desc:         "malformed album ID",
			url:          "/v1/albums/not-an-int",
			expectedCode: http.StatusNotFound,
		},
		{
			desc:         "album which does not exist",
			url:          "/v1/albums/42",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			catalogs := &webserverfakes.FakeCatalogSource{}
			if !test.noCatalog {
				catalogs.CatalogReturns(testCatalog())
			}

			handler := routeAlbumHandler(webserver.NewSingleAlbumHandler(catalogs))

			req := httptest.NewRequest(http.MethodGet, test.url, nil)
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)

			result := resp.Result()
			defer result.Body.Close()

			assert.Equal(t, test.expectedCode, result.StatusCode,
				"HTTP error response mismatch",
			)
			assertJSONContentType(t, result)
		})
	}
}

// routeAlbumHandler wraps a handler the same way the web server will do when
// constructing the main application router. This is needed for tests so that
// the Gorilla mux variables will be parsed.
func routeAlbumHandler(h http.Handler) http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	router.UseEncodedPath()
	router.Handle(webserver.APIv1EndpointAlbum, h).Methods(
		webserver.APIv1Methods[webserver.APIv1EndpointAlbum]...,
	)

	return router
}

type apiAlbumInfoResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"album"`
	Artist     string `json:"artist"`
	SongsCount int    `json:"songs_count"`
	Duration   int64  `json:"duration"`

	Songs []apiSongJSON `json:"songs"`
}
