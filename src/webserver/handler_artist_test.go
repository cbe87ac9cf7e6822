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

// TestSingleArtist checks the response for a particular artist. It must
// include the artist description along with all of its albums and genres.
func TestSingleArtist(t *testing.T) {
	catalogs := &webserverfakes.FakeCatalogSource{}
	catalogs.CatalogReturns(testCatalog())

	handler := routeArtistHandler(webserver.NewSingleArtistHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/artists/1", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusOK, result.StatusCode, "unexpected HTTP response")
	assertJSONContentType(t, result)

	var artist apiArtistInfoResponse
	dec := json.NewDecoder(result.Body)
	if err := dec.Decode(&artist); err != nil {
		t.Logf("HTTP response body:\n---\n%s\n---\n", resp.Body)
		t.Fatalf("cannot parse response JSON: %s", err)
	}

	assert.Equal(t, 1, artist.ID, "artist ID")
	assert.Equal(t, "Beatles", artist.Name, "artist name")
	assert.Equal(t, 1, artist.AlbumsCount, "albums count")
	assert.Equal(t, 2, artist.SongsCount, "songs count")

	assert.Equal(t, 1, len(artist.Albums), "wrong number of albums")
	album := artist.Albums[0]
	assert.Equal(t, 1, album.ID, "album ID")
	assert.Equal(t, "Abbey Road", album.Name, "album name")
	assert.Equal(t, "Beatles", album.Artist, "album artist")
	assert.Equal(t, 2, album.SongsCount, "album songs count")
	assert.Equal(t, int64(441_000), album.Duration, "album duration")

	assert.Equal(t, 1, len(artist.Genres), "wrong number of genres")
	assert.Equal(t, "Rock", artist.Genres[0], "artist genre")
}

// TestSingleArtistErrors checks the error responses for a single artist.
func TestSingleArtistErrors(t *testing.T) {
	tests := []struct {
		desc         string
		url          string
		noCatalog    bool
		expectedCode int
	}{
		{
			desc:         "before the first scan",
			url:          "/v1/artists/1",
			noCatalog:    true,
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			desc:         "malformed artist ID",
			url:          "/v1/artists/not-an-int",
			expectedCode: http.StatusNotFound,
		},
		{
			desc:         "artist which does not exist",
			url:          "/v1/artists/42",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			catalogs := &webserverfakes.FakeCatalogSource{}
			if !test.noCatalog {
				catalogs.CatalogReturns(testCatalog())
			}

			handler := routeArtistHandler(webserver.NewSingleArtistHandler(catalogs))

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

// routeArtistHandler wraps a handler the same way the web server will do when
// constructing the main application router. This is needed for tests so that
// the Gorilla mux variables will be parsed.
func routeArtistHandler(h http.Handler) http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	router.UseEncodedPath()
	router.Handle(webserver.APIv1EndpointArtist, h).Methods(
		webserver.APIv1Methods[webserver.APIv1EndpointArtist]...,
	)

	return router
}

type apiArtistInfoResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"artist"`
	AlbumsCount int    `json:"albums_count"`
	SongsCount  int    `json:"songs_count"`

	Albums []apiAlbumJSON `json:"albums"`
	Genres []string       `json:"genres"`
}
