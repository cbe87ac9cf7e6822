package webserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/ironsmile/aoede/src/assert"
	"github.com/ironsmile/aoede/src/webserver"
	"github.com/ironsmile/aoede/src/webserver/webserverfakes"
)

// TestSearchWithPath checks that searching with the query in the request path
// matches songs, albums, artists and genres case insensitively.
func TestSearchWithPath(t *testing.T) {
	catalogs := &webserverfakes.FakeCatalogSource{}
	catalogs.CatalogReturns(testCatalog())

	handler := routeSearchHandler(webserver.NewSearchHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/search/paris", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusOK, result.StatusCode, "unexpected HTTP response")
	assertJSONContentType(t, result)

	var found apiSearchResponse
	dec := json.NewDecoder(result.Body)
	if err := dec.Decode(&found); err != nil {
		t.Logf("HTTP response body:\n---\n%s\n---\n", resp.Body)
		t.Fatalf("cannot parse response JSON: %s", err)
	}

	assert.Equal(t, 0, len(found.Songs), "no song titles match the query")
	assert.Equal(t, 1, len(found.Albums), "wrong number of matched albums")
	assert.Equal(t, "Paris Debut", found.Albums[0].Name, "matched album name")
	assert.Equal(t, 1, len(found.Artists), "wrong number of matched artists")
	assert.Equal(t, "Paris", found.Artists[0].Name, "matched artist name")
	assert.Equal(t, 0, len(found.Genres), "no genres match the query")
}

// TestSearchWithEncodedPath makes sure that percent encoded queries in the
// request path are decoded before the search runs.
func TestSearchWithEncodedPath(t *testing.T) {
	catalogs := &webserverfakes.FakeCatalogSource{}
	catalogs.CatalogReturns(testCatalog())

	handler := routeSearchHandler(webserver.NewSearchHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/search/come%20together", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusOK, result.StatusCode, "unexpected HTTP response")

	var found apiSearchResponse
	dec := json.NewDecoder(result.Body)
	if err := dec.Decode(&found); err != nil {
		t.Logf("HTTP response body:\n---\n%s\n---\n", resp.Body)
		t.Fatalf("cannot parse response JSON: %s", err)
	}

	assert.Equal(t, 1, len(found.Songs), "wrong number of matched songs")
	assert.Equal(t, "Come Together", found.Songs[0].Title, "matched song title")
}

// TestSearchWithQueryArgument checks that the search query may be passed as
// the `q` query argument as well.
func TestSearchWithQueryArgument(t *testing.T) {
	catalogs := &webserverfakes.FakeCatalogSource{}
	catalogs.CatalogReturns(testCatalog())

	handler := routeSearchHandler(webserver.NewSearchHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/search/?q=rock", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusOK, result.StatusCode, "unexpected HTTP response")

	var found apiSearchResponse
	dec := json.NewDecoder(result.Body)
	if err := dec.Decode(&found); err != nil {
		t.Logf("HTTP response body:\n---\n%s\n---\n", resp.Body)
		t.Fatalf("cannot parse response JSON: %s", err)
	}

	assert.Equal(t, 1, len(found.Genres), "wrong number of matched genres")
	assert.Equal(t, "Rock", found.Genres[0].Name, "matched genre name")
}

// TestSearchWithoutMatches makes sure that all result groups are present in
// the JSON response even when nothing matched.
func TestSearchWithoutMatches(t *testing.T) {
	catalogs := &webserverfakes.FakeCatalogSource{}
	catalogs.CatalogReturns(testCatalog())

	handler := routeSearchHandler(webserver.NewSearchHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/search/absolutely-nothing", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusOK, result.StatusCode, "unexpected HTTP response")

	body := resp.Body.String()
	for _, group := range []string{`"songs":[]`, `"albums":[]`, `"artists":[]`, `"genres":[]`} {
		if !strings.Contains(body, group) {
			t.Errorf("expected %s in the response body but it was:\n%s", group, body)
		}
	}
}

// TestSearchBeforeFirstScan makes sure the search endpoint responds with
// Service Unavailable while there is no catalog yet.
func TestSearchBeforeFirstScan(t *testing.T) {
	catalogs := &webserverfakes.FakeCatalogSource{}

	handler := routeSearchHandler(webserver.NewSearchHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/search/anything", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode,
		"unexpected HTTP response before the first scan")
	assertJSONContentType(t, result)
}

// routeSearchHandler wraps a handler the same way the web server will do when
// constructing the main application router. Both search endpoints are
// registered, with and without the query in the path.
func routeSearchHandler(h http.Handler) http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	router.UseEncodedPath()
	router.Handle(webserver.APIv1EndpointSearchWithPath, h).Methods(
		webserver.APIv1Methods[webserver.APIv1EndpointSearchWithPath]...,
	)
	router.Handle(webserver.APIv1EndpointSearch, h).Methods(
		webserver.APIv1Methods[webserver.APIv1EndpointSearch]...,
	)

	return router
}

type apiSearchResponse struct {
	Songs   []apiSongJSON   `json:"songs"`
	Albums  []apiAlbumJSON  `json:"albums"`
	Artists []apiArtistJSON `json:"artists"`
	Genres  []apiGenreJSON  `json:"genres"`
}
