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

// TestStats checks that the stats endpoint describes the current catalog.
func TestStats(t *testing.T) {
	current := testCatalog()

	catalogs := &webserverfakes.FakeCatalogSource{}
	catalogs.CatalogReturns(current)

	handler := routeStatsHandler(webserver.NewStatsHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusOK, result.StatusCode, "unexpected HTTP response")
	assertJSONContentType(t, result)

	var stats apiStatsResponse
	dec := json.NewDecoder(result.Body)
	if err := dec.Decode(&stats); err != nil {
		t.Logf("HTTP response body:\n---\n%s\n---\n", resp.Body)
		t.Fatalf("cannot parse response JSON: %s", err)
	}

	assert.Equal(t, current.ID(), stats.CatalogID, "catalog ID")
	assert.Equal(t, current.CreatedAt().Unix(), stats.CreatedAt, "catalog creation time")
	assert.Equal(t, 3, stats.SongsCount, "songs count")
	assert.Equal(t, 2, stats.AlbumsCount, "albums count")
	assert.Equal(t, 2, stats.ArtistsCount, "artists count")
	assert.Equal(t, 2, stats.GenresCount, "genres count")
}

// TestStatsBeforeFirstScan makes sure the stats endpoint responds with
// Service Unavailable while there is no catalog yet.
func TestStatsBeforeFirstScan(t *testing.T) {
	catalogs := &webserverfakes.FakeCatalogSource{}

	handler := routeStatsHandler(webserver.NewStatsHandler(catalogs))

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	result := resp.Result()
	assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode,
		"unexpected HTTP response before the first scan")
	assertJSONContentType(t, result)
}

// routeStatsHandler wraps a handler the same way the web server will do when
// constructing the main application router.
func routeStatsHandler(h http.Handler) http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	router.UseEncodedPath()
	router.Handle(webserver.APIv1EndpointStats, h).Methods(
		webserver.APIv1Methods[webserver.APIv1EndpointStats]...,
	)

	return router
}

type apiStatsResponse struct {
	CatalogID    string `json:"catalog_id"`
	CreatedAt    int64  `json:"created_at"`
	SongsCount   int    `json:"songs_count"`
	AlbumsCount  int    `json:"albums_count"`
	ArtistsCount int    `json:"artists_count"`
	GenresCount  int    `json:"genres_count"`
}
