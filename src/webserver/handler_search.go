package webserver

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// searchHandler is responsible for search requests. It matches the query
// against song titles and album, artist and genre names in the catalog.
type searchHandler struct {
	catalogs CatalogSource
}

// NewSearchHandler returns a new handler for processing search queries. They
// will be run against the current catalog.
func NewSearchHandler(catalogs CatalogSource) http.Handler {
	return &searchHandler{
		catalogs: catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (h *searchHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	current := h.catalogs.Catalog()
	if current == nil {
		webutils.JSONError(writer, noCatalogMessage, http.StatusServiceUnavailable)
		return
	}

	// The router is configured to use the encoded path so the query
	// may arrive percent encoded.
	query := mux.Vars(req)["searchQuery"]
	if unescaped, err := url.PathUnescape(query); err == nil {
		query = unescaped
	}
	if query == "" {
		query = req.URL.Query().Get("q")
	}

	found := current.Search(query)

	resp := searchResponse{
		Songs:   []apiSong{},
		Albums:  []apiAlbum{},
		Artists: []apiArtist{},
		Genres:  []apiGenre{},
	}
	for _, song := range found.Songs {
		resp.Songs = append(resp.Songs, toAPISong(song))
	}
	for _, album := range found.Albums {
		resp.Albums = append(resp.Albums, toAPIAlbum(album))
	}
	for _, artist := range found.Artists {
		resp.Artists = append(resp.Artists, toAPIArtist(artist))
	}
	for _, genre := range found.Genres {
		resp.Genres = append(resp.Genres, toAPIGenre(genre))
	}

	writer.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(writer)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			writer,
			"Encoding search response failed: "+err.Error(),
			http.StatusInternalServerError,
		)
	}
}

type searchResponse struct {
	Songs   []apiSong   `json:"songs"`
	Albums  []apiAlbum  `json:"albums"`
	Artists []apiArtist `json:"artists"`
	Genres  []apiGenre  `json:"genres"`
}
