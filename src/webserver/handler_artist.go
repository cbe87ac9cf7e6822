package webserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// artistHandler shows a single artist along with its albums.
type artistHandler struct {
	catalogs CatalogSource
}

// NewSingleArtistHandler returns an http.Handler which shows information for
// a particular artist identified by its ID.
func NewSingleArtistHandler(catalogs CatalogSource) http.Handler {
	return &artistHandler{
		catalogs: catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (h *artistHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	current := h.catalogs.Catalog()
	if current == nil {
		webutils.JSONError(writer, noCatalogMessage, http.StatusServiceUnavailable)
		return
	}

	vars := mux.Vars(req)
	artistID, err := strconv.ParseInt(vars["artistID"], 10, 64)
	if err != nil {
		webutils.JSONError(
			writer,
			fmt.Sprintf("artist %s not found", vars["artistID"]),
			http.StatusNotFound,
		)
		return
	}

	artist, found := current.ArtistByID(artistID)
	if !found {
		webutils.JSONError(
			writer,
			fmt.Sprintf("artist %d not found", artistID),
			http.StatusNotFound,
		)
		return
	}

	resp := artistResponse{
		apiArtist: toAPIArtist(artist),
	}
	for _, album := range artist.Albums() {
		resp.Albums = append(resp.Albums, toAPIAlbum(album))
	}
	for _, genre := range artist.Genres() {
		resp.Genres = append(resp.Genres, genre.Name())
	}

	writer.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(writer)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			writer,
			"Encoding artist response failed: "+err.Error(),
			http.StatusInternalServerError,
		)
	}
}

type artistResponse struct {
	apiArtist

	Albums []apiAlbum `json:"albums"`
	Genres []string   `json:"genres,omitempty"`
}
