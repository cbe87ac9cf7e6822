package webserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// albumHandler shows a single album along with its songs.
type albumHandler struct {
	catalogs CatalogSource
}

// NewSingleAlbumHandler returns an http.Handler which shows information for
// a particular album identified by its ID.
func NewSingleAlbumHandler(catalogs CatalogSource) http.Handler {
	return &albumHandler{
		catalogs: catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (h *albumHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	WithInternalError(h.find)(writer, req)
}

func (h *albumHandler) find(writer http.ResponseWriter, req *http.Request) error {
	current := h.catalogs.Catalog()
	if current == nil {
		webutils.JSONError(writer, noCatalogMessage, http.StatusServiceUnavailable)
		return nil
	}

	vars := mux.Vars(req)
	albumID, err := strconv.ParseInt(vars["albumID"], 10, 64)
	if err != nil {
		webutils.JSONError(
			writer,
			fmt.Sprintf("album %s not found", vars["albumID"]),
			http.StatusNotFound,
		)
		return nil
	}

	album, found := current.AlbumByID(albumID)
	if !found {
		webutils.JSONError(
			writer,
			fmt.Sprintf("album %d not found", albumID),
			http.StatusNotFound,
		)
		return nil
	}

	resp := albumResponse{
		apiAlbum: toAPIAlbum(album),
	}
	for _, song := range album.Songs() {
		resp.Songs = append(resp.Songs, toAPISong(song))
	}

	writer.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(writer)
	return enc.Encode(resp)
}

type albumResponse struct {
	apiAlbum

	Songs []apiSong `json:"songs"`
}
