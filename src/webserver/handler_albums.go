package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// albumsHandler lists the albums in the current catalog page by page.
type albumsHandler struct {
	catalogs CatalogSource
}

// NewAlbumsHandler returns an http.Handler which lists all albums in the
// catalog with the help of pagination.
func NewAlbumsHandler(catalogs CatalogSource) http.Handler {
	return &albumsHandler{
		catalogs: catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (h *albumsHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	current := h.catalogs.Catalog()
	if current == nil {
		webutils.JSONError(writer, noCatalogMessage, http.StatusServiceUnavailable)
		return
	}

	params, err := parsePageParams(req)
	if err != nil {
		webutils.JSONError(writer, err.Error(), http.StatusBadRequest)
		return
	}

	albums := current.Albums()
	from, to := params.paginate(len(albums))

	page := make([]apiAlbum, 0, to-from)
	for _, album := range albums[from:to] {
		page = append(page, toAPIAlbum(album))
	}

	resp := albumsResponse{
		Data:       page,
		Next:       params.nextPageURI(req.URL.Path, len(albums)),
		Previous:   params.previousPageURI(req.URL.Path),
		PagesCount: params.pagesCount(len(albums)),
	}

	writer.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(writer)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			writer,
			"Encoding albums response failed: "+err.Error(),
			http.StatusInternalServerError,
		)
	}
}

type albumsResponse struct {
	Data       []apiAlbum `json:"data"`
	Next       string     `json:"next"`
	Previous   string     `json:"previous"`
	PagesCount int        `json:"pages_count"`
}
