package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// songsHandler lists the songs in the current catalog page by page.
type songsHandler struct {
	catalogs CatalogSource
}

// NewSongsHandler returns an http.Handler which lists all songs in the
// catalog with the help of pagination.
func NewSongsHandler(catalogs CatalogSource) http.Handler {
	return &songsHandler{
		catalogs: catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (h *songsHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
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

	songs := current.Songs()
	from, to := params.paginate(len(songs))

	page := make([]apiSong, 0, to-from)
	for _, song := range songs[from:to] {
		page = append(page, toAPISong(song))
	}

	resp := songsResponse{
		Data:       page,
		Next:       params.nextPageURI(req.URL.Path, len(songs)),
		Previous:   params.previousPageURI(req.URL.Path),
		PagesCount: params.pagesCount(len(songs)),
	}

	writer.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(writer)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			writer,
			"Encoding songs response failed: "+err.Error(),
			http.StatusInternalServerError,
		)
	}
}

type songsResponse struct {
	Data       []apiSong `json:"data"`
	Next       string    `json:"next"`
	Previous   string    `json:"previous"`
	PagesCount int       `json:"pages_count"`
}
