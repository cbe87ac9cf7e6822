package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// artistsHandler lists the artists in the current catalog page by page.
type artistsHandler struct {
	catalogs CatalogSource
}

// NewArtistsHandler returns an http.Handler which lists all artists in the
// catalog with the help of pagination.
func NewArtistsHandler(catalogs CatalogSource) http.Handler {
	return &artistsHandler{
		catalogs: catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (h *artistsHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
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

	artists := current.Artists()
	from, to := params.paginate(len(artists))

	page := make([]apiArtist, 0, to-from)
	for _, artist := range artists[from:to] {
		page = append(page, toAPIArtist(artist))
	}

	resp := artistsResponse{
		Data:       page,
		Next:       params.nextPageURI(req.URL.Path, len(artists)),
		Previous:   params.previousPageURI(req.URL.Path),
		PagesCount: params.pagesCount(len(artists)),
	}

	writer.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(writer)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			writer,
			"Encoding artists response failed: "+err.Error(),
			http.StatusInternalServerError,
		)
	}
}

type artistsResponse struct {
	Data       []apiArtist `json:"data"`
	Next       string      `json:"next"`
	Previous   string      `json:"previous"`
	PagesCount int         `json:"pages_count"`
}
