package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// genresHandler lists the genres in the current catalog page by page.
type genresHandler struct {
	catalogs CatalogSource
}

// NewGenresHandler returns an http.Handler which lists all genres in the
// catalog with the help of pagination.
func NewGenresHandler(catalogs CatalogSource) http.Handler {
	return &genresHandler{
		catalogs: catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (h *genresHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
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

	genres := current.Genres()
	from, to := params.paginate(len(genres))

	page := make([]apiGenre, 0, to-from)
	for _, genre := range genres[from:to] {
		page = append(page, toAPIGenre(genre))
	}

	resp := genresResponse{
		Data:       page,
		Next:       params.nextPageURI(req.URL.Path, len(genres)),
		Previous:   params.previousPageURI(req.URL.Path),
		PagesCount: params.pagesCount(len(genres)),
	}

	writer.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(writer)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			writer,
			"Encoding genres response failed: "+err.Error(),
			http.StatusInternalServerError,
		)
	}
}

type genresResponse struct {
	Data       []apiGenre `json:"data"`
	Next       string     `json:"next"`
	Previous   string     `json:"previous"`
	PagesCount int        `json:"pages_count"`
}
