package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// statsHandler shows a summary of the current catalog.
type statsHandler struct {
	catalogs CatalogSource
}

// NewStatsHandler returns an http.Handler which shows the size of the current
// catalog along with the ID and time of the scan which created it.
func NewStatsHandler(catalogs CatalogSource) http.Handler {
	return &statsHandler{
		catalogs: catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (h *statsHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	current := h.catalogs.Catalog()
	if current == nil {
		webutils.JSONError(writer, noCatalogMessage, http.StatusServiceUnavailable)
		return
	}

	resp := statsResponse{
		CatalogID:    current.ID(),
		CreatedAt:    current.CreatedAt().Unix(),
		SongsCount:   len(current.Songs()),
		AlbumsCount:  len(current.Albums()),
		ArtistsCount: len(current.Artists()),
		GenresCount:  len(current.Genres()),
	}

	writer.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(writer)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			writer,
			"Encoding stats response failed: "+err.Error(),
			http.StatusInternalServerError,
		)
	}
}

type statsResponse struct {
	CatalogID    string `json:"catalog_id"`
	CreatedAt    int64  `json:"created_at"` // Unix timestamp in seconds.
	SongsCount   int    `json:"songs_count"`
	AlbumsCount  int    `json:"albums_count"`
	ArtistsCount int    `json:"artists_count"`
	GenresCount  int    `json:"genres_count"`
}
