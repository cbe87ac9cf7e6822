package webserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ironsmile/aoede/src/playlists"
	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// playlistsHandler will list playlists (GET) and create a new one (POST).
type playlistsHandler struct {
	playlists playlists.Playlister
	catalogs  CatalogSource
}

// NewPlaylistsHandler returns an http.Handler which supports listing all playlists
// with a GET request and creating a new playlist with a POST request.
func NewPlaylistsHandler(
	playlister playlists.Playlister,
	catalogs CatalogSource,
) http.Handler {
	return &playlistsHandler{
		playlists: playlister,
		catalogs:  catalogs,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (plh *playlistsHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPost {
		plh.create(w, req)
		return
	}

	plh.list(w, req)
}

func (plh *playlistsHandler) create(w http.ResponseWriter, req *http.Request) {
	listReq := playlistRequest{}
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(&listReq); err != nil {
		webutils.JSONError(
			w,
			fmt.Sprintf("Cannot decode playlist JSON: %s", err),
			http.StatusBadRequest,
		)
		return
	}

	trackPaths, ok := songIDsToPaths(w, plh.catalogs, listReq.AddTracksByID)
	if !ok {
		return
	}

	newID, err := plh.playlists.Create(req.Context(), playlists.CreateArgs{
		Name:       listReq.Name,
		Desc:       listReq.Desc,
		TrackPaths: trackPaths,
	})
	if err != nil {
		webutils.JSONError(
			w,
			fmt.Sprintf("Failed to create playlist: %s", err),
			http.StatusInternalServerError,
		)
		return
	}

	resp := createPlaylistResponse{
		CreatedPlaylistID: newID,
	}

	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			w,
			fmt.Sprintf("Playlist created but cannot write response JSON: %s", err),
			http.StatusInternalServerError,
		)
		return
	}
}

func (plh *playlistsHandler) list(w http.ResponseWriter, req *http.Request) {
	params, err := parsePageParams(req)
	if err != nil {
		webutils.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	count, err := plh.playlists.Count(req.Context())
	if err != nil {
		webutils.JSONError(
			w,
			fmt.Sprintf("Getting playlists count failed: %s", err),
			http.StatusInternalServerError,
		)
		return
	}

	found, err := plh.playlists.List(req.Context(), playlists.ListArgs{
		Offset: int64(params.page-1) * int64(params.perPage),
		Count:  int64(params.perPage),
	})
	if err != nil {
		webutils.JSONError(
			w,
			fmt.Sprintf("Getting playlists failed: %s", err),
			http.StatusInternalServerError,
		)
		return
	}

	resp := playlistsResponse{
		Next:       params.nextPageURI(req.URL.Path, int(count)),
		Previous:   params.previousPageURI(req.URL.Path),
		PagesCount: params.pagesCount(int(count)),
	}
	for _, pl := range found {
		resp.Playlists = append(resp.Playlists, toAPIPlaylist(pl))
	}

	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		webutils.JSONError(
			w,
			fmt.Sprintf("Encoding playlists response failed: %s", err),
			http.StatusInternalServerError,
		)
	}
}

// songIDsToPaths resolves catalog song IDs from an API request into media
// file paths which is how playlists store their tracks. When a song ID is
// not part of the catalog an error is written to `w` and ok is false.
func songIDsToPaths(
	w http.ResponseWriter,
	catalogs CatalogSource,
	songIDs []int64,
) (paths []string, ok bool) {
	if len(songIDs) == 0 {
		return nil, true
	}

	current := catalogs.Catalog()
	if current == nil {
		webutils.JSONError(w, noCatalogMessage, http.StatusServiceUnavailable)
		return nil, false
	}

	for _, songID := range songIDs {
		song, found := current.SongByID(songID)
		if !found {
			webutils.JSONError(
				w,
				fmt.Sprintf("song %d is not part of the catalog", songID),
				http.StatusBadRequest,
			)
			return nil, false
		}
		paths = append(paths, song.Path())
	}

	return paths, true
}

// toAPIPlaylist converts a playlist to its API form. Resolved tracks are
// converted only when present, list responses do not include them.
func toAPIPlaylist(pl playlists.Playlist) apiPlaylist {
	converted := apiPlaylist{
		ID:          pl.ID,
		Name:        pl.Name,
		Desc:        pl.Desc,
		TracksCount: pl.TracksCount,
		Duration:    pl.Duration.Milliseconds(),
		CreatedAt:   pl.CreatedAt.Unix(),
		UpdatedAt:   pl.UpdatedAt.Unix(),
	}

	for _, track := range pl.Tracks {
		converted.Tracks = append(converted.Tracks, apiPlaylistTrack{
			Title:       track.Title,
			Album:       track.Album,
			Artist:      track.Artist,
			TrackNumber: track.TrackNumber,
			Format:      track.Format,
			Duration:    track.Duration.Milliseconds(),
		})
	}

	return converted
}

type playlistsResponse struct {
	Playlists  []apiPlaylist `json:"playlists"`
	Next       string        `json:"next"`
	Previous   string        `json:"previous"`
	PagesCount int           `json:"pages_count"`
}

type createPlaylistResponse struct {
	CreatedPlaylistID int64 `json:"created_playlist_id"`
}

type apiPlaylist struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Desc        string             `json:"description,omitempty"`
	TracksCount int64              `json:"tracks_count"`
	Duration    int64              `json:"duration"`   // Playlist duration in millisecs.
	CreatedAt   int64              `json:"created_at"` // Unix timestamp in seconds.
	UpdatedAt   int64              `json:"updated_at"` // Unix timestamp in seconds.
	Tracks      []apiPlaylistTrack `json:"tracks,omitempty"`
}

// apiPlaylistTrack is a single song in a playlist response.
type apiPlaylistTrack struct {
	Title       string `json:"title"`
	Album       string `json:"album"`
	Artist      string `json:"artist"`
	TrackNumber int    `json:"track"`
	Format      string `json:"format"`
	Duration    int64  `json:"duration"` // Track duration in millisecs.
}

type playlistRequest struct {
	Name          string             `json:"name"`
	Desc          string             `json:"description"`
	AddTracksByID []int64            `json:"add_tracks_by_id"`
	RemoveIndeces []int64            `json:"remove_indeces"`
	MoveIndeces   []moveTrackRequest `json:"move_indeces"`
}

// moveTrackRequest describes moving a playlist track from one index to
// another as part of a playlist change request.
type moveTrackRequest struct {
	From uint32 `json:"from"`
	To   uint32 `json:"to"`
}
