package webserver

import "net/http"

// The following are URL Path endpoints for certain API calls.
const (
	APIv1EndpointAbout          = "/v1/about"
	APIv1EndpointArtists        = "/v1/artists"
	APIv1EndpointArtist         = "/v1/artists/{artistID}"
	APIv1EndpointAlbums         = "/v1/albums"
	APIv1EndpointAlbum          = "/v1/albums/{albumID}"
	APIv1EndpointGenres         = "/v1/genres"
	APIv1EndpointSongs          = "/v1/songs"
	APIv1EndpointSearchWithPath = "/v1/search/{searchQuery}"
	APIv1EndpointSearch         = "/v1/search/"
	APIv1EndpointStats          = "/v1/stats"
	APIv1EndpointPlaylists      = "/v1/playlists"
	APIv1EndpointPlaylist       = "/v1/playlists/{playlistID}"
)

// APIv1Methods defines on which HTTP methods APIv1 endpoints will respond to.
// It is an uri_path => list of HTTP methods map.
var APIv1Methods map[string][]string = map[string][]string{
	APIv1EndpointAbout:          {http.MethodGet},
	APIv1EndpointArtists:        {http.MethodGet},
	APIv1EndpointArtist:         {http.MethodGet},
	APIv1EndpointAlbums:         {http.MethodGet},
	APIv1EndpointAlbum:          {http.MethodGet},
	APIv1EndpointGenres:         {http.MethodGet},
	APIv1EndpointSongs:          {http.MethodGet},
	APIv1EndpointSearchWithPath: {http.MethodGet},
	APIv1EndpointSearch:         {http.MethodGet},
	APIv1EndpointStats:          {http.MethodGet},
	APIv1EndpointPlaylists:      {http.MethodGet, http.MethodPost},
	APIv1EndpointPlaylist: {
		http.MethodGet,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	},
}
