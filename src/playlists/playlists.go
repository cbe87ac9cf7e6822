// Package playlists persists user created playlists. Unlike the catalog,
// which is thrown away and rebuilt from the media files on every scan,
// playlists are durable state and live in their own SQLite database.
//
// Tracks are stored as media file paths since the path is the only song
// identity which survives a rescan. Stored paths are resolved against the
// current catalog whenever a playlist is read and paths which are no longer
// part of the catalog are left out of the resolved tracks.
package playlists

import (
	"context"
	"errors"
	"time"

	"github.com/ironsmile/aoede/src/catalog"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Playlister

// Playlister is the interface for handling playlists.
type Playlister interface {
	// Get returns a single playlist by its ID with its tracks resolved
	// against the current catalog.
	Get(ctx context.Context, id int64) (Playlist, error)

	// List returns a list of playlists. Does not return the tracks
	// associated with each playlist. Set both [args.Count] and [args.Offset]
	// to zero in order to list all playlists at once.
	List(ctx context.Context, args ListArgs) ([]Playlist, error)

	// Count returns the count of all playlists available.
	Count(ctx context.Context) (int64, error)

	// Create creates a new playlist. A name is required, everything else in
	// `args` is optional.
	//
	// Returns the unique ID of the newly created playlist.
	Create(ctx context.Context, args CreateArgs) (int64, error)

	// Update updates the playlist with ID `id` with the values given in
	// `args`. Note that everything in args is optional and will not change
	// the playlist if the zero value of the property is left.
	Update(ctx context.Context, id int64, args UpdateArgs) error

	// Delete removes a playlist by its `id`.
	Delete(ctx context.Context, id int64) error
}

//counterfeiter:generate . CatalogSource

// CatalogSource is used by the playlists storage for resolving stored track
// paths into full songs. Catalog returns nil when no scan has finished yet,
// in which case playlists resolve to no tracks at all.
type CatalogSource interface {
	Catalog() *catalog.Catalog
}

// Playlist represents a single playlist.
type Playlist struct {
	ID     int64  // ID is the unique number which identifies this playlist.
	Name   string // Name is the user-facing name of the playlist.
	Desc   string // Desc is a text which describes the playlist.
	Public bool   // Public is true if the playlist will be visible for all users.

	Duration  time.Duration // Duration is the overall duration of the resolved tracks.
	CreatedAt time.Time     // CreatedAt is the time when this playlist was created.
	UpdatedAt time.Time     // UpdatedAt is the time of the last update of the playlist.

	// TracksCount is the number of stored tracks in this playlist. It may be
	// bigger than the number of resolved tracks when some stored paths are
	// not part of the current catalog any more.
	TracksCount int64

	// Tracks are the resolved tracks of this playlist ordered by their
	// explicit position. It is populated by Get only.
	Tracks []Track
}

// Track is a single resolved track of a playlist.
type Track struct {
	Path        string        // Path is the media file path of the track.
	Title       string        // Title is the song title.
	Album       string        // Album is the display name of the song's album.
	Artist      string        // Artist lists the song artists in one string.
	TrackNumber int           // TrackNumber is the song position in its album.
	Format      string        // Format is the media format, e.g. "mp3".
	Duration    time.Duration // Duration of the media file.
}

// CreateArgs is all the possible arguments for creating a playlist.
type CreateArgs struct {
	Name string // Name is the user-facing name of the playlist. Required.
	Desc string // Desc is a text which describes the playlist.

	// TrackPaths is a list of media file paths to be added to the playlist.
	TrackPaths []string
}

// UpdateArgs is all the possible arguments which could be updated
// for a given playlist.
type UpdateArgs struct {
	Name   string // Name is the new name of the playlist.
	Desc   string // Desc sets the playlist description.
	Public *bool  // Public sets the public field of the playlist.

	// AddTracks is a list of media file paths which will be appended to the
	// playlist. Tracks are added _after_ removing is done.
	AddTracks []string

	// RemoveTracks is a list of positions in the playlist for tracks
	// to be removed from it.
	RemoveTracks []int64

	// MoveTracks is a list of move operations for tracks by their indexes.
	// Moving is evaluated _after_ adding is done.
	MoveTracks []MoveArgs

	// RemoveAllTracks causes all tracks of the playlist to be removed.
	RemoveAllTracks bool
}

// MoveArgs defines a single move of a track from one position in the playlist
// to another. Positions are encoded as indexes in the playlist.
type MoveArgs struct {
	FromIndex uint32
	ToIndex   uint32
}

// ListArgs defines what portion of the playlists list will be returned.
type ListArgs struct {
	// Offset is an index in the list of playlists from which to start the list.
	Offset int64

	// Count defines how many playlists to include in the response. The special
	// value of zero means "all playlists".
	Count int64
}

// ErrNotFound is returned when a playlist was not found for a given operation.
var ErrNotFound = errors.New("playlist not found")
