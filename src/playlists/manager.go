package playlists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	migrate "github.com/ironsmile/sql-migrate"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ironsmile/aoede/src/catalog"
)

// SQLiteMemoryFile can be used as a database path when a temporary database
// is needed. It will create the playlists database in-memory.
const SQLiteMemoryFile = "file::memory:?cache=shared"

// sqlMigrateDirectory is the directory within the `sqlFilesFS` which contains
// the .sql files for sql-migrate.
const sqlMigrateDirectory = "migrations"

// Manager implements the Playlister interface on top of its own SQLite
// database.
type Manager struct {
	db       *sql.DB
	catalogs CatalogSource
}

// NewManager opens or creates the playlists database at databasePath and
// applies any pending migrations found in sqlFilesFS. The returned Manager
// must be closed once it is not used any more.
func NewManager(
	databasePath string,
	sqlFilesFS fs.FS,
	catalogs CatalogSource,
) (*Manager, error) {
	db, err := sql.Open("sqlite3", databasePath)
	if err != nil {
		return nil, fmt.Errorf("opening playlists database: %w", err)
	}

	// A single connection serializes all writes, which suits SQLite just
	// fine. It also makes the in-memory database usable, with more
	// connections every one of them would get a brand new empty database.
	db.SetMaxOpenConns(1)

	m := &Manager{
		db:       db,
		catalogs: catalogs,
	}

	if err := m.applyMigrations(sqlFilesFS); err != nil {
		_ = db.Close()
		return nil, err
	}

	return m, nil
}

// Close closes the database connection. The Manager must not be used
// afterwards.
func (m *Manager) Close() error {
	return m.db.Close()
}

// applyMigrations reads the database migrations dir and applies them to the
// currently open database if it is necessary.
func (m *Manager) applyMigrations(sqlFilesFS fs.FS) error {
	migrationFiles, err := fs.Sub(sqlFilesFS, sqlMigrateDirectory)
	if err != nil {
		return fmt.Errorf("locating migrate dir within sqlFiles fs.FS failed: %w", err)
	}

	migrations := &migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(migrationFiles),
	}

	_, err = migrate.ExecMax(m.db, "sqlite3", migrations, migrate.Up, 0)
	if err == nil {
		return nil
	}

	if _, ok := err.(*migrate.PlanError); ok {
		log.Printf("Error applying database migrations: %s\n", err)
		return nil
	}

	return fmt.Errorf("executing db migration failed: %w", err)
}

// Get implements Playlister.
func (m *Manager) Get(ctx context.Context, id int64) (Playlist, error) {
	const getPlaylistQuery = selectPlaylistQuery + `
		WHERE pl.id = @playlist_id
		GROUP BY pl.id
	`

	const getTrackPathsQuery = `
		SELECT track_path
		FROM playlists_tracks
		WHERE playlist_id = @playlist_id
		ORDER BY "index"
	`

	row := m.db.QueryRowContext(ctx, getPlaylistQuery, sql.Named("playlist_id", id))
	playlist, err := scanPlaylist(row)
	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, ErrNotFound
	} else if err != nil {
		return Playlist{}, err
	}

	rows, err := m.db.QueryContext(ctx, getTrackPathsQuery, sql.Named("playlist_id", id))
	if err != nil {
		return Playlist{}, fmt.Errorf("failed to get track paths: %w", err)
	}
	defer rows.Close()

	var trackPaths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return Playlist{}, fmt.Errorf("failed to scan track path: %w", err)
		}
		trackPaths = append(trackPaths, path)
	}
	if err := rows.Err(); err != nil {
		return Playlist{}, fmt.Errorf("error reading track paths: %w", err)
	}

	playlist.Tracks = m.resolveTracks(trackPaths)
	for _, track := range playlist.Tracks {
		playlist.Duration += track.Duration
	}

	return playlist, nil
}

// Count implements Playlister.
func (m *Manager) Count(ctx context.Context) (int64, error) {
	var count sql.NullInt64

	row := m.db.QueryRowContext(ctx, countPlaylistsQuery)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("error in SQL query for getting playlists count: %w", err)
	}

	if !count.Valid {
		return 0, fmt.Errorf("SQL query did not return rows for playlists count")
	}

	return count.Int64, nil
}

// List implements Playlister.
func (m *Manager) List(ctx context.Context, args ListArgs) ([]Playlist, error) {
	var (
		playlists []Playlist
		queryArgs []any

		querySuffix = `
		GROUP BY
			pl.id
		`
	)

	if args.Count > 0 || args.Offset > 0 {
		querySuffix += `
		LIMIT ?, ?
		`
		queryArgs = append(queryArgs, args.Offset, args.Count)
	}

	getPlaylistsQuery := selectPlaylistQuery + querySuffix

	rows, err := m.db.QueryContext(ctx, getPlaylistsQuery, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("could not query the database: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning playlists: %w", err)
		}

		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading playlists: %w", err)
	}

	if err := m.listDurations(ctx, playlists); err != nil {
		return nil, err
	}

	return playlists, nil
}

// listDurations fills in the Duration of every listed playlist by resolving
// the stored tracks of all of them in a single query.
func (m *Manager) listDurations(ctx context.Context, playlists []Playlist) error {
	if len(playlists) == 0 {
		return nil
	}

	current := m.catalogs.Catalog()
	if current == nil {
		return nil
	}

	listTracksQuery := `
		SELECT playlist_id, track_path
		FROM playlists_tracks
		WHERE playlist_id IN (` + strings.TrimSuffix(
		strings.Repeat("?,", len(playlists)),
		",",
	) + `)`

	durations := make(map[int64]time.Duration, len(playlists))
	queryArgs := make([]any, 0, len(playlists))
	for _, playlist := range playlists {
		queryArgs = append(queryArgs, playlist.ID)
	}

	rows, err := m.db.QueryContext(ctx, listTracksQuery, queryArgs...)
	if err != nil {
		return fmt.Errorf("error selecting tracks for playlists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			playlistID int64
			trackPath  string
		)
		if err := rows.Scan(&playlistID, &trackPath); err != nil {
			return fmt.Errorf("failed to scan playlist track: %w", err)
		}

		if song, found := current.SongByPath(trackPath); found {
			durations[playlistID] += song.Duration()
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading playlist tracks: %w", err)
	}

	for i := range playlists {
		playlists[i].Duration = durations[playlists[i].ID]
	}

	return nil
}

// Create implements Playlister.
func (m *Manager) Create(ctx context.Context, args CreateArgs) (int64, error) {
	if args.Name == "" {
		return 0, fmt.Errorf("name cannot be empty")
	}

	const insertPlaylistQuery = `
		INSERT INTO
			playlists (name, description, public, created_at, updated_at)
		VALUES
			(@name, @description, 1, @current_time, @current_time)
	`

	insertSongsQuery := `
		INSERT INTO
			playlists_tracks (playlist_id, track_path, "index")
		VALUES
	`

	var lastInsertID int64

	work := func() (retErr error) {
		tx, err := m.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("cannot begin DB transaction: %w", err)
		}
		defer func() {
			if retErr == nil {
				retErr = tx.Commit()
			} else {
				_ = tx.Rollback()
			}
		}()

		res, err := tx.ExecContext(ctx, insertPlaylistQuery,
			sql.Named("name", args.Name),
			sql.Named("description", args.Desc),
			sql.Named("current_time", time.Now().Unix()),
		)
		if err != nil {
			return fmt.Errorf("failed to insert playlist: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("cannot get last insert ID for playlist: %w", err)
		}

		lastInsertID = id
		if len(args.TrackPaths) == 0 {
			return nil
		}

		insertSongsQuery += strings.TrimSuffix(strings.Repeat(
			"(@playlist_id, ?, ?),", len(args.TrackPaths),
		), ",")

		queryVals := []any{
			sql.Named("playlist_id", lastInsertID),
		}
		for index, trackPath := range args.TrackPaths {
			queryVals = append(queryVals, trackPath, index)
		}

		_, err = tx.ExecContext(ctx, insertSongsQuery, queryVals...)
		if err != nil {
			return fmt.Errorf("failed to insert playlist tracks: %w", err)
		}

		return nil
	}

	if err := work(); err != nil {
		return 0, err
	}

	return lastInsertID, nil
}

// Update implements Playlister.
func (m *Manager) Update(ctx context.Context, id int64, args UpdateArgs) error {
	var (
		updateFields []string
		updateValues []any
	)

	if args.Name != "" {
		updateFields = append(updateFields, "name = @name")
		updateValues = append(updateValues, sql.Named("name", args.Name))
	}

	if args.Desc != "" {
		updateFields = append(updateFields, "description = @description")
		updateValues = append(updateValues, sql.Named("description", args.Desc))
	}

	if args.Public != nil {
		var publicInt = 1
		if !*args.Public {
			publicInt = 0
		}
		updateFields = append(updateFields, "public = @public")
		updateValues = append(updateValues, sql.Named("public", publicInt))
	}

	if len(updateFields) == 0 && !args.RemoveAllTracks &&
		len(args.AddTracks) == 0 && len(args.RemoveTracks) == 0 &&
		len(args.MoveTracks) == 0 {
		// nothing to do here!
		return nil
	}

	updateFields = append(updateFields, "updated_at = @updated_time")
	updateValues = append(updateValues,
		sql.Named("updated_time", time.Now().Unix()),
		sql.Named("playlist_id", id),
	)

	updatePlaylistQuery := `
		UPDATE playlists
		SET
			` + strings.Join(updateFields, ",") + `
		WHERE
			id = @playlist_id
	`

	const removeAllQuery = `
		DELETE FROM playlists_tracks
		WHERE
			playlist_id = @playlist_id
	`

	insertSongsQuery := `
		INSERT INTO
			playlists_tracks (playlist_id, track_path, "index")
		VALUES
	`

	const removeTracksQuery = `
		DELETE FROM playlists_tracks
		WHERE
			playlist_id = @playlist_id AND
			"index" = @track_index
	`

	const updateTrackIndexesQuery = `
		UPDATE playlists_tracks
		SET
			"index" = "index" - 1
		WHERE
			playlist_id = @playlist_id AND
			"index" > @track_index
	`

	const getTrackByIndexQuery = `
		SELECT
			track_path
		FROM
			playlists_tracks
		WHERE
			playlist_id = @playlist_id AND
			"index" = @track_index
	`

	const createIndexGapQuery = `
		UPDATE playlists_tracks
		SET
			"index" = "index" + 1
		WHERE
			playlist_id = @playlist_id AND
			"index" >= @track_index
	`

	const maxIndexQuery = `
		SELECT
			MAX("index") as max_index
		FROM
			playlists_tracks
		WHERE
			playlist_id = @playlist_id
	`

	work := func() (retErr error) {
		tx, err := m.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("cannot begin DB transaction: %w", err)
		}
		defer func() {
			if retErr == nil {
				retErr = tx.Commit()
			} else {
				_ = tx.Rollback()
			}
		}()

		res, err := tx.ExecContext(ctx, updatePlaylistQuery, updateValues...)
		if err != nil {
			return fmt.Errorf("update playlist error: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not get the number of affected rows: %w", err)
		}

		if affected < 1 {
			return fmt.Errorf("playlist for updating not found: %w", ErrNotFound)
		}

		if args.RemoveAllTracks {
			_, err := tx.ExecContext(ctx, removeAllQuery, sql.Named("playlist_id", id))
			if err != nil {
				return fmt.Errorf("failed to remove all tracks from playlist: %w", err)
			}
		}

		slices.Sort(args.RemoveTracks)
		slices.Reverse(args.RemoveTracks)

		for _, trackIndex := range args.RemoveTracks {
			var removeArgs = []any{
				sql.Named("playlist_id", id),
				sql.Named("track_index", trackIndex),
			}

			_, err = tx.ExecContext(ctx, removeTracksQuery, removeArgs...)
			if err != nil {
				return fmt.Errorf("failed to remove track index %d: %w", trackIndex, err)
			}

			_, err = tx.ExecContext(ctx, updateTrackIndexesQuery, removeArgs...)
			if err != nil {
				return fmt.Errorf("failed to update track index %d: %w", trackIndex, err)
			}
		}

		if len(args.AddTracks) > 0 {
			var (
				maxIndex  sql.NullInt64
				nextIndex int64
			)

			row := tx.QueryRowContext(ctx, maxIndexQuery, sql.Named("playlist_id", id))
			if err := row.Scan(&maxIndex); err != nil {
				return fmt.Errorf("failed to scan max index: %w", err)
			}

			if maxIndex.Valid {
				nextIndex = maxIndex.Int64 + 1
			}

			insertSongsQuery += strings.TrimSuffix(strings.Repeat(
				"(@playlist_id, ?, ?),", len(args.AddTracks),
			), ",")

			queryVals := []any{
				sql.Named("playlist_id", id),
			}
			for i, trackPath := range args.AddTracks {
				queryVals = append(queryVals, trackPath, nextIndex+int64(i))
			}

			_, err = tx.ExecContext(ctx, insertSongsQuery, queryVals...)
			if err != nil {
				return fmt.Errorf("failed to insert songs to playlist: %w", err)
			}
		}

		for ind, move := range args.MoveTracks {
			if move.FromIndex == move.ToIndex {
				continue
			}

			var trackPath string
			row := tx.QueryRowContext(ctx, getTrackByIndexQuery,
				sql.Named("playlist_id", id),
				sql.Named("track_index", move.FromIndex),
			)
			if err := row.Scan(&trackPath); err != nil {
				return fmt.Errorf("failed to scan for track for move %d (%d->%d): %w",
					ind, move.FromIndex, move.ToIndex, err)
			}

			var removeArgs = []any{
				sql.Named("playlist_id", id),
				sql.Named("track_index", move.FromIndex),
			}

			_, err = tx.ExecContext(ctx, removeTracksQuery, removeArgs...)
			if err != nil {
				return fmt.Errorf("failed to remove track index (moving) %d: %w",
					move.FromIndex, err)
			}

			_, err = tx.ExecContext(ctx, updateTrackIndexesQuery, removeArgs...)
			if err != nil {
				return fmt.Errorf("failed to update track index (moving) %d: %w",
					move.FromIndex, err)
			}

			var gapArgs = []any{
				sql.Named("playlist_id", id),
				sql.Named("track_index", move.ToIndex),
			}

			_, err = tx.ExecContext(ctx, createIndexGapQuery, gapArgs...)
			if err != nil {
				return fmt.Errorf("failed to create gap during move (%d): %w", ind, err)
			}

			const insertMovedQuery = `
				INSERT INTO
					playlists_tracks (playlist_id, track_path, "index")
				VALUES
					(@playlist_id, @track_path, @track_index)
			`

			var insertArgs = []any{
				sql.Named("playlist_id", id),
				sql.Named("track_path", trackPath),
				sql.Named("track_index", move.ToIndex),
			}

			_, err = tx.ExecContext(ctx, insertMovedQuery, insertArgs...)
			if err != nil {
				return fmt.Errorf("failed insert track index during moving (move %d): %w",
					ind, err)
			}
		}

		return nil
	}

	return work()
}

// Delete implements Playlister.
func (m *Manager) Delete(ctx context.Context, id int64) (retErr error) {
	const deletePlaylistQuery = `
		DELETE FROM playlists
		WHERE id = @playlist_id
	`

	const deleteTracksQuery = `
		DELETE FROM playlists_tracks
		WHERE playlist_id = @playlist_id
	`

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin DB transaction: %w", err)
	}
	defer func() {
		if retErr == nil {
			retErr = tx.Commit()
		} else {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, deleteTracksQuery, sql.Named("playlist_id", id))
	if err != nil {
		return fmt.Errorf("sql query error: %w", err)
	}

	res, err := tx.ExecContext(ctx, deletePlaylistQuery, sql.Named("playlist_id", id))
	if err != nil {
		return fmt.Errorf("sql query error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cannot get number of affected rows: %w", err)
	}

	if affected < 1 {
		return ErrNotFound
	}

	return nil
}

// resolveTracks turns stored media paths into resolved playlist tracks using
// the current catalog. Paths which are not part of the catalog, for example
// because their files disappeared from the library, are skipped.
func (m *Manager) resolveTracks(trackPaths []string) []Track {
	current := m.catalogs.Catalog()
	if current == nil {
		return nil
	}

	tracks := make([]Track, 0, len(trackPaths))
	for _, trackPath := range trackPaths {
		song, found := current.SongByPath(trackPath)
		if !found {
			continue
		}
		tracks = append(tracks, trackFromSong(song))
	}

	return tracks
}

// trackFromSong projects a catalog song into a playlist track.
func trackFromSong(song *catalog.Song) Track {
	var artists []string
	for _, artist := range song.Artists() {
		artists = append(artists, artist.Name())
	}

	var albumName string
	if album := song.Album(); album != nil {
		albumName = album.Name()
	}

	return Track{
		Path:        song.Path(),
		Title:       song.Title(),
		Album:       albumName,
		Artist:      strings.Join(artists, ", "),
		TrackNumber: song.TrackNumber(),
		Format:      song.Format(),
		Duration:    song.Duration(),
	}
}

const selectPlaylistQuery = `
	SELECT
		pl.id,
		pl.name,
		pl.description,
		pl.public,
		pl.created_at,
		pl.updated_at,
		COUNT(pt.track_path) as track_count
	FROM
		playlists pl
		LEFT JOIN playlists_tracks pt ON pl.id = pt.playlist_id
`

const countPlaylistsQuery = `
	SELECT
		COUNT(*) as cnt
	FROM
		playlists pl
`

func scanPlaylist(row rowScanner) (Playlist, error) {
	var (
		playlist    Playlist
		description sql.NullString
		public      int64
		created     int64
		updated     int64
		trackCount  sql.NullInt64
	)

	err := row.Scan(
		&playlist.ID, &playlist.Name, &description,
		&public, &created, &updated, &trackCount,
	)
	if err != nil {
		return Playlist{}, fmt.Errorf("error scanning playlist: %w", err)
	}

	if description.Valid {
		playlist.Desc = description.String
	}

	if public != 0 {
		playlist.Public = true
	}

	if trackCount.Valid {
		playlist.TracksCount = trackCount.Int64
	}

	playlist.CreatedAt = time.Unix(created, 0)
	playlist.UpdatedAt = time.Unix(updated, 0)

	return playlist, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
