package graph

import (
	"slices"
	"testing"

	"github.com/ironsmile/aoede/src/tags"
)

// buildGraph feeds all descriptors to a fresh builder and finalizes it.
func buildGraph(songs ...tags.Song) *Graph {
	builder := NewBuilder()
	for _, song := range songs {
		builder.Add(song)
	}
	return builder.Build()
}

// assertConsistentGraph checks the structural invariants of a finalized
// graph. Every edge must be symmetric, every referenced vertex must be part
// of the graph collections and no adjacency list may contain duplicates.
func assertConsistentGraph(t *testing.T, g *Graph) {
	t.Helper()

	albums := make(map[*AlbumVertex]bool, len(g.albums))
	for _, album := range g.albums {
		albums[album] = true
	}
	artists := make(map[*ArtistVertex]bool, len(g.artists))
	for _, artist := range g.artists {
		artists[artist] = true
	}
	genres := make(map[*GenreVertex]bool, len(g.genres))
	for _, genre := range g.genres {
		genres[genre] = true
	}

	for _, song := range g.songs {
		path := song.song.Path

		if song.album == nil {
			t.Fatalf("song `%s` has no album", path)
		}
		if !albums[song.album] {
			t.Errorf("song `%s` references an album outside the graph", path)
		}
		if !slices.Contains(song.album.songs, song) {
			t.Errorf("album `%s` does not link back to its song `%s`",
				song.album.album.Name, path)
		}

		assertNoDuplicates(t, "song artists", song.artists)
		for _, artist := range song.artists {
			if !artists[artist] {
				t.Errorf("song `%s` references an artist outside the graph", path)
			}
			if !slices.Contains(artist.songs, song) {
				t.Errorf("artist `%s` does not link back to song `%s`",
					artist.artist.Name, path)
			}
		}

		assertNoDuplicates(t, "song genres", song.genres)
		for _, genre := range song.genres {
			if !genres[genre] {
				t.Errorf("song `%s` references a genre outside the graph", path)
			}
			if !slices.Contains(genre.songs, song) {
				t.Errorf("genre `%s` does not link back to song `%s`",
					genre.genre.Name, path)
			}
		}
	}

	for _, album := range g.albums {
		assertNoDuplicates(t, "album songs", album.songs)
		for _, song := range album.songs {
			if song.album != album {
				t.Errorf("song `%s` does not link back to album `%s`",
					song.song.Path, album.album.Name)
			}
		}

		assertNoDuplicates(t, "album artists", album.artists)
		for _, artist := range album.artists {
			if !artists[artist] {
				t.Errorf("album `%s` references an artist outside the graph",
					album.album.Name)
			}
			if !slices.Contains(artist.albums, album) {
				t.Errorf("artist `%s` does not link back to album `%s`",
					artist.artist.Name, album.album.Name)
			}
		}
	}

	for _, artist := range g.artists {
		assertNoDuplicates(t, "artist songs", artist.songs)
		for _, song := range artist.songs {
			if !slices.Contains(song.artists, artist) {
				t.Errorf("song `%s` does not link back to artist `%s`",
					song.song.Path, artist.artist.Name)
			}
		}

		assertNoDuplicates(t, "artist albums", artist.albums)
		for _, album := range artist.albums {
			if !albums[album] {
				t.Errorf("artist `%s` references an album outside the graph",
					artist.artist.Name)
			}
			if !slices.Contains(album.artists, artist) {
				t.Errorf("album `%s` does not link back to artist `%s`",
					album.album.Name, artist.artist.Name)
			}
		}

		assertNoDuplicates(t, "artist genres", artist.genres)
		for _, genre := range artist.genres {
			if !genres[genre] {
				t.Errorf("artist `%s` references a genre outside the graph",
					artist.artist.Name)
			}
			if !slices.Contains(genre.artists, artist) {
				t.Errorf("genre `%s` does not link back to artist `%s`",
					genre.genre.Name, artist.artist.Name)
			}
		}
	}

	for _, genre := range g.genres {
		assertNoDuplicates(t, "genre songs", genre.songs)
		for _, song := range genre.songs {
			if !slices.Contains(song.genres, genre) {
				t.Errorf("song `%s` does not link back to genre `%s`",
					song.song.Path, genre.genre.Name)
			}
		}

		assertNoDuplicates(t, "genre artists", genre.artists)
		for _, artist := range genre.artists {
			if !slices.Contains(artist.genres, genre) {
				t.Errorf("artist `%s` does not link back to genre `%s`",
					artist.artist.Name, genre.genre.Name)
			}
		}
	}
}

func assertNoDuplicates[V comparable](t *testing.T, what string, list []V) {
	t.Helper()

	seen := make(map[V]bool, len(list))
	for _, elem := range list {
		if seen[elem] {
			t.Errorf("duplicated neighbor in a %s adjacency list", what)
		}
		seen[elem] = true
	}
}

// TestAddWiresTheFullNeighborhood ingests a single song and checks that all
// its vertices exist and are linked in both directions, including the
// album's own artists and the artist-genre edges the song induces.
func TestAddWiresTheFullNeighborhood(t *testing.T) {
	graph := buildGraph(tags.Song{
		Path:  "/media/album/01 song.mp3",
		Title: "First Song",
		Album: tags.Album{
			Name:    "Some Album",
			Artists: []tags.Artist{{Name: "Album Artist"}},
		},
		Artists: []tags.Artist{{Name: "First Artist"}, {Name: "Second Artist"}},
		Genres:  []tags.Genre{{Name: "Rock"}, {Name: "Metal"}},
	})

	if len(graph.songs) != 1 || len(graph.albums) != 1 {
		t.Fatalf("expected 1 song and 1 album but got %d and %d",
			len(graph.songs), len(graph.albums))
	}
	if len(graph.artists) != 3 {
		t.Fatalf("expected 3 artists but got %d", len(graph.artists))
	}
	if len(graph.genres) != 2 {
		t.Fatalf("expected 2 genres but got %d", len(graph.genres))
	}

	song := graph.songs[0]
	album := graph.albums[0]

	if song.album != album {
		t.Errorf("the song is not linked to its album")
	}
	if len(song.artists) != 2 || len(song.genres) != 2 {
		t.Errorf("expected 2 artists and 2 genres on the song but got %d and %d",
			len(song.artists), len(song.genres))
	}

	if len(album.artists) != 1 || album.artists[0].artist.Name != "Album Artist" {
		t.Errorf("the album is not linked to its album artist")
	}

	// Performing artists inherit the song's genres, the album artist did not
	// perform the song and gets none.
	for _, artist := range song.artists {
		if len(artist.genres) != 2 {
			t.Errorf("artist `%s` has %d genres, expected 2",
				artist.artist.Name, len(artist.genres))
		}
	}
	if albumArtist := album.artists[0]; len(albumArtist.genres) != 0 {
		t.Errorf("the album artist inherited %d genres from a song it did not perform",
			len(albumArtist.genres))
	}

	assertConsistentGraph(t, graph)
}

// TestDuplicateSongInsertionIsDropped checks that a song descriptor for an
// already known path changes nothing, no matter how its tags look.
func TestDuplicateSongInsertionIsDropped(t *testing.T) {
	first := tags.Song{
		Path:    "/media/song.mp3",
		Title:   "Original Title",
		Album:   tags.Album{Name: "Some Album"},
		Artists: []tags.Artist{{Name: "Some Artist"}},
		Genres:  []tags.Genre{{Name: "Rock"}},
	}
	duplicate := tags.Song{
		Path:    "/media/song.mp3",
		Title:   "Changed Title",
		Album:   tags.Album{Name: "Other Album"},
		Artists: []tags.Artist{{Name: "Other Artist"}},
	}

	graph := buildGraph(first, duplicate)

	if len(graph.songs) != 1 {
		t.Fatalf("expected 1 song but got %d", len(graph.songs))
	}
	if title := graph.songs[0].song.Title; title != "Original Title" {
		t.Errorf("the first insertion did not win, song title is %s", title)
	}
	if len(graph.albums) != 1 || graph.albums[0].album.Name != "Some Album" {
		t.Errorf("the duplicate insertion created album vertices")
	}
	if len(graph.artists) != 1 || graph.artists[0].artist.Name != "Some Artist" {
		t.Errorf("the duplicate insertion created artist vertices")
	}

	assertConsistentGraph(t, graph)
}

// TestSongsAreNeverMerged makes sure two files with identical tags stay two
// distinct songs sharing their album, artist and genre.
func TestSongsAreNeverMerged(t *testing.T) {
	descriptor := tags.Song{
		Title:   "Same Song",
		Album:   tags.Album{Name: "Same Album"},
		Artists: []tags.Artist{{Name: "Same Artist"}},
		Genres:  []tags.Genre{{Name: "Rock"}},
	}

	first := descriptor
	first.Path = "/media/copy one.mp3"
	second := descriptor
	second.Path = "/media/copy two.mp3"

	graph := buildGraph(first, second)

	if len(graph.songs) != 2 {
		t.Fatalf("expected 2 songs but got %d", len(graph.songs))
	}
	if len(graph.albums) != 1 || len(graph.artists) != 1 || len(graph.genres) != 1 {
		t.Fatalf("expected one album, artist and genre but got %d, %d and %d",
			len(graph.albums), len(graph.artists), len(graph.genres))
	}
	if len(graph.albums[0].songs) != 2 {
		t.Errorf("expected both songs in the album but got %d", len(graph.albums[0].songs))
	}

	assertConsistentGraph(t, graph)
}

// TestRepeatedDescriptorsWireSingleEdges checks that a song which lists the
// same artist or genre twice gets only one edge to each.
func TestRepeatedDescriptorsWireSingleEdges(t *testing.T) {
	graph := buildGraph(tags.Song{
		Path:    "/media/song.mp3",
		Title:   "Some Song",
		Album:   tags.Album{Name: "Some Album"},
		Artists: []tags.Artist{{Name: "Some Artist"}, {Name: "Some Artist"}},
		Genres:  []tags.Genre{{Name: "Rock"}, {Name: "Rock"}},
	})

	if len(graph.artists) != 1 || len(graph.genres) != 1 {
		t.Fatalf("expected one artist and genre but got %d and %d",
			len(graph.artists), len(graph.genres))
	}

	song := graph.songs[0]
	if len(song.artists) != 1 || len(song.genres) != 1 {
		t.Errorf("expected single edges but the song has %d artists and %d genres",
			len(song.artists), len(song.genres))
	}

	assertConsistentGraph(t, graph)
}

func TestAddAfterBuildPanics(t *testing.T) {
	builder := NewBuilder()
	builder.Add(tags.Song{
		Path:    "/media/song.mp3",
		Title:   "Some Song",
		Album:   tags.Album{Name: "Some Album"},
		Artists: []tags.Artist{{Name: "Some Artist"}},
	})
	builder.Build()

	defer func() {
		if recover() == nil {
			t.Errorf("Add on a finalized builder did not panic")
		}
	}()
	builder.Add(tags.Song{Path: "/media/other.mp3"})
}

func TestBuildingTwicePanics(t *testing.T) {
	builder := NewBuilder()
	builder.Build()

	defer func() {
		if recover() == nil {
			t.Errorf("a second Build call did not panic")
		}
	}()
	builder.Build()
}
