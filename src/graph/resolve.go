package graph

import (
	"fmt"
	"slices"
	"strings"
)

// The resolver merges vertices which describe the same real world entity but
// were left distinct by the exact key matching of the store. Grouping is by
// case-insensitive name per vertex kind. Genres merge unconditionally within
// a name cluster. Artists and albums carry an optional external ID which can
// tell two same-named entities apart, so their clusters merge per ID when
// every member has one and as a whole when the coverage is not full.
//
// Genres are resolved first and albums last. Album merging unions the artist
// adjacency of the merged vertices and those unions should be over already
// canonical artists.

// resolveGenres merges all genre vertices sharing a case-insensitive name
// into the one with the most songs.
func (b *Builder) resolveGenres() {
	clusters := clusterVertices(b.store.genreOrder, func(v *GenreVertex) string {
		return strings.ToLower(v.genre.Name)
	})

	for _, cluster := range clusters {
		if len(cluster) < 2 {
			continue
		}

		canonical := canonicalVertex(cluster,
			func(v *GenreVertex) int { return len(v.songs) },
			func(v *GenreVertex) string { return v.genre.Key() },
		)
		for _, vertex := range cluster {
			if vertex != canonical {
				b.meldGenres(vertex, canonical)
			}
		}
	}
}

// resolveArtists merges the artist vertices within every case-insensitive
// name cluster according to their external ID coverage.
//
// When every vertex in the cluster has an ID the IDs are trusted to tell
// same-named artists apart. The cluster is merged per ID, two artists
// sharing a stage name but having different IDs stay distinct.
//
// When at least one vertex has no ID the IDs cannot disambiguate the
// cluster. They are stripped from all members, which re-keys the vertices
// in the store, and the whole cluster merges into a single artist.
func (b *Builder) resolveArtists() {
	clusters := clusterVertices(b.store.artistOrder, func(v *ArtistVertex) string {
		return strings.ToLower(v.artist.Name)
	})

	for _, cluster := range clusters {
		if len(cluster) < 2 {
			continue
		}

		fullCoverage := true
		for _, vertex := range cluster {
			if vertex.artist.MBID == "" {
				fullCoverage = false
				break
			}
		}

		if fullCoverage {
			groups := clusterVertices(cluster, func(v *ArtistVertex) string {
				return v.artist.MBID
			})
			for _, group := range groups {
				b.mergeArtists(group)
			}
			continue
		}

		b.mergeArtists(b.stripArtistIDs(cluster))
	}
}

// resolveAlbums is resolveArtists for album vertices.
func (b *Builder) resolveAlbums() {
	clusters := clusterVertices(b.store.albumOrder, func(v *AlbumVertex) string {
		return strings.ToLower(v.album.Name)
	})

	for _, cluster := range clusters {
		if len(cluster) < 2 {
			continue
		}

		fullCoverage := true
		for _, vertex := range cluster {
			if vertex.album.MBID == "" {
				fullCoverage = false
				break
			}
		}

		if fullCoverage {
			groups := clusterVertices(cluster, func(v *AlbumVertex) string {
				return v.album.MBID
			})
			for _, group := range groups {
				b.mergeAlbums(group)
			}
			continue
		}

		b.mergeAlbums(b.stripAlbumIDs(cluster))
	}
}

// stripArtistIDs removes the external ID from every vertex of a name
// cluster. Each ID-carrying vertex is routed through the store keyed on its
// ID-less descriptor and melded into the vertex registered there. It returns
// the surviving vertices of the cluster.
func (b *Builder) stripArtistIDs(cluster []*ArtistVertex) []*ArtistVertex {
	stripped := make([]*ArtistVertex, 0, len(cluster))

	for _, vertex := range cluster {
		if vertex.artist.MBID == "" {
			if !slices.Contains(stripped, vertex) {
				stripped = append(stripped, vertex)
			}
			continue
		}

		bare, _ := b.store.getOrCreateArtist(vertex.artist.WithoutMBID())
		b.meldArtists(vertex, bare)
		if !slices.Contains(stripped, bare) {
			stripped = append(stripped, bare)
		}
	}

	return stripped
}

// stripAlbumIDs is stripArtistIDs for album vertices.
func (b *Builder) stripAlbumIDs(cluster []*AlbumVertex) []*AlbumVertex {
	stripped := make([]*AlbumVertex, 0, len(cluster))

	for _, vertex := range cluster {
		if vertex.album.MBID == "" {
			if !slices.Contains(stripped, vertex) {
				stripped = append(stripped, vertex)
			}
			continue
		}

		bare, _ := b.store.getOrCreateAlbum(vertex.album.WithoutMBID())
		b.meldAlbums(vertex, bare)
		if !slices.Contains(stripped, bare) {
			stripped = append(stripped, bare)
		}
	}

	return stripped
}

// mergeArtists melds all members of one final merge group into its canonical
// vertex.
func (b *Builder) mergeArtists(group []*ArtistVertex) {
	if len(group) < 2 {
		return
	}

	canonical := canonicalVertex(group,
		func(v *ArtistVertex) int { return len(v.songs) },
		func(v *ArtistVertex) string { return v.artist.Key() },
	)
	for _, vertex := range group {
		if vertex != canonical {
			b.meldArtists(vertex, canonical)
		}
	}
}

// mergeAlbums melds all members of one final merge group into its canonical
// vertex.
func (b *Builder) mergeAlbums(group []*AlbumVertex) {
	if len(group) < 2 {
		return
	}

	canonical := canonicalVertex(group,
		func(v *AlbumVertex) int { return len(v.songs) },
		func(v *AlbumVertex) string { return v.album.Key() },
	)
	for _, vertex := range group {
		if vertex != canonical {
			b.meldAlbums(vertex, canonical)
		}
	}
}

// meldGenres merges the src genre vertex into dst. The adjacency of src is
// unioned into dst and every neighbor reference to src is rewritten to point
// at dst, dropping edges which would duplicate an existing one. src is
// removed from the store and must not be used afterwards.
//
// A neighbor which does not reference src back means the bidirectional
// adjacency invariant was broken by an earlier mutation. No consistent graph
// can be recovered from that, so it is a panic and not an error.
func (b *Builder) meldGenres(src, dst *GenreVertex) {
	for _, song := range src.songs {
		i := slices.Index(song.genres, src)
		if i < 0 {
			panic(fmt.Sprintf(
				"graph: song `%s` does not reference melded genre `%s` back",
				song.song.Path, src.genre.Name,
			))
		}
		if slices.Contains(song.genres, dst) {
			song.genres = slices.Delete(song.genres, i, i+1)
		} else {
			song.genres[i] = dst
		}
		if !slices.Contains(dst.songs, song) {
			dst.songs = append(dst.songs, song)
		}
	}

	for _, artist := range src.artists {
		i := slices.Index(artist.genres, src)
		if i < 0 {
			panic(fmt.Sprintf(
				"graph: artist `%s` does not reference melded genre `%s` back",
				artist.artist.Name, src.genre.Name,
			))
		}
		if slices.Contains(artist.genres, dst) {
			artist.genres = slices.Delete(artist.genres, i, i+1)
		} else {
			artist.genres[i] = dst
		}
		if !slices.Contains(dst.artists, artist) {
			dst.artists = append(dst.artists, artist)
		}
	}

	b.store.removeGenre(src)
}

// meldArtists merges the src artist vertex into dst. See meldGenres for the
// mechanics.
func (b *Builder) meldArtists(src, dst *ArtistVertex) {
	for _, song := range src.songs {
		i := slices.Index(song.artists, src)
		if i < 0 {
			panic(fmt.Sprintf(
				"graph: song `%s` does not reference melded artist `%s` back",
				song.song.Path, src.artist.Name,
			))
		}
		if slices.Contains(song.artists, dst) {
			song.artists = slices.Delete(song.artists, i, i+1)
		} else {
			song.artists[i] = dst
		}
		if !slices.Contains(dst.songs, song) {
			dst.songs = append(dst.songs, song)
		}
	}

	for _, album := range src.albums {
		i := slices.Index(album.artists, src)
		if i < 0 {
			panic(fmt.Sprintf(
				"graph: album `%s` does not reference melded artist `%s` back",
				album.album.Name, src.artist.Name,
			))
		}
		if slices.Contains(album.artists, dst) {
			album.artists = slices.Delete(album.artists, i, i+1)
		} else {
			album.artists[i] = dst
		}
		if !slices.Contains(dst.albums, album) {
			dst.albums = append(dst.albums, album)
		}
	}

	for _, genre := range src.genres {
		i := slices.Index(genre.artists, src)
		if i < 0 {
			panic(fmt.Sprintf(
				"graph: genre `%s` does not reference melded artist `%s` back",
				genre.genre.Name, src.artist.Name,
			))
		}
		if slices.Contains(genre.artists, dst) {
			genre.artists = slices.Delete(genre.artists, i, i+1)
		} else {
			genre.artists[i] = dst
		}
		if !slices.Contains(dst.genres, genre) {
			dst.genres = append(dst.genres, genre)
		}
	}

	b.store.removeArtist(src)
}

// meldAlbums merges the src album vertex into dst. See meldGenres for the
// mechanics. Songs reference exactly one album so their references are
// reassigned instead of rewritten in a list.
func (b *Builder) meldAlbums(src, dst *AlbumVertex) {
	for _, song := range src.songs {
		if song.album != src {
			panic(fmt.Sprintf(
				"graph: song `%s` does not reference melded album `%s` back",
				song.song.Path, src.album.Name,
			))
		}
		song.album = dst
		if !slices.Contains(dst.songs, song) {
			dst.songs = append(dst.songs, song)
		}
	}

	for _, artist := range src.artists {
		i := slices.Index(artist.albums, src)
		if i < 0 {
			panic(fmt.Sprintf(
				"graph: artist `%s` does not reference melded album `%s` back",
				artist.artist.Name, src.album.Name,
			))
		}
		if slices.Contains(artist.albums, dst) {
			artist.albums = slices.Delete(artist.albums, i, i+1)
		} else {
			artist.albums[i] = dst
		}
		if !slices.Contains(dst.artists, artist) {
			dst.artists = append(dst.artists, artist)
		}
	}

	b.store.removeAlbum(src)
}

// clusterVertices groups vertices by the given key function. Clusters are
// returned in order of their first member and keep their members in input
// order so that resolution is deterministic.
func clusterVertices[V comparable](vertices []V, key func(V) string) [][]V {
	positions := make(map[string]int)
	var clusters [][]V

	for _, vertex := range vertices {
		k := key(vertex)
		if i, found := positions[k]; found {
			clusters[i] = append(clusters[i], vertex)
			continue
		}
		positions[k] = len(clusters)
		clusters = append(clusters, []V{vertex})
	}

	return clusters
}

// canonicalVertex picks the vertex of a merge group which all others will be
// melded into. The one with the most directly associated songs wins. Ties go
// to the lexicographically smallest descriptor key which keeps the choice
// independent of insertion order.
func canonicalVertex[V comparable](group []V, songCount func(V) int, key func(V) string) V {
	canonical := group[0]
	for _, vertex := range group[1:] {
		count, best := songCount(vertex), songCount(canonical)
		if count > best || (count == best && key(vertex) < key(canonical)) {
			canonical = vertex
		}
	}
	return canonical
}
