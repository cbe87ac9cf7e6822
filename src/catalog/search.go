package catalog

import "strings"

// SearchResult groups the entities whose names matched a search query.
type SearchResult struct {
	Songs   []*Song
	Albums  []*Album
	Artists []*Artist
	Genres  []*Genre
}

// Search returns all entities whose title or name contains the query, case
// insensitively. The results keep the catalog listing order. An empty query
// matches nothing.
func (c *Catalog) Search(query string) SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	var result SearchResult
	if query == "" {
		return result
	}

	for _, song := range c.songs {
		if strings.Contains(strings.ToLower(song.Title()), query) {
			result.Songs = append(result.Songs, song)
		}
	}
	for _, album := range c.albums {
		if strings.Contains(strings.ToLower(album.Name()), query) {
			result.Albums = append(result.Albums, album)
		}
	}
	for _, artist := range c.artists {
		if strings.Contains(strings.ToLower(artist.Name()), query) {
			result.Artists = append(result.Artists, artist)
		}
	}
	for _, genre := range c.genres {
		if strings.Contains(strings.ToLower(genre.Name()), query) {
			result.Genres = append(result.Genres, genre)
		}
	}

	return result
}
