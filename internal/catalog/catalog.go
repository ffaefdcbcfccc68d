// Package catalog resolves a spoken search phrase against the media server's
// library.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nadzzz/squeezeyard/internal/gateway"
)

// PageSize is the number of items requested per catalog page.
const PageSize = 100

// Item is one catalog entry.
type Item struct {
	ID   string
	Name string
}

// Scope narrows a search to the children of a parent item.
type Scope struct {
	ArtistID string
}

// Result is the accepted set of matches for one item type. IDs and Names are
// index-aligned.
type Result struct {
	Type  string
	IDs   []string
	Names []string
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool { return len(r.IDs) == 0 }

// Searcher queries the catalog through a gateway.
type Searcher struct {
	gw gateway.Gateway
}

// NewSearcher creates a Searcher.
func NewSearcher(gw gateway.Gateway) *Searcher {
	return &Searcher{gw: gw}
}

// serverType maps a query type to the server's noun.
func serverType(typ string) string {
	if typ == "track" {
		return "title"
	}
	return typ
}

// Fetch returns every item of typ the server considers a match for query.
// Playlists cannot be searched by name server-side, so all of them are
// fetched.
func (s *Searcher) Fetch(ctx context.Context, typ, query string, scope Scope) ([]Item, error) {
	noun := serverType(typ)
	var tagged []string
	if query != "" && typ != "playlist" {
		tagged = append(tagged, "search:"+query)
	}
	if scope.ArtistID != "" {
		tagged = append(tagged, "artist_id:"+scope.ArtistID)
	}

	var items []Item
	for {
		cmd := append([]string{noun + "s", fmt.Sprint(len(items)), fmt.Sprint(PageSize)}, tagged...)
		res, err := s.gw.Invoke(ctx, "", cmd...)
		if err != nil {
			return nil, fmt.Errorf("searching %ss: %w", typ, err)
		}
		page := res.Loop(noun + "s_loop")
		for _, rec := range page {
			items = append(items, Item{ID: rec.String("id"), Name: rec.String(noun)})
		}
		if len(items) >= res.Count() {
			break
		}
		if len(page) == 0 {
			slog.Warn("catalog returned no items before reaching its count", "type", typ, "have", len(items), "count", res.Count())
			break
		}
	}

	slog.Debug("catalog search", "type", typ, "query", query, "items", len(items))
	return items, nil
}

// Search tries each type in order and returns the first accepted result.
// Playlists are only accepted when exactly one matches; any other type when at
// least one does. An empty Result means nothing matched.
func (s *Searcher) Search(ctx context.Context, types []string, query string, scope Scope) (Result, error) {
	m := NewMatcher(query)
	for _, typ := range types {
		items, err := s.Fetch(ctx, typ, query, scope)
		if err != nil {
			return Result{}, err
		}
		hits := m.Filter(items)
		accepted := len(hits) > 0
		if typ == "playlist" {
			accepted = len(hits) == 1
		}
		if !accepted {
			continue
		}
		res := Result{Type: typ, IDs: make([]string, len(hits)), Names: make([]string, len(hits))}
		for i, it := range hits {
			res.IDs[i] = it.ID
			res.Names[i] = it.Name
		}
		return res, nil
	}
	return Result{}, nil
}
