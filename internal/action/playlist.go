package action

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/nadzzz/squeezeyard/internal/catalog"
	"github.com/nadzzz/squeezeyard/internal/grammar"
	"github.com/nadzzz/squeezeyard/internal/player"
)

// compoundQuery splits "<item> by <artist>".
var compoundQuery = regexp.MustCompile(`(?i)^(.*\S) by (\S.*)$`)

// maxListed is the number of names spelled out before a list is summarised.
const maxListed = 4

func playlistLoad(ctx context.Context, env *Env, p player.Player, args grammar.Args) (string, error) {
	types := grammar.QueryTypes
	if args.QueryType != "" {
		types = []string{args.QueryType}
	}
	query := args.Query

	res, err := env.Catalog.Search(ctx, types, query, catalog.Scope{})
	if err != nil {
		return "", err
	}

	var artist string
	if res.Empty() {
		m := compoundQuery.FindStringSubmatch(query)
		scoped := slices.DeleteFunc(slices.Clone(types), func(t string) bool {
			return t != grammar.TypeAlbum && t != grammar.TypeTrack
		})
		if m != nil && len(scoped) > 0 {
			query = m[1]
			res, artist, err = env.searchByArtist(ctx, scoped, m[1], m[2])
			if err != nil {
				return "", err
			}
		}
	}
	if res.Empty() {
		return fmt.Sprintf("Unable to locate %s on your server.", args.Query), nil
	}
	slog.Debug("playlist search matched", "type", res.Type, "items", len(res.IDs), "artist", artist)

	count, err := env.loadPlaylist(ctx, p, res)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return fmt.Sprintf("No tracks added to %s playlist.", p.GroupName), nil
	}

	var desc string
	if count == 1 {
		track, playing, err := env.currentTrack(ctx, p)
		if err != nil {
			return "", err
		}
		desc = query
		if playing {
			desc = track
		}
	} else {
		desc = describeResult(res, count, query)
		if artist != "" {
			desc += " by " + artist
		}
	}
	return fmt.Sprintf("Playing %s on %s.", desc, p.GroupName), nil
}

// searchByArtist looks up artistQuery, then searches for item among each
// matching artist's works in turn. It returns the first non-empty result and
// the name of the artist it was found under.
func (e *Env) searchByArtist(ctx context.Context, types []string, item, artistQuery string) (catalog.Result, string, error) {
	artists, err := e.Catalog.Search(ctx, []string{grammar.TypeArtist}, artistQuery, catalog.Scope{})
	if err != nil {
		return catalog.Result{}, "", err
	}
	for i, id := range artists.IDs {
		res, err := e.Catalog.Search(ctx, types, item, catalog.Scope{ArtistID: id})
		if err != nil {
			return catalog.Result{}, "", err
		}
		if !res.Empty() {
			return res, artists.Names[i], nil
		}
	}
	return catalog.Result{}, "", nil
}

// loadPlaylist replaces p's playlist with the first matched item and appends
// the rest. Tracks go in a single request. It returns the number of tracks
// added.
func (e *Env) loadPlaylist(ctx context.Context, p player.Player, res catalog.Result) (int, error) {
	ids := res.IDs
	if res.Type == grammar.TypeTrack {
		ids = []string{strings.Join(ids, ",")}
	}

	count := 0
	cmd := "load"
	for _, id := range ids {
		out, err := e.invoke(ctx, p, "playlistcontrol", "cmd:"+cmd, res.Type+"_id:"+id)
		if err != nil {
			return 0, err
		}
		count += out.Count()
		cmd = "add"
	}
	return count, nil
}

func describeResult(res catalog.Result, count int, query string) string {
	names := TextList(res.Names, maxListed)
	switch res.Type {
	case grammar.TypePlaylist:
		return fmt.Sprintf("%d tracks from playlist %s", count, names)
	case grammar.TypeGenre:
		if len(res.IDs) == 1 {
			return fmt.Sprintf("%d %s tracks", count, strings.ToLower(res.Names[0]))
		}
		return fmt.Sprintf("%d tracks in genres %s", count, names)
	case grammar.TypeArtist:
		return fmt.Sprintf("%d tracks by %s", count, names)
	case grammar.TypeAlbum:
		return "album " + names
	default:
		return fmt.Sprintf("%d tracks matching %s", count, query)
	}
}
