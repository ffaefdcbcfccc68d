package grammar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Canonical query types, in the order they are searched when the command did
// not name one.
const (
	TypePlaylist = "playlist"
	TypeGenre    = "genre"
	TypeArtist   = "artist"
	TypeAlbum    = "album"
	TypeTrack    = "track"
)

// QueryTypes is the default search order.
var QueryTypes = []string{TypePlaylist, TypeGenre, TypeArtist, TypeAlbum, TypeTrack}

var queryTypeAliases = map[string]string{
	"tracks by": TypeArtist,
	"songs by":  TypeArtist,
	"titles by": TypeArtist,
	"tunes by":  TypeArtist,
	"music by":  TypeArtist,
	"record":    TypeAlbum,
	"song":      TypeTrack,
	"title":     TypeTrack,
	"tune":      TypeTrack,
}

// Args are the normalized parameters of a parsed command.
type Args struct {
	Player    string // empty when the command did not name a player
	Percent   int
	QueryType string // one of QueryTypes, or empty
	Query     string
	Input     string
}

// CanonicalQueryType lower-cases a captured query type and resolves aliases.
// Applying it to its own output returns the same value.
func CanonicalQueryType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canon, ok := queryTypeAliases[s]; ok {
		return canon
	}
	return s
}

// ParsePercent converts a captured number. Digit words take precedence over
// numerals; the value is not range checked. Numerals too long for an int
// saturate and are left for the server to clamp.
func ParsePercent(s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, w := range DigitWords {
		if strings.EqualFold(s, w) {
			return i, nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("parsing percentage %q: %w", s, err)
	}
	return int(n), nil
}

// Normalize converts raw captures into Args.
func Normalize(params map[string]string) (Args, error) {
	args := Args{
		Player: params[ParamPlayer],
		Query:  params[ParamQuery],
		Input:  params[ParamInput],
	}
	if qt, ok := params[ParamQueryType]; ok {
		args.QueryType = CanonicalQueryType(qt)
	}
	if p, ok := params[ParamPercent]; ok {
		n, err := ParsePercent(p)
		if err != nil {
			return Args{}, err
		}
		args.Percent = n
	}
	return args, nil
}
