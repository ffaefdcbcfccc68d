// Package gateway defines the contract between the command engine and the
// remote media server.
//
// Every device and catalog operation is expressed as a command vector: an
// ordered list of string tokens such as ["mixer", "volume", "?"]. The gateway
// sends the vector, scoped to a player (or to the server when the player id is
// empty), and returns the decoded result object.
package gateway

import (
	"context"
	"strings"

	"github.com/spf13/cast"
)

// Gateway issues a single command to the media server.
type Gateway interface {
	// Invoke sends command to the server. playerID may be empty for
	// server-scoped commands (player roster, catalog queries).
	Invoke(ctx context.Context, playerID string, command ...string) (Result, error)
}

// Result is the result object of a reply. Scalar answers to "?" queries are
// keyed with a leading underscore ("_volume", "_mode"); paged queries carry a
// "count" and a "<noun>_loop" list of records.
type Result map[string]any

// String returns the field as a string, or "" when missing.
func (r Result) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// Int returns the field as an int. Servers report numbers both as JSON numbers
// and as strings; anything unparsable yields 0.
func (r Result) Int(key string) int {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	if s, isStr := v.(string); isStr {
		return int(cast.ToFloat64(strings.TrimSpace(s)))
	}
	return cast.ToInt(v)
}

// Bool interprets the field as a flag ("1", 1, true).
func (r Result) Bool(key string) bool {
	switch v := r[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return cast.ToFloat64(strings.TrimSpace(v)) != 0
	default:
		return cast.ToFloat64(v) != 0
	}
}

// Has reports whether the field is present and non-nil.
func (r Result) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Count returns the total item count of a paged reply.
func (r Result) Count() int {
	return r.Int("count")
}

// Loop returns the records of a paged reply, e.g. Loop("players_loop").
func (r Result) Loop(key string) []Result {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Result, 0, len(raw))
	for _, item := range raw {
		switch rec := item.(type) {
		case map[string]any:
			out = append(out, Result(rec))
		case Result:
			out = append(out, rec)
		}
	}
	return out
}

// Query asks for the current value of a setting and returns the reply.
// Query(ctx, gw, id, "mixer", "volume") sends ["mixer", "volume", "?"].
func Query(ctx context.Context, gw Gateway, playerID string, command ...string) (Result, error) {
	vec := make([]string, 0, len(command)+1)
	vec = append(vec, command...)
	vec = append(vec, "?")
	return gw.Invoke(ctx, playerID, vec...)
}

// Version asks the server for its version string. It is the cheapest
// round trip the protocol offers and doubles as a reachability probe.
func Version(ctx context.Context, gw Gateway) (string, error) {
	res, err := Query(ctx, gw, "", "version")
	if err != nil {
		return "", err
	}
	return res.String("_version"), nil
}
