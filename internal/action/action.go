// Package action implements the handlers bound to grammar actions.
//
// A handler acts on one resolved player. It composes a short, fixed sequence
// of gateway calls, issued one after another, and turns the outcome into the
// sentence returned to the user. The first failed call aborts the handler and
// its error is returned unchanged apart from wrapping.
package action

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nadzzz/squeezeyard/internal/catalog"
	"github.com/nadzzz/squeezeyard/internal/gateway"
	"github.com/nadzzz/squeezeyard/internal/grammar"
	"github.com/nadzzz/squeezeyard/internal/message"
	"github.com/nadzzz/squeezeyard/internal/player"
)

// DefaultVolumeStep is the relative change applied by louder and quieter.
const DefaultVolumeStep = 10

// PlaylistView receives the playlist window produced by a status command.
type PlaylistView func(entries []message.PlaylistEntry)

// Env carries what a handler needs besides the player and its arguments.
type Env struct {
	Gateway gateway.Gateway
	Catalog *catalog.Searcher
	Roster  player.Roster

	// VolumeStep is the louder/quieter increment; zero means DefaultVolumeStep.
	VolumeStep int

	// PlaylistWindow is how many entries either side of the current track a
	// status command reports.
	PlaylistWindow int

	// View is optional.
	View PlaylistView
}

// Handler performs one action and returns the response text.
type Handler func(ctx context.Context, env *Env, p player.Player, args grammar.Args) (string, error)

var handlers = map[grammar.Action]Handler{
	grammar.ActionCancel:       cancel,
	grammar.ActionUnknown:      dontUnderstand,
	grammar.ActionPowerOn:      powerOn,
	grammar.ActionPowerOff:     powerOff,
	grammar.ActionStatus:       status,
	grammar.ActionVolumeSet:    volumeSet,
	grammar.ActionVolumeUp:     volumeUp,
	grammar.ActionVolumeDown:   volumeDown,
	grammar.ActionPlay:         play,
	grammar.ActionStop:         stop,
	grammar.ActionPause:        pause,
	grammar.ActionNext:         next,
	grammar.ActionPrevious:     previous,
	grammar.ActionRestart:      restart,
	grammar.ActionPlaylistLoad: playlistLoad,
}

// Lookup returns the handler bound to a.
func Lookup(a grammar.Action) (Handler, bool) {
	h, ok := handlers[a]
	return h, ok
}

// CancelMessage is the reply to a command that asks for nothing to be done.
const CancelMessage = "OK, I won't do anything."

func cancel(context.Context, *Env, player.Player, grammar.Args) (string, error) {
	return CancelMessage, nil
}

// DontUnderstand is the reply to input no command template accepts.
func DontUnderstand(input string) string {
	return fmt.Sprintf("Sorry, I don't understand '%s'.", input)
}

func dontUnderstand(_ context.Context, _ *Env, _ player.Player, args grammar.Args) (string, error) {
	return DontUnderstand(args.Input), nil
}

// TextList joins names into an English list: "a", "a and b", "a, b, and c".
// Lists longer than limit are cut to their first limit-1 names followed by
// "another" or "<k> others".
func TextList(names []string, limit int) string {
	if len(names) == 0 {
		return ""
	}
	items := append([]string(nil), names...)
	if limit > 0 && len(items) > limit {
		keep := limit - 1
		others := len(items) - keep
		items = items[:keep]
		if others == 1 {
			items = append(items, "another")
		} else {
			items = append(items, fmt.Sprintf("%d others", others))
		}
	}

	last := items[len(items)-1]
	items = items[:len(items)-1]
	switch len(items) {
	case 0:
		return last
	case 1:
		return items[0] + " and " + last
	default:
		return strings.Join(items, ", ") + ", and " + last
	}
}

func (e *Env) step() int {
	if e.VolumeStep <= 0 {
		return DefaultVolumeStep
	}
	return e.VolumeStep
}

// invoke sends a player command, wrapping failures with the command text.
func (e *Env) invoke(ctx context.Context, p player.Player, command ...string) (gateway.Result, error) {
	res, err := e.Gateway.Invoke(ctx, p.ID, command...)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", p.Name, strings.Join(command, " "), err)
	}
	return res, nil
}

func (e *Env) query(ctx context.Context, p player.Player, command ...string) (gateway.Result, error) {
	return e.invoke(ctx, p, append(command, "?")...)
}

// mode sets the playback mode when set is non-empty, then reads it back.
func (e *Env) mode(ctx context.Context, p player.Player, set string) (string, error) {
	if set != "" {
		// "pause 1" pauses rather than toggling
		if _, err := e.invoke(ctx, p, set, "1"); err != nil {
			return "", err
		}
	}
	res, err := e.query(ctx, p, "mode")
	if err != nil {
		return "", err
	}
	return res.String("_mode"), nil
}

// volume applies set ("40", "+10", "-10") when non-empty, then reads the
// volume back.
func (e *Env) volume(ctx context.Context, p player.Player, set string) (int, error) {
	if set != "" {
		if _, err := e.invoke(ctx, p, "mixer", "volume", set); err != nil {
			return 0, err
		}
	}
	res, err := e.query(ctx, p, "mixer", "volume")
	if err != nil {
		return 0, err
	}
	return res.Int("_volume"), nil
}

func (e *Env) playlistTracks(ctx context.Context, p player.Player) (int, error) {
	res, err := e.query(ctx, p, "playlist", "tracks")
	if err != nil {
		return 0, err
	}
	return res.Int("_tracks"), nil
}

// playlistIndex moves to set ("+1", "-1", "4") when non-empty and returns the
// 0-based index the player is on.
func (e *Env) playlistIndex(ctx context.Context, p player.Player, set string) (int, error) {
	if set != "" {
		if _, err := e.invoke(ctx, p, "playlist", "index", set); err != nil {
			return 0, err
		}
	}
	res, err := e.query(ctx, p, "playlist", "index")
	if err != nil {
		return 0, err
	}
	return res.Int("_index"), nil
}

type trackInfo struct {
	Title  string
	Artist string
	Album  string
	Remote bool
}

// track describes the playlist entry at index, or the current track when
// index is negative.
func (e *Env) track(ctx context.Context, p player.Player, index int) (trackInfo, error) {
	var info trackInfo
	for _, field := range []string{"artist", "album", "title", "remote"} {
		cmd := []string{field}
		if index >= 0 {
			cmd = []string{"playlist", field, strconv.Itoa(index)}
		}
		res, err := e.query(ctx, p, cmd...)
		if err != nil {
			return trackInfo{}, err
		}
		key := "_" + field
		switch field {
		case "artist":
			info.Artist = res.String(key)
		case "album":
			info.Album = res.String(key)
		case "title":
			info.Title = res.String(key)
		case "remote":
			info.Remote = res.Bool(key)
		}
	}
	return info, nil
}

func (t trackInfo) describe() string {
	desc := t.Title
	if desc == "" {
		desc = "an unknown track"
	}
	if !t.Remote {
		if t.Album != "" {
			desc += " from " + t.Album
		}
		if t.Artist != "" {
			desc += " by " + t.Artist
		}
	}
	return desc
}

// currentTrack describes what p is playing. ok is false when p is not
// playing.
func (e *Env) currentTrack(ctx context.Context, p player.Player) (desc string, ok bool, err error) {
	mode, err := e.mode(ctx, p, "")
	if err != nil || mode != "play" {
		return "", false, err
	}
	info, err := e.track(ctx, p, -1)
	if err != nil {
		return "", false, err
	}
	return info.describe(), true, nil
}
