package action

import (
	"context"
	"fmt"

	"github.com/nadzzz/squeezeyard/internal/grammar"
	"github.com/nadzzz/squeezeyard/internal/message"
	"github.com/nadzzz/squeezeyard/internal/player"
)

func status(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	if err := env.showPlaylist(ctx, p); err != nil {
		return "", err
	}

	desc, playing, err := env.currentTrack(ctx, p)
	if err != nil {
		return "", err
	}
	if !playing {
		if !p.Power {
			return fmt.Sprintf("%s is currently switched off.", p.Name), nil
		}
		mode, err := env.mode(ctx, p, "")
		if err != nil {
			return "", err
		}
		switch mode {
		case "stop":
			return fmt.Sprintf("%s is currently stopped.", p.GroupName), nil
		case "pause":
			return fmt.Sprintf("%s is currently paused.", p.GroupName), nil
		}
		desc = "an unknown track"
	}
	return fmt.Sprintf("Currently playing %s on %s.", desc, p.GroupName), nil
}

// showPlaylist sends the entries around the current track to env.View.
func (e *Env) showPlaylist(ctx context.Context, p player.Player) error {
	if e.View == nil {
		return nil
	}
	tracks, err := e.playlistTracks(ctx, p)
	if err != nil || tracks == 0 {
		return err
	}
	current, err := e.playlistIndex(ctx, p, "")
	if err != nil {
		return err
	}

	window := max(e.PlaylistWindow, 0)
	begin := max(0, current-window)
	end := min(tracks, current+window+1)
	entries := make([]message.PlaylistEntry, 0, end-begin)
	for i := begin; i < end; i++ {
		info, err := e.track(ctx, p, i)
		if err != nil {
			return err
		}
		entries = append(entries, message.PlaylistEntry{
			Position: i + 1,
			Title:    info.Title,
			Artist:   info.Artist,
			Album:    info.Album,
			Current:  i == current,
		})
	}
	e.View(entries)
	return nil
}
