package action

import (
	"context"
	"fmt"

	"github.com/nadzzz/squeezeyard/internal/grammar"
	"github.com/nadzzz/squeezeyard/internal/player"
)

func play(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	old, err := env.mode(ctx, p, "")
	if err != nil {
		return "", err
	}
	now, err := env.mode(ctx, p, "play")
	if err != nil {
		return "", err
	}
	desc, playing, err := env.currentTrack(ctx, p)
	if err != nil {
		return "", err
	}
	switch {
	case now != "play":
		return fmt.Sprintf("Failed to start %s playing.", p.Name), nil
	case old == "play" || !playing:
		return fmt.Sprintf("%s already playing.", p.GroupName), nil
	default:
		return fmt.Sprintf("Started playing %s on %s.", desc, p.GroupName), nil
	}
}

func stop(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	old, err := env.mode(ctx, p, "")
	if err != nil {
		return "", err
	}
	now, err := env.mode(ctx, p, "stop")
	if err != nil {
		return "", err
	}
	switch {
	case now != "stop":
		return fmt.Sprintf("Failed to stop %s.", p.Name), nil
	case old == "stop":
		return fmt.Sprintf("%s already stopped.", p.GroupName), nil
	default:
		return fmt.Sprintf("%s stopped.", p.GroupName), nil
	}
}

func pause(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	old, err := env.mode(ctx, p, "")
	if err != nil {
		return "", err
	}
	now, err := env.mode(ctx, p, "pause")
	if err != nil {
		return "", err
	}
	switch {
	case now != "pause":
		return fmt.Sprintf("Failed to pause %s.", p.Name), nil
	case old == "pause":
		return fmt.Sprintf("%s already paused.", p.GroupName), nil
	default:
		return fmt.Sprintf("%s now paused.", p.GroupName), nil
	}
}

func next(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	return env.skip(ctx, p, "+1")
}

func previous(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	return env.skip(ctx, p, "-1")
}

// skip moves through the playlist by delta.
func (e *Env) skip(ctx context.Context, p player.Player, delta string) (string, error) {
	tracks, err := e.playlistTracks(ctx, p)
	if err != nil {
		return "", err
	}
	if tracks == 0 {
		return fmt.Sprintf("%s playlist is empty.", p.Name), nil
	}
	index, err := e.playlistIndex(ctx, p, delta)
	if err != nil {
		return "", err
	}
	desc, playing, err := e.currentTrack(ctx, p)
	if err != nil {
		return "", err
	}
	if !playing {
		return fmt.Sprintf("Moved to track %d of %d on %s.", index+1, tracks, p.GroupName), nil
	}
	return fmt.Sprintf("Now playing %s on %s.", desc, p.GroupName), nil
}

func restart(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	tracks, err := env.playlistTracks(ctx, p)
	if err != nil {
		return "", err
	}
	if tracks == 0 {
		return fmt.Sprintf("%s playlist is empty.", p.Name), nil
	}
	if _, err := env.invoke(ctx, p, "time", "0"); err != nil {
		return "", err
	}
	if _, err := env.mode(ctx, p, "play"); err != nil {
		return "", err
	}
	desc, playing, err := env.currentTrack(ctx, p)
	if err != nil {
		return "", err
	}
	switch {
	case !playing:
		return fmt.Sprintf("Failed to start %s playing.", p.Name), nil
	case p.Playing:
		return fmt.Sprintf("Restarted %s on %s.", desc, p.GroupName), nil
	default:
		return fmt.Sprintf("Started playing %s on %s.", desc, p.GroupName), nil
	}
}
