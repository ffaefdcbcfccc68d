package action

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nadzzz/squeezeyard/internal/grammar"
	"github.com/nadzzz/squeezeyard/internal/player"
)

// volumeSet passes the requested percentage through unchanged; the server
// clamps it, and the reply reports the value read back.
func volumeSet(ctx context.Context, env *Env, p player.Player, args grammar.Args) (string, error) {
	old, err := env.volume(ctx, p, "")
	if err != nil {
		return "", err
	}
	now, err := env.volume(ctx, p, strconv.Itoa(args.Percent))
	if err != nil {
		return "", err
	}
	switch {
	case now == old:
		return fmt.Sprintf("%s volume was already set to %d%%.", p.Name, now), nil
	case now > old:
		return fmt.Sprintf("%s volume increased to %d%%.", p.Name, now), nil
	default:
		return fmt.Sprintf("%s volume decreased to %d%%.", p.Name, now), nil
	}
}

func volumeUp(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	old, err := env.volume(ctx, p, "")
	if err != nil {
		return "", err
	}
	now, err := env.volume(ctx, p, fmt.Sprintf("+%d", env.step()))
	if err != nil {
		return "", err
	}
	if old >= 100 {
		return fmt.Sprintf("%s was already at maximum volume.", p.Name), nil
	}
	return fmt.Sprintf("%s volume increased to %d%%.", p.Name, now), nil
}

func volumeDown(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	old, err := env.volume(ctx, p, "")
	if err != nil {
		return "", err
	}
	now, err := env.volume(ctx, p, fmt.Sprintf("-%d", env.step()))
	if err != nil {
		return "", err
	}
	if old <= 0 {
		return fmt.Sprintf("%s was already at minimum volume.", p.Name), nil
	}
	return fmt.Sprintf("%s volume decreased to %d%%.", p.Name, now), nil
}
