package action

import (
	"context"
	"fmt"

	"github.com/nadzzz/squeezeyard/internal/grammar"
	"github.com/nadzzz/squeezeyard/internal/player"
)

func powerOn(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	on, err := env.setPower(ctx, p, true)
	if err != nil {
		return "", err
	}
	switch {
	case !on:
		return fmt.Sprintf("Failed to turn %s on.", p.Name), nil
	case p.Power:
		return fmt.Sprintf("%s was already on.", p.Name), nil
	default:
		return fmt.Sprintf("%s is now on.", p.Name), nil
	}
}

func powerOff(ctx context.Context, env *Env, p player.Player, _ grammar.Args) (string, error) {
	if !p.CanPowerOff {
		return fmt.Sprintf("%s cannot be powered off.", p.Name), nil
	}
	on, err := env.setPower(ctx, p, false)
	if err != nil {
		return "", err
	}
	switch {
	case on:
		return fmt.Sprintf("Failed to turn %s off.", p.Name), nil
	case !p.Power:
		return fmt.Sprintf("%s was already off.", p.Name), nil
	default:
		return fmt.Sprintf("%s is now off.", p.Name), nil
	}
}

// setPower switches p and returns the power state read back afterwards.
func (e *Env) setPower(ctx context.Context, p player.Player, on bool) (bool, error) {
	arg := "0"
	if on {
		arg = "1"
	}
	if _, err := e.invoke(ctx, p, "power", arg); err != nil {
		return false, err
	}
	res, err := e.query(ctx, p, "power")
	if err != nil {
		return false, err
	}
	return res.Bool("_power"), nil
}
