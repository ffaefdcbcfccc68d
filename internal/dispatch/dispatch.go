// Package dispatch implements the command processing engine.
//
// The dispatcher receives free-text commands from transports, matches them
// against the grammar compiled for the current player roster, resolves the
// target player and runs the bound action. Every request gets a reply: faults
// are turned into reply text here and never reach the transport as errors.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nadzzz/squeezeyard/internal/action"
	"github.com/nadzzz/squeezeyard/internal/catalog"
	"github.com/nadzzz/squeezeyard/internal/config"
	"github.com/nadzzz/squeezeyard/internal/gateway"
	"github.com/nadzzz/squeezeyard/internal/grammar"
	"github.com/nadzzz/squeezeyard/internal/message"
	"github.com/nadzzz/squeezeyard/internal/player"
)

// NoPlayersMessage is the reply when the server has no connected players.
const NoPlayersMessage = "There are no Squeezebox players connected to the server."

// Dispatcher is the central command engine.
type Dispatcher struct {
	gw        gateway.Gateway
	catalog   *catalog.Searcher
	templates []grammar.Template
	commands  config.CommandsConfig
}

// New creates a Dispatcher that executes commands through gw.
func New(gw gateway.Gateway, commands config.CommandsConfig) *Dispatcher {
	return &Dispatcher{
		gw:        gw,
		catalog:   catalog.NewSearcher(gw),
		templates: grammar.Templates,
		commands:  commands,
	}
}

// Process interprets and executes a single command.
func (d *Dispatcher) Process(ctx context.Context, input string) Outcome {
	return d.process(ctx, slog.Default(), input)
}

func (d *Dispatcher) process(ctx context.Context, logger *slog.Logger, input string) Outcome {
	input = grammar.NormalizeInput(input)
	result := func(o Outcome, a grammar.Action, p string) Outcome {
		o.Input, o.Action, o.Player = input, a, p
		return o
	}

	roster, err := player.Connected(ctx, d.gw)
	if err != nil {
		return result(failure(err), "", "")
	}
	if len(roster) == 0 {
		return result(Completed(NoPlayersMessage), "", "")
	}
	logger.Debug("players connected", "players", roster.Names())

	g, err := grammar.Compile(d.templates, roster.Names())
	if err != nil {
		return result(failure(fmt.Errorf("compiling grammar: %w", err)), "", "")
	}

	parsed, ok := g.Parse(input)
	if !ok {
		logger.Warn("no template matched", "input", input)
		return result(Completed(action.DontUnderstand(input)), grammar.ActionUnknown, "")
	}
	act := parsed.Template.Action
	logger.Debug("template matched", "template", parsed.Template.Pattern, "action", act, "params", parsed.Params)

	args, err := grammar.Normalize(parsed.Params)
	if err != nil {
		logger.Warn("unusable parameters", "error", err)
		return result(Completed(action.DontUnderstand(input)), grammar.ActionUnknown, "")
	}
	if act == grammar.ActionCancel {
		return result(Completed(action.CancelMessage), act, "")
	}

	p, err := roster.Resolve(args.Player)
	if errors.Is(err, player.ErrNotFound) {
		return result(Completed(fmt.Sprintf("Unable to find a player called %s.", args.Player)), act, "")
	}
	if err != nil {
		return result(failure(err), act, "")
	}
	if args.Player == "" {
		logger.Debug("no player named, using default", "player", p.Name)
	}

	p, err = player.Augment(ctx, d.gw, p, roster)
	if err != nil {
		return result(failure(err), act, p.Name)
	}

	handler, ok := action.Lookup(act)
	if !ok {
		return result(failure(fmt.Errorf("no handler for action %q", act)), act, p.Name)
	}

	var playlist []message.PlaylistEntry
	env := &action.Env{
		Gateway:        d.gw,
		Catalog:        d.catalog,
		Roster:         roster,
		VolumeStep:     d.commands.VolumeStep,
		PlaylistWindow: d.commands.PlaylistWindow,
		View:           func(entries []message.PlaylistEntry) { playlist = entries },
	}
	msg, err := handler(ctx, env, p, args)
	if err != nil {
		return result(failure(err), act, p.Name)
	}

	out := result(Completed(msg), act, p.Name)
	out.Playlist = playlist
	return out
}

// Handle processes a single request. It is passed as the transport.Handler
// to each transport and only returns an error for an unusable request.
func (d *Dispatcher) Handle(ctx context.Context, req *message.Request) (*message.Reply, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	start := time.Now()
	logger := slog.With("request_id", req.ID, "source", req.Source)
	logger.Info("command received", "text", req.Text)

	out := d.process(ctx, logger, req.Text)
	reply := &message.Reply{
		RequestID: req.ID,
		Input:     out.Input,
		Response:  out.Text(),
		Status:    out.Status(),
		Action:    string(out.Action),
		Player:    out.Player,
		Playlist:  out.Playlist,
		Duration:  time.Since(start),
	}

	if out.IsFailed() {
		reply.Fault = string(out.Fault)
		logger.Error("command failed", "action", out.Action, "fault", out.Fault, "detail", out.Detail, "duration", reply.Duration)
	} else {
		logger.Info("command complete", "action", out.Action, "player", out.Player, "duration", reply.Duration)
	}
	return reply, nil
}
