// Package player selects the device a command acts on.
//
// The roster is fetched once per command and treated as an immutable
// snapshot; live status is merged into a copy of the chosen entry.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nadzzz/squeezeyard/internal/gateway"
)

// ErrNotFound is returned when a named player is not in the roster.
var ErrNotFound = errors.New("player not found")

// pageSize is the number of players requested per roster page.
const pageSize = 5

// Player is one playback device.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Power       bool   `json:"power"`
	Playing     bool   `json:"playing"`
	CanPowerOff bool   `json:"can_power_off"`
	SyncMaster  string `json:"sync_master,omitempty"`
	Mode        string `json:"mode,omitempty"` // play, stop or pause; set by Augment
	GroupName   string `json:"group_name"`     // own name, or "<master> sync group" when slaved

	connected bool
	isPlayer  bool
}

func fromRecord(r gateway.Result) Player {
	p := Player{
		ID:          r.String("playerid"),
		Name:        r.String("name"),
		Power:       r.Bool("power"),
		Playing:     r.Bool("isplaying"),
		CanPowerOff: r.Bool("canpoweroff"),
		connected:   r.Bool("connected"),
		isPlayer:    !r.Has("isplayer") || r.Bool("isplayer"),
	}
	p.GroupName = p.Name
	return p
}

// Roster is the set of connected players in server order.
type Roster []Player

// Connected fetches the full player list a page at a time and keeps the
// entries that are real players and currently connected.
func Connected(ctx context.Context, gw gateway.Gateway) (Roster, error) {
	var all []Player
	for {
		res, err := gw.Invoke(ctx, "", "players", fmt.Sprint(len(all)), fmt.Sprint(pageSize))
		if err != nil {
			return nil, fmt.Errorf("listing players: %w", err)
		}
		page := res.Loop("players_loop")
		for _, rec := range page {
			all = append(all, fromRecord(rec))
		}
		if len(all) >= res.Count() {
			break
		}
		if len(page) == 0 {
			slog.Warn("player list ended early", "have", len(all), "count", res.Count())
			break
		}
	}

	roster := make(Roster, 0, len(all))
	for _, p := range all {
		if p.isPlayer && p.connected {
			roster = append(roster, p)
		}
	}
	return roster, nil
}

// Names returns the player names in roster order.
func (r Roster) Names() []string {
	names := make([]string, len(r))
	for i, p := range r {
		names[i] = p.Name
	}
	return names
}

// Find looks a player up by name, ignoring case.
func (r Roster) Find(name string) (Player, bool) {
	for _, p := range r {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Player{}, false
}

// byID looks a player up by id.
func (r Roster) byID(id string) (Player, bool) {
	for _, p := range r {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Default picks the player to use when none was named: one that is powered
// and playing, else one that is powered, else the first.
func (r Roster) Default() (Player, bool) {
	if len(r) == 0 {
		return Player{}, false
	}
	for _, p := range r {
		if p.Power && p.Playing {
			return p, true
		}
	}
	for _, p := range r {
		if p.Power {
			return p, true
		}
	}
	return r[0], true
}

// Resolve returns the named player, or the default one when name is empty.
func (r Roster) Resolve(name string) (Player, error) {
	if name == "" {
		p, ok := r.Default()
		if !ok {
			return Player{}, ErrNotFound
		}
		return p, nil
	}
	p, ok := r.Find(name)
	if !ok {
		return Player{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return p, nil
}

// Augment fetches live status for p and returns an enriched copy. The roster
// is only read, to name the sync group.
func Augment(ctx context.Context, gw gateway.Gateway, p Player, roster Roster) (Player, error) {
	status, err := gw.Invoke(ctx, p.ID, "status")
	if err != nil {
		return Player{}, fmt.Errorf("player status: %w", err)
	}

	out := p
	if status.Has("power") {
		out.Power = status.Bool("power")
	}
	if status.Has("mode") {
		out.Mode = status.String("mode")
		out.Playing = out.Mode == "play"
	}
	if status.Has("sync_master") {
		out.SyncMaster = status.String("sync_master")
	}
	if status.Has("can_poweroff") {
		out.CanPowerOff = status.Bool("can_poweroff")
	}

	out.GroupName = out.Name
	if out.SyncMaster != "" {
		if master, ok := roster.byID(out.SyncMaster); ok {
			out.GroupName = master.Name + " sync group"
		}
	}
	return out, nil
}
