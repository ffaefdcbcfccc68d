// Package gatewaytest provides an in-memory media server for tests.
//
// Server implements gateway.Gateway with enough of the server's command set to
// exercise the command engine end to end: a player roster with power, mode,
// volume and playlist state, a small library with search, and playlist
// loading. Every call is recorded, and failures can be injected per command.
package gatewaytest

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/nadzzz/squeezeyard/internal/gateway"
)

// Player is the simulated state of one device.
type Player struct {
	ID          string
	Name        string
	Power       bool
	Mode        string // play, stop, pause
	Volume      int
	CanPowerOff bool
	SyncMaster  string
	Offline     bool // reported but not connected
	NotPlayer   bool // reported but not a player
	PowerLocked bool // ignores power commands
	Playlist    []string
	Index       int
	Time        float64
}

// Track is a library track.
type Track struct {
	ID       string
	Title    string
	AlbumID  string
	ArtistID string
	GenreID  string
	Remote   bool
}

// Entry is a named library item (genre, artist, album).
type Entry struct {
	ID   string
	Name string
}

// Playlist is a saved playlist.
type Playlist struct {
	ID       string
	Name     string
	TrackIDs []string
}

// Call is one recorded invocation.
type Call struct {
	PlayerID string
	Command  []string
}

// String renders the call as "<player> cmd args...".
func (c Call) String() string {
	return strings.TrimSpace(c.PlayerID + " " + strings.Join(c.Command, " "))
}

// Server is the simulated media server.
type Server struct {
	mu sync.Mutex

	Players   []*Player
	Genres    []Entry
	Artists   []Entry
	Albums    []Entry
	Tracks    []Track
	Playlists []Playlist

	calls    []Call
	failures map[string]error
}

// New returns an empty server.
func New() *Server {
	return &Server{failures: make(map[string]error)}
}

// AddPlayer registers a player and returns it for further tweaking.
func (s *Server) AddPlayer(p Player) *Player {
	if p.Mode == "" {
		p.Mode = "stop"
	}
	pp := &p
	s.Players = append(s.Players, pp)
	return pp
}

// FailOn makes every command whose first word is word return err.
func (s *Server) FailOn(word string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[word] = err
}

// Calls returns the recorded calls.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// CallsTo returns the recorded calls whose command starts with prefix.
func (s *Server) CallsTo(prefix ...string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if len(c.Command) >= len(prefix) && slices.Equal(c.Command[:len(prefix)], prefix) {
			out = append(out, c)
		}
	}
	return out
}

// Player returns the simulated player with id.
func (s *Server) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Invoke implements gateway.Gateway.
func (s *Server) Invoke(ctx context.Context, playerID string, command ...string) (gateway.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{PlayerID: playerID, Command: slices.Clone(command)})
	if len(command) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	if err, ok := s.failures[command[0]]; ok {
		return nil, err
	}

	switch command[0] {
	case "players":
		return s.players(command[1:])
	case "version":
		return gateway.Result{"_version": "8.5.0"}, nil
	case "genres", "artists", "albums", "titles", "playlists":
		return s.library(command[0], command[1:])
	}

	p := s.Player(playerID)
	if p == nil {
		return nil, fmt.Errorf("unknown player %q", playerID)
	}
	return s.playerCommand(p, command)
}

func (s *Server) players(args []string) (gateway.Result, error) {
	start, count := paging(args)
	loop := []any{}
	for i := start; i < len(s.Players) && i < start+count; i++ {
		p := s.Players[i]
		loop = append(loop, map[string]any{
			"playerid":    p.ID,
			"name":        p.Name,
			"isplayer":    flag(!p.NotPlayer),
			"connected":   flag(!p.Offline),
			"power":       flag(p.Power),
			"isplaying":   flag(p.Power && p.Mode == "play"),
			"canpoweroff": flag(p.CanPowerOff),
		})
	}
	return gateway.Result{"count": len(s.Players), "players_loop": loop}, nil
}

func (s *Server) library(noun string, args []string) (gateway.Result, error) {
	start, count := paging(args)
	var search, artistID string
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, "search:"); ok {
			search = v
		}
		if v, ok := strings.CutPrefix(a, "artist_id:"); ok {
			artistID = v
		}
	}

	field := strings.TrimSuffix(noun, "s")
	var all []Entry
	switch noun {
	case "genres":
		all = s.Genres
	case "artists":
		all = s.Artists
	case "albums":
		for _, a := range s.Albums {
			if artistID == "" || s.albumHasArtist(a.ID, artistID) {
				all = append(all, a)
			}
		}
	case "titles":
		for _, t := range s.Tracks {
			if artistID == "" || t.ArtistID == artistID {
				all = append(all, Entry{ID: t.ID, Name: t.Title})
			}
		}
	case "playlists":
		for _, pl := range s.Playlists {
			all = append(all, Entry{ID: pl.ID, Name: pl.Name})
		}
	}

	var matched []Entry
	for _, e := range all {
		if searchMatches(e.Name, search) {
			matched = append(matched, e)
		}
	}

	loop := []any{}
	for i := start; i < len(matched) && i < start+count; i++ {
		loop = append(loop, map[string]any{"id": matched[i].ID, field: matched[i].Name})
	}
	return gateway.Result{"count": len(matched), noun + "_loop": loop}, nil
}

func (s *Server) albumHasArtist(albumID, artistID string) bool {
	for _, t := range s.Tracks {
		if t.AlbumID == albumID && t.ArtistID == artistID {
			return true
		}
	}
	return false
}

// searchMatches mimics the server's search: every word must appear somewhere
// in the name.
func searchMatches(name, search string) bool {
	name = strings.ToLower(name)
	for _, w := range strings.Fields(strings.ToLower(search)) {
		if !strings.Contains(name, w) {
			return false
		}
	}
	return true
}

func (s *Server) playerCommand(p *Player, command []string) (gateway.Result, error) {
	arg := func(i int) string {
		if i < len(command) {
			return command[i]
		}
		return ""
	}

	switch command[0] {
	case "status":
		res := gateway.Result{
			"player_name":     p.Name,
			"power":           flag(p.Power),
			"mode":            p.Mode,
			"mixer volume":    p.Volume,
			"playlist_tracks": len(p.Playlist),
		}
		if p.SyncMaster != "" {
			res["sync_master"] = p.SyncMaster
		}
		return res, nil

	case "power":
		if arg(1) == "?" {
			return gateway.Result{"_power": flag(p.Power)}, nil
		}
		if !p.PowerLocked {
			p.Power = arg(1) == "1"
			if !p.Power && p.Mode == "play" {
				p.Mode = "pause"
			}
		}
		return gateway.Result{}, nil

	case "mixer":
		if arg(1) != "volume" {
			return nil, fmt.Errorf("unsupported mixer command %v", command)
		}
		v := arg(2)
		if v == "?" {
			return gateway.Result{"_volume": strconv.Itoa(p.Volume)}, nil
		}
		n, err := strconv.Atoi(strings.TrimPrefix(v, "+"))
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
			n += p.Volume
		}
		p.Volume = min(max(n, 0), 100)
		return gateway.Result{}, nil

	case "mode":
		return gateway.Result{"_mode": p.Mode}, nil

	case "play":
		if len(p.Playlist) > 0 {
			p.Mode = "play"
			p.Power = true
		}
		return gateway.Result{}, nil

	case "stop":
		p.Mode = "stop"
		return gateway.Result{}, nil

	case "pause":
		if p.Mode == "play" {
			p.Mode = "pause"
		}
		return gateway.Result{}, nil

	case "time":
		if arg(1) == "?" {
			return gateway.Result{"_time": p.Time}, nil
		}
		t, err := strconv.ParseFloat(arg(1), 64)
		if err != nil {
			return nil, err
		}
		p.Time = t
		return gateway.Result{}, nil

	case "artist", "album", "title", "remote":
		return gateway.Result{"_" + command[0]: s.trackField(p, p.Index, command[0])}, nil

	case "playlist":
		return s.playlistCommand(p, command[1:])

	case "playlistcontrol":
		return s.playlistControl(p, command[1:])
	}
	return nil, fmt.Errorf("unsupported command %v", command)
}

func (s *Server) playlistCommand(p *Player, args []string) (gateway.Result, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("unsupported playlist command %v", args)
	}
	switch args[0] {
	case "tracks":
		return gateway.Result{"_tracks": len(p.Playlist)}, nil
	case "index":
		v := args[1]
		if v == "?" {
			return gateway.Result{"_index": strconv.Itoa(p.Index)}, nil
		}
		n, err := strconv.Atoi(strings.TrimPrefix(v, "+"))
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
			n += p.Index
		}
		if len(p.Playlist) > 0 {
			p.Index = ((n % len(p.Playlist)) + len(p.Playlist)) % len(p.Playlist)
			p.Mode = "play"
			p.Time = 0
		}
		return gateway.Result{}, nil
	case "title", "artist", "album", "remote":
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, err
		}
		return gateway.Result{"_" + args[0]: s.trackField(p, idx, args[0])}, nil
	}
	return nil, fmt.Errorf("unsupported playlist command %v", args)
}

func (s *Server) playlistControl(p *Player, args []string) (gateway.Result, error) {
	var cmd, key, ids string
	for _, a := range args {
		k, v, ok := strings.Cut(a, ":")
		if !ok {
			continue
		}
		if k == "cmd" {
			cmd = v
			continue
		}
		key, ids = k, v
	}

	var tracks []string
	for _, id := range strings.Split(ids, ",") {
		tracks = append(tracks, s.tracksFor(key, id)...)
	}

	switch cmd {
	case "load":
		p.Playlist = tracks
		p.Index = 0
		p.Time = 0
		if len(tracks) > 0 {
			p.Mode = "play"
			p.Power = true
		}
	case "add":
		p.Playlist = append(p.Playlist, tracks...)
	default:
		return nil, fmt.Errorf("unsupported playlistcontrol %v", args)
	}
	return gateway.Result{"count": len(tracks)}, nil
}

func (s *Server) tracksFor(key, id string) []string {
	if key == "playlist_id" {
		for _, pl := range s.Playlists {
			if pl.ID == id {
				return slices.Clone(pl.TrackIDs)
			}
		}
		return nil
	}
	var out []string
	for _, t := range s.Tracks {
		var match bool
		switch key {
		case "track_id":
			match = t.ID == id
		case "artist_id":
			match = t.ArtistID == id
		case "album_id":
			match = t.AlbumID == id
		case "genre_id":
			match = t.GenreID == id
		}
		if match {
			out = append(out, t.ID)
		}
	}
	return out
}

func (s *Server) trackField(p *Player, idx int, field string) any {
	if idx < 0 || idx >= len(p.Playlist) {
		return ""
	}
	var track *Track
	for i := range s.Tracks {
		if s.Tracks[i].ID == p.Playlist[idx] {
			track = &s.Tracks[i]
		}
	}
	if track == nil {
		return ""
	}
	switch field {
	case "title":
		return track.Title
	case "album":
		return nameOf(s.Albums, track.AlbumID)
	case "artist":
		return nameOf(s.Artists, track.ArtistID)
	case "remote":
		return flag(track.Remote)
	}
	return ""
}

func nameOf(entries []Entry, id string) string {
	for _, e := range entries {
		if e.ID == id {
			return e.Name
		}
	}
	return ""
}

func paging(args []string) (start, count int) {
	count = 1 << 30
	if len(args) > 0 {
		start, _ = strconv.Atoi(args[0])
	}
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			count = n
		}
	}
	return start, count
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
