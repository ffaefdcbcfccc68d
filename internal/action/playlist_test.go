package action

import (
	"slices"
	"strings"
	"testing"

	"github.com/nadzzz/squeezeyard/internal/gateway/gatewaytest"
	"github.com/nadzzz/squeezeyard/internal/grammar"
)

func TestPlaylistLoad(t *testing.T) {
	tests := []struct {
		name      string
		queryType string
		query     string
		want      string
		playlist  []string
	}{
		{"genre by default search order", "", "jazz",
			"Playing 3 jazz tracks on Kitchen.", []string{"t3", "t4", "t6"}},
		{"artist", "artist", "beatles",
			"Playing 3 tracks by The Beatles on Kitchen.", []string{"t1", "t2", "t5"}},
		{"album", "album", "kind of blue",
			"Playing album Kind of Blue on Kitchen.", []string{"t3", "t4"}},
		{"tracks", "track", "yesterday",
			"Playing 2 tracks matching yesterday on Kitchen.", []string{"t5", "t6"}},
		{"playlist", "playlist", "sunday morning",
			"Playing 3 tracks from playlist Sunday Morning on Kitchen.", []string{"t3", "t4", "t1"}},
		{"single track describes it", "", "freddie freeloader",
			"Playing Freddie Freeloader from Kind of Blue by Miles Davis on Kitchen.", []string{"t4"}},
		{"ambiguous playlist", "playlist", "road",
			"Unable to locate road on your server.", nil},
		{"nothing matches", "", "polka",
			"Unable to locate polka on your server.", nil},
		{"empty playlist", "playlist", "empty shelf",
			"No tracks added to Kitchen playlist.", nil},
		{"compound single track", "", "Yesterday by The Beatles",
			"Playing Yesterday from Help! by The Beatles on Kitchen.", []string{"t5"}},
		{"compound album", "album", "abbey road by the beatles",
			"Playing album Abbey Road by The Beatles on Kitchen.", []string{"t1", "t2"}},
		{"compound tries each artist", "", "Imagine by Lennon",
			"Playing Imagine by John Lennon on Kitchen.", []string{"t7"}},
		{"compound needs album or track", "artist", "Yesterday by The Beatles",
			"Unable to locate Yesterday by The Beatles on your server.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newLibrary()
			p := srv.AddPlayer(gatewaytest.Player{ID: "k", Name: "Kitchen", Power: true})

			got := mustRun(t, srv, grammar.ActionPlaylistLoad, grammar.Args{QueryType: tt.queryType, Query: tt.query})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if !slices.Equal(p.Playlist, tt.playlist) {
				t.Errorf("playlist = %v, want %v", p.Playlist, tt.playlist)
			}
		})
	}
}

func TestPlaylistLoadRejectsAmbiguousPlaylist(t *testing.T) {
	srv := newLibrary()
	srv.AddPlayer(gatewaytest.Player{ID: "k", Name: "Kitchen"})
	mustRun(t, srv, grammar.ActionPlaylistLoad, grammar.Args{QueryType: "playlist", Query: "road"})
	if calls := srv.CallsTo("playlistcontrol"); len(calls) != 0 {
		t.Errorf("playlist loaded despite two matches: %v", calls)
	}
}

func TestPlaylistLoadMultipleGenres(t *testing.T) {
	srv := newLibrary()
	p := srv.AddPlayer(gatewaytest.Player{ID: "k", Name: "Kitchen"})
	srv.Genres = []gatewaytest.Entry{{ID: "g5", Name: "Acid Jazz"}, {ID: "g6", Name: "Jazz Funk"}}
	srv.Tracks = append(srv.Tracks,
		gatewaytest.Track{ID: "j1", Title: "Cantaloop", GenreID: "g5"},
		gatewaytest.Track{ID: "j2", Title: "Chameleon", GenreID: "g6"},
	)

	got := mustRun(t, srv, grammar.ActionPlaylistLoad, grammar.Args{QueryType: "genre", Query: "jazz"})
	if want := "Playing 2 tracks in genres Acid Jazz and Jazz Funk on Kitchen."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if want := []string{"j1", "j2"}; !slices.Equal(p.Playlist, want) {
		t.Errorf("playlist = %v, want %v", p.Playlist, want)
	}

	var cmds []string
	for _, c := range srv.CallsTo("playlistcontrol") {
		cmds = append(cmds, strings.Join(c.Command[1:], " "))
	}
	want := []string{"cmd:load genre_id:g5", "cmd:add genre_id:g6"}
	if !slices.Equal(cmds, want) {
		t.Errorf("playlistcontrol = %v, want %v", cmds, want)
	}
}

func TestPlaylistLoadTracksInOneRequest(t *testing.T) {
	srv := newLibrary()
	srv.AddPlayer(gatewaytest.Player{ID: "k", Name: "Kitchen"})
	mustRun(t, srv, grammar.ActionPlaylistLoad, grammar.Args{QueryType: "track", Query: "yesterday"})

	calls := srv.CallsTo("playlistcontrol")
	if len(calls) != 1 {
		t.Fatalf("playlistcontrol calls = %v, want one", calls)
	}
	if got, want := calls[0].Command[2], "track_id:t5,t6"; got != want {
		t.Errorf("track ids = %q, want %q", got, want)
	}
}

func TestCompoundQuerySearchOrder(t *testing.T) {
	srv := newLibrary()
	srv.AddPlayer(gatewaytest.Player{ID: "k", Name: "Kitchen"})
	mustRun(t, srv, grammar.ActionPlaylistLoad, grammar.Args{Query: "Imagine by Lennon"})

	var artistSearch, scoped []string
	for i, c := range srv.Calls() {
		args := strings.Join(c.Command, " ")
		switch {
		case c.Command[0] == "artists" && strings.Contains(args, "search:Lennon"):
			artistSearch = append(artistSearch, "artists")
			if len(scoped) > 0 {
				t.Errorf("call %d: artist search after scoped searches", i)
			}
		case strings.Contains(args, "artist_id:"):
			scoped = append(scoped, c.Command[0]+" "+c.Command[len(c.Command)-1])
		}
	}
	if len(artistSearch) != 1 {
		t.Errorf("artist searches = %d, want 1", len(artistSearch))
	}
	want := []string{
		"albums artist_id:a5", "titles artist_id:a5",
		"albums artist_id:a6", "titles artist_id:a6",
	}
	if !slices.Equal(scoped, want) {
		t.Errorf("scoped searches = %v, want %v", scoped, want)
	}
}
