package grammar

import (
	"errors"
	"testing"
)

var roster = []string{"Kitchen", "Living Room", "Dad's (Office)"}

func mustCompile(t *testing.T, names []string) *Grammar {
	t.Helper()
	g, err := Compile(Templates, names)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return g
}

func TestParse(t *testing.T) {
	g := mustCompile(t, roster)

	tests := []struct {
		name   string
		input  string
		action Action
		params map[string]string
	}{
		{"empty input cancels", "", ActionCancel, map[string]string{}},
		{"cancel", "Cancel", ActionCancel, map[string]string{}},
		{"bare play is transport", "play", ActionPlay, map[string]string{}},
		{"play a named player", "play kitchen", ActionPlay, map[string]string{"player": "kitchen"}},
		{"start playing on player", "start playing in the living room", ActionPlay, map[string]string{"player": "living room"}},
		{"power on", "turn on the kitchen", ActionPowerOn, map[string]string{"player": "kitchen"}},
		{"player off", "Kitchen off", ActionPowerOff, map[string]string{"player": "Kitchen"}},
		{"player name with metacharacters", "power off Dad's (Office)", ActionPowerOff, map[string]string{"player": "Dad's (Office)"}},
		{"what's playing", "what's playing", ActionStatus, map[string]string{}},
		{"what is playing in room", "what is currently playing in the living room", ActionStatus, map[string]string{"player": "living room"}},
		{"what is player doing", "what is the kitchen doing", ActionStatus, map[string]string{"player": "kitchen"}},
		{"volume percent sign", "volume 65%", ActionVolumeSet, map[string]string{"percent": "65"}},
		{"volume percent word", "set volume to 65 percent", ActionVolumeSet, map[string]string{"percent": "65"}},
		{"volume digit word on player", "volume five in the kitchen", ActionVolumeSet, map[string]string{"percent": "five", "player": "kitchen"}},
		{"percent volume", "change 30 volume", ActionVolumeSet, map[string]string{"percent": "30"}},
		{"percent volume without verb", "30 volume", ActionVolumeSet, map[string]string{"percent": "30"}},
		{"player volume to", "change kitchen volume to 20", ActionVolumeSet, map[string]string{"player": "kitchen", "percent": "20"}},
		{"louder", "make it louder", ActionVolumeUp, map[string]string{}},
		{"raise volume", "raise the volume", ActionVolumeUp, map[string]string{}},
		{"increase player volume", "increase kitchen volume", ActionVolumeUp, map[string]string{"player": "kitchen"}},
		{"quieter on player", "quieter in the kitchen", ActionVolumeDown, map[string]string{"player": "kitchen"}},
		{"volume down", "volume down", ActionVolumeDown, map[string]string{}},
		{"decrease on player volume", "decrease on the kitchen volume", ActionVolumeDown, map[string]string{"player": "kitchen"}},
		{"lower player volume", "lower kitchen volume", ActionVolumeDown, map[string]string{"player": "kitchen"}},
		{"stop playing", "stop playing", ActionStop, map[string]string{}},
		{"pause player", "kitchen pause", ActionPause, map[string]string{"player": "kitchen"}},
		{"skip this song", "skip this song", ActionNext, map[string]string{}},
		{"skip to next track", "skip to next track", ActionNext, map[string]string{}},
		{"previous", "previous track", ActionPrevious, map[string]string{}},
		{"restart from beginning", "play this track from the beginning", ActionRestart, map[string]string{}},
		{"restart on player", "restart kitchen", ActionRestart, map[string]string{"player": "kitchen"}},
		{"play query", "play jazz", ActionPlaylistLoad, map[string]string{"query": "jazz"}},
		{"play query on player", "play jazz in the kitchen", ActionPlaylistLoad, map[string]string{"query": "jazz", "player": "kitchen"}},
		{"play query type", "play the album Abbey Road", ActionPlaylistLoad, map[string]string{"querytype": "album", "query": "Abbey Road"}},
		{"songs by", "play songs by the beatles", ActionPlaylistLoad, map[string]string{"querytype": "songs by", "query": "the beatles"}},
		{"compound query", "play Yesterday by The Beatles", ActionPlaylistLoad, map[string]string{"query": "Yesterday by The Beatles"}},
		{"query type without play", "genre jazz", ActionPlaylistLoad, map[string]string{"querytype": "genre", "query": "jazz"}},
		{"player play query", "kitchen play record Revolver", ActionPlaylistLoad, map[string]string{"player": "kitchen", "querytype": "record", "query": "Revolver"}},
		{"anything else", "order a pizza", ActionUnknown, map[string]string{"input": "order a pizza"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Parse(tt.input)
			if !ok {
				t.Fatalf("Parse(%q) matched nothing", tt.input)
			}
			if got.Template.Action != tt.action {
				t.Errorf("Parse(%q) action = %s (template %q), want %s", tt.input, got.Template.Action, got.Template.Pattern, tt.action)
			}
			if len(got.Params) != len(tt.params) {
				t.Errorf("Parse(%q) params = %v, want %v", tt.input, got.Params, tt.params)
			}
			for k, want := range tt.params {
				if got.Params[k] != want {
					t.Errorf("Parse(%q) params[%q] = %q, want %q", tt.input, k, got.Params[k], want)
				}
			}
		})
	}
}

func TestParseFirstMatchWins(t *testing.T) {
	templates := []Template{
		{"play", ActionPlay},
		{"INPUT", ActionUnknown},
	}
	g, err := Compile(templates, roster)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	got, _ := g.Parse("play")
	if got.Template.Action != ActionPlay {
		t.Errorf("Parse(play) action = %s, want %s", got.Template.Action, ActionPlay)
	}

	reversed, err := Compile([]Template{templates[1], templates[0]}, roster)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	got, _ = reversed.Parse("play")
	if got.Template.Action != ActionUnknown {
		t.Errorf("reversed Parse(play) action = %s, want %s", got.Template.Action, ActionUnknown)
	}
}

func TestParseNoMatch(t *testing.T) {
	g, err := Compile([]Template{{"play", ActionPlay}}, roster)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got, ok := g.Parse("dance"); ok {
		t.Errorf("Parse(dance) = %+v, want no match", got)
	}
}

func TestCatchAllIsLast(t *testing.T) {
	last := Templates[len(Templates)-1]
	if last.Action != ActionUnknown || last.Pattern != "INPUT" {
		t.Errorf("last template = %+v, want the INPUT catch-all", last)
	}
	for i, tpl := range Templates[:len(Templates)-1] {
		if tpl.Action == ActionUnknown {
			t.Errorf("template %d %q is a catch-all before the end", i, tpl.Pattern)
		}
	}
}

func TestEmptyRosterNeverMatchesPlayer(t *testing.T) {
	g := mustCompile(t, nil)
	got, ok := g.Parse("play kitchen")
	if !ok {
		t.Fatal("Parse(play kitchen) matched nothing")
	}
	if got.Template.Action != ActionPlaylistLoad || got.Params[ParamQuery] != "kitchen" {
		t.Errorf("Parse(play kitchen) = %+v, want playlist load of %q", got, "kitchen")
	}
}

func TestTableRejectsForwardReference(t *testing.T) {
	tbl := NewTable()
	err := tbl.Define("a", Seq(Lit("x"), Ref("b")))
	if !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("Define(a -> b) error = %v, want ErrUnknownToken", err)
	}
	if err := tbl.Define("b", Lit("y")); err != nil {
		t.Fatalf("Define(b) error = %v", err)
	}
	if err := tbl.Define("a", Seq(Lit("x"), Ref("b"))); err != nil {
		t.Fatalf("Define(a -> b) after b error = %v", err)
	}
	if err := tbl.Define("a", Lit("z")); err == nil {
		t.Error("Define(a) twice succeeded, want error")
	}
	if got, want := tbl.Render(Ref("a")), "(?:x(?:y))"; got != want {
		t.Errorf("Render(a) = %q, want %q", got, want)
	}
}

func TestRenderNodes(t *testing.T) {
	tbl := NewTable()
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"literal is escaped", Lit("a.b (c)"), `a\.b \(c\)`},
		{"raw passes through", Raw(`\d+`), `\d+`},
		{"alternation", Words("x", "y"), `(?:x|y)`},
		{"empty alternation never matches", Alt(), `[^\x00-\x{10FFFF}]`},
		{"optional", Opt(Lit("the ")), `(?:the )?`},
		{"capture", Capture("n", Lit("v")), `(?P<n>v)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.Render(tt.node); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  play   jazz  ", "play jazz"},
		{"What's playing?", "What's playing"},
		{"Stop.", "Stop"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeInput(tt.in); got != tt.want {
			t.Errorf("NormalizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
