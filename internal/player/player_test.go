package player

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nadzzz/squeezeyard/internal/gateway/gatewaytest"
)

func TestRosterDefault(t *testing.T) {
	tests := []struct {
		name   string
		roster Roster
		want   string
	}{
		{
			name: "playing powered player wins",
			roster: Roster{
				{Name: "A"},
				{Name: "B", Power: true, Playing: true},
				{Name: "C", Power: true},
			},
			want: "B",
		},
		{
			name: "powered player when nothing plays",
			roster: Roster{
				{Name: "A"},
				{Name: "B"},
				{Name: "C", Power: true},
			},
			want: "C",
		},
		{
			name: "playing but switched off does not count",
			roster: Roster{
				{Name: "A", Playing: true},
				{Name: "B", Power: true},
			},
			want: "B",
		},
		{
			name: "first player when none powered",
			roster: Roster{
				{Name: "A"},
				{Name: "B"},
			},
			want: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.roster.Default()
			if !ok {
				t.Fatal("Default() found nothing")
			}
			if got.Name != tt.want {
				t.Errorf("Default() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestRosterResolve(t *testing.T) {
	roster := Roster{{ID: "1", Name: "Kitchen"}, {ID: "2", Name: "Living Room", Power: true}}

	got, err := roster.Resolve("living ROOM")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.ID != "2" {
		t.Errorf("Resolve(living ROOM) = %q, want id 2", got.ID)
	}

	got, err = roster.Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") error = %v", err)
	}
	if got.ID != "2" {
		t.Errorf("Resolve(\"\") = %q, want powered id 2", got.ID)
	}

	if _, err := roster.Resolve("Garage"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(Garage) error = %v, want ErrNotFound", err)
	}
	if _, err := (Roster{}).Resolve(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestConnectedPagesAndFilters(t *testing.T) {
	srv := gatewaytest.New()
	for i := 0; i < 12; i++ {
		srv.AddPlayer(gatewaytest.Player{ID: fmt.Sprint(i), Name: fmt.Sprintf("P%d", i)})
	}
	srv.Players[3].Offline = true
	srv.Players[7].NotPlayer = true

	roster, err := Connected(context.Background(), srv)
	if err != nil {
		t.Fatalf("Connected() error = %v", err)
	}
	if len(roster) != 10 {
		t.Fatalf("Connected() returned %d players, want 10", len(roster))
	}
	if _, ok := roster.Find("P3"); ok {
		t.Error("offline player P3 in roster")
	}
	if _, ok := roster.Find("P7"); ok {
		t.Error("non-player P7 in roster")
	}
	if pages := len(srv.CallsTo("players")); pages != 3 {
		t.Errorf("players requested in %d pages, want 3", pages)
	}
	if got := roster.Names()[0]; got != "P0" {
		t.Errorf("first name = %q, want P0", got)
	}
}

func TestAugment(t *testing.T) {
	srv := gatewaytest.New()
	srv.AddPlayer(gatewaytest.Player{ID: "m", Name: "Kitchen", Power: true, Mode: "play", Playlist: []string{"t1"}})
	srv.AddPlayer(gatewaytest.Player{ID: "s", Name: "Den", Power: true, Mode: "play", SyncMaster: "m"})
	srv.AddPlayer(gatewaytest.Player{ID: "o", Name: "Attic", SyncMaster: "gone"})

	roster, err := Connected(context.Background(), srv)
	if err != nil {
		t.Fatalf("Connected() error = %v", err)
	}

	den, _ := roster.Find("Den")
	got, err := Augment(context.Background(), srv, den, roster)
	if err != nil {
		t.Fatalf("Augment() error = %v", err)
	}
	if got.GroupName != "Kitchen sync group" {
		t.Errorf("GroupName = %q, want %q", got.GroupName, "Kitchen sync group")
	}
	if got.Mode != "play" || !got.Playing {
		t.Errorf("Mode = %q Playing = %v, want play/true", got.Mode, got.Playing)
	}
	if roster[1].GroupName != "Den" || roster[1].Mode != "" {
		t.Errorf("roster entry mutated: %+v", roster[1])
	}

	attic, _ := roster.Find("Attic")
	got, err = Augment(context.Background(), srv, attic, roster)
	if err != nil {
		t.Fatalf("Augment() error = %v", err)
	}
	if got.GroupName != "Attic" {
		t.Errorf("GroupName with unknown master = %q, want %q", got.GroupName, "Attic")
	}
}

func TestAugmentPropagatesFailure(t *testing.T) {
	srv := gatewaytest.New()
	srv.AddPlayer(gatewaytest.Player{ID: "1", Name: "Kitchen"})
	boom := errors.New("boom")
	srv.FailOn("status", boom)

	_, err := Augment(context.Background(), srv, Player{ID: "1", Name: "Kitchen"}, nil)
	if !errors.Is(err, boom) {
		t.Errorf("Augment() error = %v, want %v", err, boom)
	}
}
