package grammar

// Action names the handler a template is bound to.
type Action string

const (
	ActionCancel       Action = "cancel"
	ActionPowerOn      Action = "power_on"
	ActionPowerOff     Action = "power_off"
	ActionStatus       Action = "status"
	ActionVolumeSet    Action = "volume_set"
	ActionVolumeUp     Action = "volume_up"
	ActionVolumeDown   Action = "volume_down"
	ActionPlay         Action = "play"
	ActionStop         Action = "stop"
	ActionPause        Action = "pause"
	ActionNext         Action = "next"
	ActionPrevious     Action = "previous"
	ActionRestart      Action = "restart"
	ActionPlaylistLoad Action = "playlist_load"
	ActionUnknown      Action = "unknown"
)

// Template is one grammar entry. Pattern is plain text: whole words naming a
// token are expanded, a word in brackets is optional, everything else is
// literal.
type Template struct {
	Pattern string
	Action  Action
}

// Templates is the command grammar in priority order. Entries whose QUERY or
// INPUT matches anything must stay at the end.
var Templates = []Template{
	// Don't do anything
	{"", ActionCancel},
	{"cancel", ActionCancel},
	{"never mind", ActionCancel},

	// Turn a specific player on or off
	{"power on PLAYER", ActionPowerOn},
	{"power PLAYER on", ActionPowerOn},
	{"PLAYER on", ActionPowerOn},
	{"power off PLAYER", ActionPowerOff},
	{"power PLAYER off", ActionPowerOff},
	{"PLAYER off", ActionPowerOff},

	// Ask about the current track
	{"what is playing PLAYERLOC", ActionStatus},
	{"what am I listening to PLAYERLOC", ActionStatus},
	{"what is PLAYER doing", ActionStatus},
	{"what is playing", ActionStatus},
	{"what am I listening to", ActionStatus},

	// Change the volume
	{"change volume to PERCENT PLAYERLOC", ActionVolumeSet},
	{"volume PERCENT PLAYERLOC", ActionVolumeSet},
	{"[change] PERCENT volume PLAYERLOC", ActionVolumeSet},
	{"change PLAYER volume to PERCENT", ActionVolumeSet},
	{"PLAYERLOC volume PERCENT", ActionVolumeSet},
	{"PLAYERLOC PERCENT volume", ActionVolumeSet},
	{"change volume PLAYERLOC to PERCENT", ActionVolumeSet},
	{"change volume to PERCENT", ActionVolumeSet},
	{"volume PERCENT", ActionVolumeSet},
	{"[change] PERCENT volume", ActionVolumeSet},
	{"louder PLAYERLOC", ActionVolumeUp},
	{"increase PLAYER volume", ActionVolumeUp},
	{"PLAYERLOC louder", ActionVolumeUp},
	{"louder", ActionVolumeUp},
	{"quieter PLAYERLOC", ActionVolumeDown},
	{"decrease PLAYERLOC volume", ActionVolumeDown},
	{"PLAYERLOC quieter", ActionVolumeDown},
	{"quieter", ActionVolumeDown},

	// Start or stop the current playlist
	{"play PLAYERLOC", ActionPlay},
	{"PLAYERLOC play", ActionPlay},
	{"play", ActionPlay},
	{"stop PLAYERLOC", ActionStop},
	{"PLAYERLOC stop", ActionStop},
	{"stop", ActionStop},
	{"pause PLAYERLOC", ActionPause},
	{"PLAYERLOC pause", ActionPause},
	{"pause", ActionPause},

	// Move around the playlist
	{"next PLAYERLOC", ActionNext},
	{"PLAYERLOC next", ActionNext},
	{"next", ActionNext},
	{"previous PLAYERLOC", ActionPrevious},
	{"PLAYERLOC previous", ActionPrevious},
	{"previous", ActionPrevious},
	{"restart PLAYERLOC", ActionRestart},
	{"PLAYERLOC restart", ActionRestart},
	{"restart", ActionRestart},

	// Load a new playlist; QUERY matches anything so these come last
	{"play QUERYTYPE QUERY PLAYERLOC", ActionPlaylistLoad},
	{"play QUERY PLAYERLOC", ActionPlaylistLoad},
	{"QUERYTYPE QUERY PLAYERLOC", ActionPlaylistLoad},
	{"PLAYERLOC play QUERYTYPE QUERY", ActionPlaylistLoad},
	{"PLAYERLOC play QUERY", ActionPlaylistLoad},
	{"PLAYERLOC QUERYTYPE QUERY", ActionPlaylistLoad},
	{"play QUERYTYPE QUERY", ActionPlaylistLoad},
	{"play QUERY", ActionPlaylistLoad},
	{"QUERYTYPE QUERY", ActionPlaylistLoad},

	// Everything else
	{"INPUT", ActionUnknown},
}
