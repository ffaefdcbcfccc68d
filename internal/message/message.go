// Package message defines the data types exchanged between transports and the
// command dispatcher.
package message

import "time"

// Request is one free-text command received by a transport.
type Request struct {
	// ID is a unique identifier for this request (UUID).
	ID string `json:"id"`

	// Source identifies the sender (e.g., "kitchen-tablet", "cli").
	Source string `json:"source,omitempty"`

	// Text is the command as typed or transcribed, e.g. "play jazz in the kitchen".
	Text string `json:"text"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`
}

// Status is the outcome class of a processed command.
type Status string

const (
	// StatusCompleted means the command ran, or stopped early with a
	// definitive answer such as "no players" or "unable to locate".
	StatusCompleted Status = "completed"

	// StatusFailed means a server or transport fault aborted the command.
	StatusFailed Status = "failed"
)

// PlaylistEntry is one row of the playlist window returned with a status
// command.
type PlaylistEntry struct {
	// Position is the 1-based position in the player's playlist.
	Position int    `json:"position"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`

	// Current marks the entry the player is positioned on.
	Current bool `json:"current,omitempty"`
}

// Reply is the result of processing a Request.
type Reply struct {
	// RequestID is the original request ID.
	RequestID string `json:"request_id"`

	// Input is the normalized command text that was matched.
	Input string `json:"input"`

	// Response is the sentence to show or speak to the user. It is always set.
	Response string `json:"response"`

	Status Status `json:"status"`

	// Fault is the fault kind when Status is "failed".
	Fault string `json:"fault,omitempty"`

	// Action is the grammar action the command resolved to.
	Action string `json:"action,omitempty"`

	// Player is the name of the player the command acted on.
	Player string `json:"player,omitempty"`

	// Playlist is the window around the current track, filled by status
	// commands.
	Playlist []PlaylistEntry `json:"playlist,omitempty"`

	// Duration is the processing time.
	Duration time.Duration `json:"duration" swaggertype:"integer"`
}
