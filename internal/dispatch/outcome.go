package dispatch

import (
	"fmt"

	"github.com/nadzzz/squeezeyard/internal/gateway"
	"github.com/nadzzz/squeezeyard/internal/grammar"
	"github.com/nadzzz/squeezeyard/internal/message"
)

// Outcome is the result of processing one command. A completed outcome
// carries the message for the user; a failed one carries the fault that
// aborted processing.
type Outcome struct {
	// Message is set on completed outcomes.
	Message string

	// Fault and Detail are set on failed outcomes.
	Fault  gateway.FaultKind
	Detail string
	failed bool

	// Input is the normalized input text.
	Input    string
	Action   grammar.Action
	Player   string
	Playlist []message.PlaylistEntry
}

// Completed returns an outcome that ends with msg.
func Completed(msg string) Outcome {
	return Outcome{Message: msg}
}

// Failed returns an outcome aborted by a fault.
func Failed(kind gateway.FaultKind, detail string) Outcome {
	return Outcome{Fault: kind, Detail: detail, failed: true}
}

// failure builds a failed outcome from err.
func failure(err error) Outcome {
	return Failed(gateway.KindOf(err), err.Error())
}

// IsFailed reports whether a fault aborted processing.
func (o Outcome) IsFailed() bool { return o.failed }

var faultMessages = map[gateway.FaultKind]string{
	gateway.FaultConnectionLost: "The Logitech Media Server did not respond; " +
		"it may have dropped the connection part way through the command.",
	gateway.FaultHostNotFound: "Unable to find the Logitech Media Server; " +
		"check that this device is on the same network and that the correct hostname has been configured.",
	gateway.FaultConnectionRefused: "Unable to contact the Logitech Media Server; " +
		"check that it is running and that the correct port has been configured.",
	gateway.FaultMalformed: "Unable to contact the Logitech Media Server; " +
		"check that the correct port and path have been configured.",
	gateway.FaultUnauthorized: "The Logitech Media Server rejected the request; " +
		"check the configured username and password.",
	gateway.FaultTimeout: "The Logitech Media Server took too long to respond.",
}

// Text returns the sentence to show the user.
func (o Outcome) Text() string {
	if !o.failed {
		return o.Message
	}
	if msg, ok := faultMessages[o.Fault]; ok {
		return msg
	}
	return fmt.Sprintf("Something unexpected happened. (%s)", o.Detail)
}

// Status returns the reply status for o.
func (o Outcome) Status() message.Status {
	if o.failed {
		return message.StatusFailed
	}
	return message.StatusCompleted
}
