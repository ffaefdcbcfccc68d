package gateway

import (
	"errors"
	"fmt"
)

// FaultKind classifies transport-level failures so callers can produce a
// specific message for the common cases.
type FaultKind string

const (
	FaultUnknown           FaultKind = "unknown"
	FaultHostNotFound      FaultKind = "host_not_found"
	FaultConnectionRefused FaultKind = "connection_refused"
	FaultConnectionLost    FaultKind = "connection_lost"
	FaultMalformed         FaultKind = "malformed_response"
	FaultUnauthorized      FaultKind = "unauthorized"
	FaultTimeout           FaultKind = "timeout"
)

// Fault is a classified gateway failure.
type Fault struct {
	Kind FaultKind
	Err  error
}

func (f *Fault) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// NewFault wraps err with a fault kind.
func NewFault(kind FaultKind, err error) *Fault {
	return &Fault{Kind: kind, Err: err}
}

// KindOf returns the fault kind carried anywhere in err's chain, or
// FaultUnknown.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return FaultUnknown
}
