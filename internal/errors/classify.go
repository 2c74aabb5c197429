package errors

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// Kind is the failure class of an error crossing a store boundary.
type Kind int

const (
	// KindLogical covers constraint violations, malformed payloads and
	// not-found conditions. Propagated to the caller.
	KindLogical Kind = iota
	// KindConnectivity covers network unreachability, timeouts and
	// transient session failures. Tolerated silently; triggers the local
	// cache fallback.
	KindConnectivity
	// KindNotification covers failures dispatching an achievement ping.
	// Always swallowed once the unlock itself is persisted.
	KindNotification
)

func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindNotification:
		return "notification"
	default:
		return "logical"
	}
}

// classified wraps an error with an explicit kind assigned at the boundary
// that produced it.
type classified struct {
	kind Kind
	err  error
}

func (c *classified) Error() string { return c.err.Error() }
func (c *classified) Unwrap() error { return c.err }

// WithKind tags err with an explicit failure kind. Returns nil for a nil err.
func WithKind(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	return &classified{kind: kind, err: err}
}

// connectivityVocabulary is the fixed substring vocabulary for errors that
// arrive untagged from drivers and the network stack. Includes the transient
// backend session messages seen after a long offline period.
var connectivityVocabulary = []string{
	"network",
	"fetch",
	"timeout",
	"timed out",
	"deadline exceeded",
	"connection refused",
	"connection reset",
	"connection",
	"offline",
	"no such host",
	"broken pipe",
	"unreachable",
	"jwt expired",
	"invalid refresh token",
	"session missing",
}

// Classify determines the failure kind of err. Explicit tags win; otherwise
// net errors, cancelled contexts and the substring vocabulary mark an error
// as connectivity. Everything else is logical.
func Classify(err error) Kind {
	if err == nil {
		return KindLogical
	}

	var c *classified
	if errors.As(err, &c) {
		return c.kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindConnectivity
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return KindConnectivity
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnectivity
	}

	msg := strings.ToLower(err.Error())
	for _, needle := range connectivityVocabulary {
		if strings.Contains(msg, needle) {
			return KindConnectivity
		}
	}

	return KindLogical
}

// IsConnectivity reports whether err should be silently tolerated and served
// from the local cache instead of being surfaced.
func IsConnectivity(err error) bool {
	return err != nil && Classify(err) == KindConnectivity
}
