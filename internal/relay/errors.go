package relay

import "errors"

// upstreamError wraps a failure to reach or read from the upstream endpoint.
type upstreamError struct {
	op  string
	err error
}

func (e upstreamError) Error() string { return "relay upstream " + e.op + ": " + e.err.Error() }

func (e upstreamError) Unwrap() error { return e.err }

// IsUpstream reports whether err came from the upstream round trip.
func IsUpstream(err error) bool {
	var ue upstreamError
	return errors.As(err, &ue)
}
