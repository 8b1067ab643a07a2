package api

import (
	"context"
	"errors"
	"net"
)

// Op names the remote operation that failed
type Op string

const (
	OpLaunches      Op = "launches"
	OpLaunchDetails Op = "launch details"
	OpRockets       Op = "rockets"
)

// RemoteFetchError is returned for any transport failure, non-2xx status or
// malformed payload from the API
type RemoteFetchError struct {
	Op  Op
	Err error
}

func (e *RemoteFetchError) Error() string {
	return "Failed to fetch " + string(e.Op) + ": " + e.Err.Error()
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request gave up waiting on the server
func (e *RemoteFetchError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// IsRemoteFetchFailed reports whether err came from a failed API call
func IsRemoteFetchFailed(err error) bool {
	var rfe *RemoteFetchError
	return errors.As(err, &rfe)
}

// IsTimeout reports whether err is a remote fetch that timed out
func IsTimeout(err error) bool {
	var rfe *RemoteFetchError
	return errors.As(err, &rfe) && rfe.Timeout()
}
