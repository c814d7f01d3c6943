package reading

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when an operation targets the wrong kind of node
	// or a node that does not exist.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrDuplicateSubscription is returned when adding a URL that is already subscribed.
	ErrDuplicateSubscription = errors.New("feed already subscribed")
	// ErrEmptyURL is returned for blank feed URLs.
	ErrEmptyURL = errors.New("feed url is empty")
	// ErrParse marks failures to parse a fetched document as a feed.
	ErrParse = errors.New("malformed feed")
)

// FetchErrorKind classifies a fetch failure.
type FetchErrorKind int

const (
	KindNetwork FetchErrorKind = iota
	KindParse
	KindTimeout
	KindCanceled
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "network"
	}
}

// FetchError describes why one feed could not be fetched.
type FetchError struct {
	URL  string
	Kind FetchErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %s error", e.URL, e.Kind)
	}
	return fmt.Sprintf("fetch %s: %s error: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StatusError is an HTTP response outside the 2xx/3xx range.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// Permanent reports whether repeating the request cannot help: client errors
// other than request timeout and rate limiting.
func (e *StatusError) Permanent() bool {
	return e.Code >= 400 && e.Code < 500 && e.Code != 408 && e.Code != 429
}

// NewFetchError wraps err, deriving the kind from the error chain.
func NewFetchError(url string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{URL: url, Kind: classify(err), Err: err}
}

func classify(err error) FetchErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrParse):
		return KindParse
	default:
		return KindNetwork
	}
}

// IsRetryable reports whether a fetch failure may succeed on a second attempt.
func IsRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) && se.Permanent() {
		return false
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind == KindNetwork
	}
	return classify(err) == KindNetwork
}
