package types

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a flow is submitted while a previous submission
// is still pending.
var ErrBusy = errors.New("a request is already in progress")

// NetworkError is a connectivity failure: DNS, refused or reset connections,
// timeouts. No HTTP response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TransportError is a non-2xx HTTP response. Body is the raw response text,
// deliberately not parsed.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("http error: %s %s: status %d, body: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// DecodeError is a 2xx response whose body is not valid JSON.
type DecodeError struct {
	URL  string
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PersistenceError means the key-value storage could not be read or written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("session store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// UploadFailedError means the media upload produced no usable reference.
// Message is the server-provided message when there was one.
type UploadFailedError struct {
	Message string
	Err     error
}

func (e *UploadFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload failed: %s: %v", e.Message, e.Err)
	}
	return "upload failed: " + e.Message
}

func (e *UploadFailedError) Unwrap() error { return e.Err }

// UnrecognizedResponseError is a 2xx reply whose success/message pair is
// outside the closed set the endpoint is known to return.
type UnrecognizedResponseError struct {
	Endpoint string
	Success  bool
	Message  string
}

func (e *UnrecognizedResponseError) Error() string {
	return fmt.Sprintf("unrecognized %s response (success=%t, message=%q)", e.Endpoint, e.Success, e.Message)
}

// ErrorKind names the taxonomy bucket of err for logging.
func ErrorKind(err error) string {
	var (
		netErr     *NetworkError
		httpErr    *TransportError
		decodeErr  *DecodeError
		persistErr *PersistenceError
		uploadErr  *UploadFailedError
		unknownErr *UnrecognizedResponseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &uploadErr):
		return "upload_failed"
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &httpErr):
		return "transport"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &persistErr):
		return "persistence"
	case errors.As(err, &unknownErr):
		return "unrecognized_response"
	default:
		return "other"
	}
}
