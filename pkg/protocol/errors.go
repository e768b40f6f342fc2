package protocol

import "errors"

// Sentinel errors for failures detected client-side, before or instead of a
// wire call. They are disjoint from BackendError: a local error never
// travels over the wire.
var (
	// ErrInvalidArgument indicates a caller-supplied argument was rejected
	// before any wire call was attempted.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRouteNotFound indicates a controller/action pair has no entry in
	// the route table.
	ErrRouteNotFound = errors.New("no route for controller/action pair")

	// ErrInvalidVerb indicates a route entry carries a verb that is not a
	// valid HTTP method.
	ErrInvalidVerb = errors.New("invalid HTTP verb in route table")

	// ErrMalformedReply indicates the wire reply could not be decoded into
	// a Response envelope.
	ErrMalformedReply = errors.New("malformed reply from server")

	// ErrNotSupported indicates the active transport does not implement
	// the requested operation.
	ErrNotSupported = errors.New("operation not supported by this transport")

	// ErrNotConnected indicates a streaming transport was used before
	// Connect, or after Close.
	ErrNotConnected = errors.New("transport is not connected")

	// ErrUnexpectedResult indicates a successful reply carried a result
	// payload that does not match the shape the controller expects.
	ErrUnexpectedResult = errors.New("unexpected result payload")
)

// Error is a local/usage failure with the operation that rejected it.
type Error struct {
	Op  string // operation that failed, e.g. "index.Create"
	Err error  // sentinel or underlying cause
	Msg string // optional human-readable context
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Op + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
