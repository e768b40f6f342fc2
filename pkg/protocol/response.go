package protocol

import (
	"fmt"
)

// Response is the standardized reply envelope shared by every Reef API
// route. It is only ever constructed by decoding a wire reply and is not
// mutated afterwards. Result is meaningful only when Error is nil; its
// shape depends on the controller/action and is decoded by the caller.
type Response struct {
	RequestID  string         `json:"requestId"`
	Status     int            `json:"status"`
	Error      *BackendError  `json:"error"`
	Controller string         `json:"controller"`
	Action     string         `json:"action"`
	Collection string         `json:"collection"`
	Index      string         `json:"index"`
	Volatile   map[string]any `json:"volatile"`
	Result     any            `json:"result"`

	// Room and Channel are only populated by streaming transports; the
	// HTTP binding ignores them.
	Room    string `json:"room"`
	Channel string `json:"channel"`
}

// BackendError is a failure reported by the Reef server inside an otherwise
// well-formed reply. It never originates client-side except by decoding a
// wire reply.
type BackendError struct {
	Status  *int   `json:"status"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// NewBackendError builds a BackendError with the given status and message.
// Pass a nil status for an unidentified error.
func NewBackendError(status *int, message string) *BackendError {
	return &BackendError{Status: status, Message: message}
}

// Name maps the error status to its canonical API error name. Unknown
// statuses map to CustomError, a missing status to UnidentifiedError.
func (e *BackendError) Name() string {
	if e.Status == nil {
		return "UnidentifiedError"
	}
	switch *e.Status {
	case 206:
		return "PartialError"
	case 400:
		return "BadRequestError"
	case 401:
		return "UnauthorizedError"
	case 403:
		return "ForbiddenError"
	case 404:
		return "NotFoundError"
	case 412:
		return "PreconditionError"
	case 413:
		return "SizeLimitError"
	case 500:
		return "InternalError"
	case 503:
		return "ServiceUnavailableError"
	case 504:
		return "GatewayTimeoutError"
	default:
		return "CustomError"
	}
}

// Error renders the backend failure. When a stack trace is present the
// message is dropped, since the stack already begins with it.
func (e *BackendError) Error() string {
	status := "?"
	if e.Status != nil {
		status = fmt.Sprintf("%d", *e.Status)
	}
	if e.Stack != "" {
		return fmt.Sprintf("[%s] %s", status, e.Stack)
	}
	return fmt.Sprintf("[%s] %s : %s", status, e.Name(), e.Message)
}
