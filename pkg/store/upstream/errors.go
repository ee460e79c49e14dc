package upstream

import (
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	// KindUpstreamStatus: the final attempt got an HTTP error status.
	KindUpstreamStatus ErrorKind = iota + 1
	// KindConnectionFailure: the final attempt failed below HTTP.
	KindConnectionFailure
	// KindAttemptsExhausted: the retry loop ended without a result.
	KindAttemptsExhausted
	// KindMalformedResponse: a successful response carried invalid JSON.
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindUpstreamStatus:
		return "upstream_status"
	case KindConnectionFailure:
		return "connection_failure"
	case KindAttemptsExhausted:
		return "attempts_exhausted"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type FetchError struct {
	Kind     ErrorKind
	Endpoint string
	Status   int
	Body     string
	Message  string
	Err      error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindUpstreamStatus:
		return fmt.Sprintf("request failed: %s", e.Body)
	case KindConnectionFailure:
		return fmt.Sprintf("connection failed: %s", e.Message)
	case KindAttemptsExhausted:
		return "retry attempts exhausted"
	case KindMalformedResponse:
		return fmt.Sprintf("malformed response from %s: %s", e.Endpoint, e.Message)
	default:
		return fmt.Sprintf("upstream %s: %s", e.Endpoint, e.Message)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status code a caller should answer with.
func (e *FetchError) HTTPStatus() int {
	switch e.Kind {
	case KindUpstreamStatus:
		if e.Status > 0 {
			return e.Status
		}
		return http.StatusBadGateway
	case KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
