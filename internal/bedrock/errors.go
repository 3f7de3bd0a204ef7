package bedrock

import (
	"errors"
	"fmt"
	"strings"
)

// Decode and adapt failures are typed so the handler boundary can map each
// kind to a user-facing message instead of a generic failure.
var (
	// ErrUnsupportedModel means the model id belongs to none of the known provider families
	ErrUnsupportedModel = errors.New("unsupported model")
	// ErrEmptyResponse means the model returned no usable content
	ErrEmptyResponse = errors.New("empty model response")
	// ErrParseFailure means the model output could not be parsed into the expected structure
	ErrParseFailure = errors.New("output parse failure")
)

// ParameterError reports a missing or invalid family-specific parameter
type ParameterError struct {
	Reason string
}

func (e *ParameterError) Error() string {
	return "parameter error: " + e.Reason
}

// ProviderRejectedError means the model explicitly signalled failure in its
// response body (stability finish_reasons, titan error field).
type ProviderRejectedError struct {
	Reasons []string
}

func (e *ProviderRejectedError) Error() string {
	return "provider rejected request: " + strings.Join(e.Reasons, "; ")
}

// TransportError wraps a network or SDK client failure on the outbound call
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model invocation transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
