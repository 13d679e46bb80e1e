package types

import "errors"

// Sentinel errors shared across services and handlers. Services wrap these
// with fmt.Errorf("...: %w", err) so callers can errors.Is on them.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates the request parameters are missing or invalid.
	ErrValidation = errors.New("invalid request parameters")

	// ErrModelUnavailable indicates no generative model credential is configured.
	ErrModelUnavailable = errors.New("generative model unavailable")

	// ErrGenerationFailed indicates the remote model call failed or timed out.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrMalformedOutput indicates the model response could not be parsed into
	// the itinerary schema.
	ErrMalformedOutput = errors.New("malformed model output")
)
