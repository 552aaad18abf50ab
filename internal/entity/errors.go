package entity

import "errors"

// Messages shown to the end user.
const (
	MsgNoImage         = "No image provided"
	MsgGenerateFailed  = "Failed to generate anime image"
	MsgServiceDown     = "API service unavailable. Please try again later."
	MsgClientFailed    = "Failed to generate anime character"
	MsgGenericFailure  = "An error occurred"
	PreviewModeMessage = "Using preview mode. Configure API keys for full functionality."
)

var (
	// Relay errors
	ErrNoImage     = errors.New("no image provided")
	ErrEmptyOutput = errors.New("upstream returned no output url")

	// Client errors
	ErrGenerateFailed = errors.New(MsgClientFailed)
	ErrNoFile         = errors.New("no file chosen")

	// Payload errors
	ErrInvalidPayload = errors.New("invalid image payload")
)
