package entity

// Payload is an encoded image exchanged between client and relay: a
// self-describing data URI, or a URL reference returned by the upstream.
type Payload string

func (p Payload) Empty() bool {
	return p == ""
}

func (p Payload) String() string {
	return string(p)
}

type GenerateRequest struct {
	Image Payload `json:"image"`
}

type GenerateResponse struct {
	Output  Payload `json:"output"`
	Message string  `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeDegraded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// TransformResult is what the relay hands back for a valid request. Faults
// are reported as errors, never as a result.
type TransformResult struct {
	Outcome Outcome
	Output  Payload
	Message string
}

func Success(output Payload) TransformResult {
	return TransformResult{Outcome: OutcomeSuccess, Output: output}
}

// Degraded echoes the original payload back with an explanatory note.
func Degraded(original Payload) TransformResult {
	return TransformResult{Outcome: OutcomeDegraded, Output: original, Message: PreviewModeMessage}
}

func (r TransformResult) Response() GenerateResponse {
	return GenerateResponse{Output: r.Output, Message: r.Message}
}
