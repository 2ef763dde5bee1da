package services

// Meta carries per-request metadata threaded through logging and returned
// to the caller.
type Meta struct {
	LatencyMS int64  `json:"latency_ms"`
	TraceID   string `json:"trace_id"`
}

// EnvelopeError is a machine-readable error carried inside a response
// envelope. Exactly one of the success payload or the error is populated.
type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stable error codes for the speech pipelines
const (
	CodeVoiceProcessingFailed = "VOICE_PROCESSING_FAILED"
	CodeTTSFailed             = "TTS_FAILED"
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeMethodNotAllowed      = "METHOD_NOT_ALLOWED"
)
