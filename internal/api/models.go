package api

type ErrorResponse struct {
	Error string `json:"error"`
}

// ParseErrorResponse carries the model text back when no itinerary could be read from it.
type ParseErrorResponse struct {
	Error    string `json:"error"`
	Response string `json:"response"`
}

const (
	TraceIDHeader = "X-Trace-ID"
	traceIDKey    = "trace_id"
)
