package constant

const (
	LogFieldErr      = "error"
	LogFieldPayload  = "payload"
	LogFieldResponse = "response"
	LogFieldTraceId  = "trace_id"
	LogFieldState    = "state"
)
