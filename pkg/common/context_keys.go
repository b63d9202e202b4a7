package common

type contextKey string

// Keys used for fiber locals and request contexts.
const (
	RequestIDKey      contextKey = "request_id"
	IdentityKey       contextKey = "identity"
	LatencyContextKey contextKey = "__execution_time"
)
