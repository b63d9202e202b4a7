package ratelimit

import "context"

const (
	FieldTokens = "tokens"
	FieldLast   = "last"
)

// TokenBucket is the persisted state of one client's request budget.
// Last is expressed in milliseconds since epoch.
type TokenBucket struct {
	Tokens float64
	Last   int64
}

// Store keeps bucket fields keyed by client identifier. GetFields returns an
// empty map for unknown keys.
type Store interface {
	GetFields(ctx context.Context, key string) (map[string]string, error)
	SetFields(ctx context.Context, key string, fields map[string]string) error
}
