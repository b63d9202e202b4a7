package ratelimit

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	domain "github.com/tarpaulin/tarpaulin/pkg/domain/ratelimit"
	"github.com/tarpaulin/tarpaulin/pkg/infra/breaker"
	"github.com/tarpaulin/tarpaulin/pkg/infra/prometheus"
)

const (
	DefaultWindow       = 60000 * time.Millisecond
	DefaultMaxTokens    = 10.0
	DefaultStoreTimeout = 250 * time.Millisecond
)

// Decision is the outcome of one admission check. FailedOpen is set when the
// store could not be read and the request was admitted without accounting.
type Decision struct {
	Admitted   bool
	Tokens     float64
	FailedOpen bool
}

type Limiter interface {
	Admit(ctx context.Context, clientID string) Decision
}

type Opts struct {
	Window       time.Duration
	MaxTokens    float64
	StoreTimeout time.Duration
	Breaker      breaker.CircuitBreaker
	TimeProvider func() time.Time
}

type limiter struct {
	store        domain.Store
	logger       *logrus.Logger
	windowMillis int64
	maxTokens    float64
	storeTimeout time.Duration
	breaker      breaker.CircuitBreaker
	now          func() time.Time
}

// NewLimiter builds a token bucket limiter. Concurrent calls for the same
// client on different instances may both read the same state and over-admit;
// the read-modify-write against the store is not transactional.
func NewLimiter(store domain.Store, logger *logrus.Logger, opts *Opts) Limiter {
	if opts == nil {
		opts = &Opts{}
	}
	l := &limiter{
		store:        store,
		logger:       logger,
		windowMillis: DefaultWindow.Milliseconds(),
		maxTokens:    DefaultMaxTokens,
		storeTimeout: DefaultStoreTimeout,
		breaker:      opts.Breaker,
		now:          time.Now,
	}
	if opts.Window >= time.Millisecond {
		l.windowMillis = opts.Window.Milliseconds()
	}
	if opts.MaxTokens > 0 {
		l.maxTokens = opts.MaxTokens
	}
	if opts.StoreTimeout > 0 {
		l.storeTimeout = opts.StoreTimeout
	}
	if opts.TimeProvider != nil {
		l.now = opts.TimeProvider
	}
	return l
}

// DefaultBucket is the state of a client that has never been seen: a full
// bucket last refilled now.
func DefaultBucket(now time.Time, maxTokens float64) domain.TokenBucket {
	return domain.TokenBucket{Tokens: maxTokens, Last: now.UnixMilli()}
}

func (l *limiter) Admit(ctx context.Context, clientID string) Decision {
	now := l.now()

	var fields map[string]string
	err := l.call(ctx, func(ctx context.Context) error {
		var err error
		fields, err = l.store.GetFields(ctx, clientID)
		return err
	})
	if err != nil {
		l.logger.WithError(err).WithField("client", clientID).Warn("rate limit store unavailable, admitting request")
		prometheus.RateLimitDecisions.WithLabelValues(prometheus.DecisionFailedOpen).Inc()
		return Decision{Admitted: true, Tokens: l.maxTokens, FailedOpen: true}
	}

	bucket := l.refill(l.parseBucket(fields, now), now)

	admitted := bucket.Tokens >= 1
	if admitted {
		bucket.Tokens--
	}
	bucket.Last = now.UnixMilli()

	// persisted on rejection too, refill counts from now
	err = l.call(ctx, func(ctx context.Context) error {
		return l.store.SetFields(ctx, clientID, map[string]string{
			domain.FieldTokens: strconv.FormatFloat(bucket.Tokens, 'f', -1, 64),
			domain.FieldLast:   strconv.FormatInt(bucket.Last, 10),
		})
	})
	if err != nil {
		l.logger.WithError(err).WithField("client", clientID).Warn("failed to persist rate limit bucket")
	}

	if admitted {
		prometheus.RateLimitDecisions.WithLabelValues(prometheus.DecisionAdmitted).Inc()
	} else {
		prometheus.RateLimitDecisions.WithLabelValues(prometheus.DecisionRejected).Inc()
	}
	return Decision{Admitted: admitted, Tokens: bucket.Tokens}
}

func (l *limiter) call(ctx context.Context, fn func(ctx context.Context) error) error {
	run := func() error {
		callCtx, cancel := context.WithTimeout(ctx, l.storeTimeout)
		defer cancel()
		return fn(callCtx)
	}
	if l.breaker == nil {
		return run()
	}
	return l.breaker.Execute(run)
}

// parseBucket reads each field independently; a missing or malformed field
// takes its default value.
func (l *limiter) parseBucket(fields map[string]string, now time.Time) domain.TokenBucket {
	bucket := DefaultBucket(now, l.maxTokens)
	if raw, ok := fields[domain.FieldTokens]; ok {
		if tokens, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(tokens) && !math.IsInf(tokens, 0) {
			bucket.Tokens = math.Max(0, math.Min(l.maxTokens, tokens))
		}
	}
	if raw, ok := fields[domain.FieldLast]; ok {
		if last, err := strconv.ParseInt(raw, 10, 64); err == nil && last > 0 {
			bucket.Last = last
		}
	}
	return bucket
}

func (l *limiter) refill(bucket domain.TokenBucket, now time.Time) domain.TokenBucket {
	elapsed := now.UnixMilli() - bucket.Last
	if elapsed < 0 {
		elapsed = 0
	}
	bucket.Tokens = math.Min(l.maxTokens, bucket.Tokens+float64(elapsed)*l.maxTokens/float64(l.windowMillis))
	return bucket
}
