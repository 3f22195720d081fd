// Package resilience wraps outbound calls with per-attempt timeouts,
// exponential backoff and a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

var ErrRegistry = errx.NewRegistry("RESILIENCE")

var CodeCircuitOpen = ErrRegistry.Register("CIRCUIT_OPEN", errx.TypeExternal, http.StatusServiceUnavailable, "Downstream service temporarily unavailable")

// ErrCircuitOpen is returned without calling the operation while the breaker is open
func ErrCircuitOpen() *errx.Error {
	return ErrRegistry.New(CodeCircuitOpen)
}

// BreakerPolicy configures the circuit breaker
type BreakerPolicy struct {
	// MaxFailures consecutive failures trip the breaker. Zero disables the breaker.
	MaxFailures         uint32        `mapstructure:"max_failures"`
	OpenTimeout         time.Duration `mapstructure:"open_timeout"`
	HalfOpenMaxRequests uint32        `mapstructure:"half_open_max_requests"`
}

// Policy configures retries and timeouts for one downstream
type Policy struct {
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
	// Timeout bounds a single attempt. Zero means no per-attempt timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker BreakerPolicy `mapstructure:"breaker"`
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      2,
		Timeout:         60 * time.Second,
		Breaker: BreakerPolicy{
			MaxFailures:         5,
			OpenTimeout:         30 * time.Second,
			HalfOpenMaxRequests: 1,
		},
	}
}

// Executor runs operations under a Policy
type Executor struct {
	name    string
	policy  Policy
	breaker *gobreaker.CircuitBreaker
}

func NewExecutor(name string, policy Policy) *Executor {
	e := &Executor{name: name, policy: policy}

	if policy.Breaker.MaxFailures > 0 {
		e.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: policy.Breaker.HalfOpenMaxRequests,
			Timeout:     policy.Breaker.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= policy.Breaker.MaxFailures
			},
			// permanent errors and cancellations do not count as failures
			IsSuccessful: func(err error) bool {
				return err == nil || isPermanent(err) || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logx.Warnf("circuit breaker %s: %s -> %s", name, from, to)
			},
		})
	}

	return e
}

// Name returns the executor name
func (e *Executor) Name() string { return e.name }

// Do runs fn until it succeeds, returns a permanent error, exhausts the retry
// budget or ctx is done. The last error is returned unwrapped.
func (e *Executor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempt := 0
	op := func() error {
		attempt++
		err := e.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(ErrCircuitOpen().
				WithDetail("executor", e.name).
				WithCause(err))
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		logx.Debugf("%s attempt %d failed, retrying in %s: %v", e.name, attempt, wait, err)
	}

	err := backoff.RetryNotify(op, backoff.WithContext(e.backoff(), ctx), notify)
	if err == nil {
		return nil
	}

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}

func (e *Executor) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	run := func() error {
		attemptCtx := ctx
		if e.policy.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, e.policy.Timeout)
			defer cancel()
		}
		return fn(attemptCtx)
	}

	if e.breaker == nil {
		return run()
	}
	_, err := e.breaker.Execute(func() (interface{}, error) {
		return nil, run()
	})
	return err
}

func (e *Executor) backoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if e.policy.InitialInterval > 0 {
		b.InitialInterval = e.policy.InitialInterval
	}
	if e.policy.MaxInterval > 0 {
		b.MaxInterval = e.policy.MaxInterval
	}
	if e.policy.Multiplier > 0 {
		b.Multiplier = e.policy.Multiplier
	}
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithMaxRetries(b, e.policy.MaxRetries)
}

// DoValue is Do for operations that return a value
func DoValue[T any](ctx context.Context, e *Executor, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := e.Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

func isPermanent(err error) bool {
	var perm *backoff.PermanentError
	return errors.As(err, &perm)
}
