// Package bucket implements a token bucket over a storage backend. Buckets
// start full, drain one token per allowed request and refill continuously
// at a configured rate.
package bucket

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/austinerwin/quotarate/backends"
	"github.com/austinerwin/quotarate/utils/builderpool"
)

// checkAndSetRetries bounds the optimistic-locking retry loop.
const checkAndSetRetries = 8

// state is the persisted bucket snapshot.
type state struct {
	Tokens     float64
	LastRefill time.Time
}

// Result reports the outcome of a bucket operation.
type Result struct {
	Allowed   bool      // whether the request was admitted
	Remaining int       // whole tokens left after the operation
	Reset     time.Time // earliest time a denied request could succeed
}

// Strategy applies token bucket accounting against a backend.
type Strategy struct {
	storage backends.Backend
}

func New(storage backends.Backend) *Strategy {
	return &Strategy{storage: storage}
}

// Allow consumes one token if available and reports the outcome.
func (s *Strategy) Allow(ctx context.Context, config Config) (Result, error) {
	if err := config.Validate(); err != nil {
		return Result{}, err
	}

	capacity := float64(config.Capacity)
	now := time.Now()

	for attempt := 0; attempt < checkAndSetRetries; attempt++ {
		if ctx.Err() != nil {
			return Result{}, NewContextCancelledError(ctx.Err())
		}

		data, err := s.storage.Get(ctx, config.Key)
		if err != nil {
			return Result{}, NewStateRetrievalError(err)
		}

		var b state
		var oldValue string
		if data == "" {
			b = state{Tokens: capacity, LastRefill: now}
		} else {
			b, err = decodeState(data)
			if err != nil {
				return Result{}, err
			}
			oldValue = data

			elapsed := now.Sub(b.LastRefill).Seconds()
			b.Tokens = math.Min(b.Tokens+elapsed*config.RefillRate, capacity)
			b.LastRefill = now
		}

		if math.Floor(b.Tokens) < 1.0 {
			// Denied. Persist the refreshed state only for new buckets;
			// existing state is already consistent for readers.
			res := Result{
				Allowed:   false,
				Remaining: remainingTokens(b),
				Reset:     nextTokenAt(now, b, config.RefillRate),
			}
			if oldValue == "" {
				if _, err := s.storage.CheckAndSet(ctx, config.Key, "", encodeState(b), expirationFor(config)); err != nil {
					return Result{}, NewStateSaveError(err)
				}
			}
			return res, nil
		}

		b.Tokens -= 1.0

		ok, err := s.storage.CheckAndSet(ctx, config.Key, oldValue, encodeState(b), expirationFor(config))
		if err != nil {
			return Result{}, NewStateSaveError(err)
		}
		if ok {
			return Result{
				Allowed:   true,
				Remaining: remainingTokens(b),
				Reset:     now,
			}, nil
		}

		if attempt < checkAndSetRetries-1 {
			time.Sleep((19 * time.Nanosecond) << time.Duration(attempt))
		}
	}

	return Result{}, ErrConcurrentAccess
}

// Peek reports the current bucket state without consuming a token.
func (s *Strategy) Peek(ctx context.Context, config Config) (Result, error) {
	if err := config.Validate(); err != nil {
		return Result{}, err
	}

	now := time.Now()

	data, err := s.storage.Get(ctx, config.Key)
	if err != nil {
		return Result{}, NewStateRetrievalError(err)
	}

	if data == "" {
		return Result{Allowed: true, Remaining: config.Capacity, Reset: now}, nil
	}

	b, err := decodeState(data)
	if err != nil {
		return Result{}, err
	}

	elapsed := now.Sub(b.LastRefill).Seconds()
	b.Tokens = math.Min(b.Tokens+elapsed*config.RefillRate, float64(config.Capacity))

	remaining := remainingTokens(b)
	return Result{
		Allowed:   remaining > 0,
		Remaining: remaining,
		Reset:     nextTokenAt(now, b, config.RefillRate),
	}, nil
}

// Reset drops the bucket state so the next request sees a full bucket.
func (s *Strategy) Reset(ctx context.Context, config Config) error {
	return s.storage.Delete(ctx, config.Key)
}

func remainingTokens(b state) int {
	return max(int(b.Tokens), 0)
}

// nextTokenAt computes when the bucket will hold at least one full token.
func nextTokenAt(now time.Time, b state, rate float64) time.Time {
	needed := 1.0 - b.Tokens
	if needed <= 0 {
		return now
	}
	return now.Add(time.Duration(needed / rate * float64(time.Second)))
}

// expirationFor sizes the storage TTL to twice the full refill time, so
// idle buckets disappear once they are guaranteed to be full again.
func expirationFor(config Config) time.Duration {
	refill := time.Duration(float64(config.Capacity) / config.RefillRate * float64(time.Second))
	if refill < time.Minute {
		refill = time.Minute
	}
	return 2 * refill
}

// encodeState serializes state into a compact ASCII format:
// v1|tokens|lastrefill_unix_nano
func encodeState(b state) string {
	sb := builderpool.Get()
	defer builderpool.Put(sb)

	sb.WriteString("v1|")
	sb.WriteString(strconv.FormatFloat(b.Tokens, 'g', -1, 64))
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatInt(b.LastRefill.UnixNano(), 10))
	return sb.String()
}

func decodeState(s string) (state, error) {
	rest, ok := strings.CutPrefix(s, "v1|")
	if !ok {
		return state{}, ErrStateParsing
	}

	tokensStr, lastStr, ok := strings.Cut(rest, "|")
	if !ok {
		return state{}, ErrStateParsing
	}

	tokens, err := strconv.ParseFloat(tokensStr, 64)
	if err != nil {
		return state{}, ErrStateParsing
	}

	last, err := strconv.ParseInt(lastStr, 10, 64)
	if err != nil {
		return state{}, ErrStateParsing
	}

	return state{Tokens: tokens, LastRefill: time.Unix(0, last)}, nil
}
