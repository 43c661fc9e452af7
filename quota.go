// Package quotarate converts human-readable quota phrases such as
// "20 messages per week", "1 message every 3 hours" or "unlimited" into
// token-bucket parameters, and provides a limiter that enforces them
// against pluggable storage backends.
package quotarate

import (
	"regexp"
	"strconv"
	"strings"
)

// BucketParams holds the token-bucket parameters derived from a quota
// phrase. When Unlimited is set, Capacity is meaningless and RatePerSec is
// exactly zero.
type BucketParams struct {
	Capacity   int     // maximum tokens the bucket may hold
	RatePerSec float64 // tokens replenished per second
	Unlimited  bool    // no capacity bound; rate stays zero
}

var (
	// A count, an optional message word, a separator, then the period phrase.
	quotaRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:msgs?|messages?)?\s*(?:per|/|every)\s+(.+)`)

	// countRe is quotaRe without the period tail, used to diagnose which
	// half of a failed match was missing.
	countRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:msgs?|messages?)?\s*(?:per|/|every)`)

	digitRe     = regexp.MustCompile(`\d`)
	separatorRe = regexp.MustCompile(`per|/|every`)
)

// Parse converts a quota phrase into bucket parameters. Input is matched
// case-insensitively and surrounding whitespace is ignored. Any phrase
// containing "unlimited" short-circuits to an unlimited bucket.
//
// Malformed input yields an error wrapping one of ErrCountNotFound,
// ErrPeriodNotFound, ErrDurationNotParseable or ErrZeroDuration.
func Parse(expression string) (BucketParams, error) {
	s := strings.ToLower(strings.TrimSpace(expression))

	if strings.Contains(s, "unlimited") {
		return BucketParams{Unlimited: true}, nil
	}

	m := quotaRe.FindStringSubmatch(s)
	if m == nil {
		// Tell the caller which half was missing. A count with no period
		// after it ("20 messages", "20 messages per") is a period problem;
		// anything else is a count problem.
		if countRe.MatchString(s) {
			return BucketParams{}, NewPeriodNotFoundError(expression)
		}
		if digitRe.MatchString(s) && !separatorRe.MatchString(s) {
			return BucketParams{}, NewPeriodNotFoundError(expression)
		}
		return BucketParams{}, NewCountNotFoundError(expression)
	}

	count, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return BucketParams{}, NewCountNotFoundError(expression)
	}
	// Truncation toward zero, not rounding: "2.9 messages" caps at 2.
	capacity := int(count)

	seconds, err := parseDurationSeconds(strings.TrimSpace(m[2]))
	if err != nil {
		return BucketParams{}, err
	}
	if seconds == 0 {
		return BucketParams{}, NewZeroDurationError(expression)
	}

	return BucketParams{
		Capacity:   capacity,
		RatePerSec: float64(capacity) / seconds,
	}, nil
}
