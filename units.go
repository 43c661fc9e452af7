package quotarate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// unitSeconds maps every accepted duration unit spelling to its length in
// seconds. Months are approximated as 30 days and years as 365 days.
var unitSeconds = map[string]int64{
	"seconds": 1, "second": 1, "secs": 1, "sec": 1, "s": 1,
	"minutes": 60, "minute": 60, "mins": 60, "min": 60, "m": 60,
	"hours": 3600, "hour": 3600, "hrs": 3600, "hr": 3600, "h": 3600,
	"days": 86400, "day": 86400, "d": 86400,
	"weeks": 604800, "week": 604800, "wk": 604800, "w": 604800,
	"months": 2592000, "month": 2592000, "mo": 2592000,
	"years": 31536000, "year": 31536000, "yr": 31536000, "y": 31536000,
}

// fractionWords maps fraction words to their decimal value in (0, 1].
// Matched with word boundaries so "half" inside another word is left alone.
var fractionWords = map[string]float64{
	"half":    0.5,
	"quarter": 0.25,
	"third":   1.0 / 3.0,
}

// fractionSymbols replaces the unicode vulgar fraction glyphs. Go's \b is
// ASCII-only so these cannot go through the word-boundary path; the glyphs
// can never sit inside an ASCII word, so plain replacement is safe.
var fractionSymbols = strings.NewReplacer(
	"¾", "0.75",
	"½", "0.5",
	"¼", "0.25",
)

var (
	fractionWordRe *regexp.Regexp
	unitRe         *regexp.Regexp
	articleRe      = regexp.MustCompile(`\ba\s+`)
)

func init() {
	fractionWordRe = regexp.MustCompile(`\b(` + joinKeysLongestFirst(fractionWords) + `)\b`)

	// Longest spelling first so "m" can never pre-empt "month" or "minute".
	unitRe = regexp.MustCompile(`\b(?:(\d+(?:\.\d+)?)\s*)?(` + joinKeysLongestFirst(unitSeconds) + `)\b`)
}

func joinKeysLongestFirst[V any](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return strings.Join(keys, "|")
}

// normalizePeriod rewrites fraction words and glyphs to decimal strings and
// then drops indefinite articles, so "half a week" becomes "0.5 week".
// Substitution must run before article stripping.
func normalizePeriod(phrase string) string {
	text := fractionWordRe.ReplaceAllStringFunc(phrase, func(word string) string {
		return strconv.FormatFloat(fractionWords[word], 'g', -1, 64)
	})
	text = fractionSymbols.Replace(text)
	return articleRe.ReplaceAllString(text, "")
}

// parseDurationSeconds resolves a period phrase like "3 hours", "week" or
// "half a week" to seconds. A missing quantity defaults to 1.
func parseDurationSeconds(phrase string) (float64, error) {
	m := unitRe.FindStringSubmatch(normalizePeriod(phrase))
	if m == nil {
		return 0, NewDurationNotParseableError(phrase)
	}

	qty := 1.0
	if m[1] != "" {
		var err error
		qty, err = strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, NewDurationNotParseableError(phrase)
		}
	}

	return qty * float64(unitSeconds[m[2]]), nil
}
