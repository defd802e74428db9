// Package matcher scores option labels against a search query.
//
// A score of 0 excludes an option from the visible result set, any positive
// score includes it. The built-in scorers are binary except Fuzzy, which
// ranks hits by fuzzy match quality but keeps the same inclusion rule as
// Default.
package matcher

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"tutorselect/internal/domain"
)

// Func scores a candidate label against a query
type Func func(label, query string) int

// DefaultDelimiter separates the name and phone segments of a tutor label
const DefaultDelimiter = " - "

// Default includes a label when it contains the query (case-insensitive) or
// when the digits found in the label start with the digits of the query.
// A query without digits only matches as text.
func Default(label, query string) int {
	if strings.Contains(strings.ToLower(label), strings.ToLower(query)) {
		return 1
	}

	if digits := Digits(query); digits != "" && strings.HasPrefix(Digits(label), digits) {
		return 1
	}

	return 0
}

// PhoneAware returns a scorer for "name<delimiter>phone" labels. A purely
// numeric query is matched as a prefix of the phone digits, anything else as a
// case-insensitive prefix of the name.
func PhoneAware(delimiter string) Func {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return func(label, query string) int {
		name, phone, _ := strings.Cut(label, delimiter)

		if IsNumeric(query) {
			if strings.HasPrefix(Digits(phone), query) {
				return 1
			}
			return 0
		}

		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(query)) {
			return 1
		}
		return 0
	}
}

// fuzzyOffset lifts fuzzy scores, which go negative for long labels, above
// zero without changing their order.
const fuzzyOffset = 1 << 16

// Fuzzy keeps the inclusion rule of Default and ranks included labels by
// their fuzzy match score: first-character, adjacent and word-start hits
// score higher, unmatched characters lower.
func Fuzzy(label, query string) int {
	if Default(label, query) == 0 {
		return 0
	}
	if query == "" {
		return 1
	}
	matches := fuzzy.Find(query, []string{label})
	if len(matches) == 0 {
		return 1
	}
	if score := fuzzyOffset + matches[0].Score; score > 1 {
		return score
	}
	return 1
}

// Filter returns the options scoring above zero, in their original order.
// A nil fn falls back to Default.
func Filter(options []domain.Option, query string, fn Func) []domain.Option {
	if fn == nil {
		fn = Default
	}
	out := make([]domain.Option, 0, len(options))
	for _, opt := range options {
		if fn(opt.Label, query) > 0 {
			out = append(out, opt)
		}
	}
	return out
}

// Rank filters like Filter and orders the result by descending score.
// Ties keep their original relative order.
func Rank(options []domain.Option, query string, fn Func) []domain.Option {
	if fn == nil {
		fn = Default
	}
	type scored struct {
		opt   domain.Option
		score int
	}
	hits := make([]scored, 0, len(options))
	for _, opt := range options {
		if s := fn(opt.Label, query); s > 0 {
			hits = append(hits, scored{opt: opt, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]domain.Option, len(hits))
	for i, h := range hits {
		out[i] = h.opt
	}
	return out
}

// Digits returns every digit in s, concatenated
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsNumeric reports whether s is non-empty and made only of ASCII digits
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || r < '0' || r > '9' {
			return false
		}
	}
	return true
}
