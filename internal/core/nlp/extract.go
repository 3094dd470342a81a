package nlp

import (
	"regexp"
	"strconv"
)

// AmountExtractor pulls numeric requests out of free text. It sits behind
// an interface so the regex version can be swapped for a more robust
// extractor without touching escalation logic.
type AmountExtractor interface {
	// DiscountPercent returns the first integer preceding "%", or 0.
	DiscountPercent(message string) int
	// TermMonths returns the integer in the first "<n> mes(es)" pattern, or 0.
	TermMonths(message string) int
}

var (
	discountRe = regexp.MustCompile(`(\d+)\s*%`)
	monthsRe   = regexp.MustCompile(`(\d+)\s*mes(?:es)?\b`)
)

type regexExtractor struct{}

// NewRegexExtractor returns the default regex-based AmountExtractor.
func NewRegexExtractor() AmountExtractor {
	return regexExtractor{}
}

func (regexExtractor) DiscountPercent(message string) int {
	return firstInt(discountRe, message)
}

func (regexExtractor) TermMonths(message string) int {
	return firstInt(monthsRe, message)
}

func firstInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
