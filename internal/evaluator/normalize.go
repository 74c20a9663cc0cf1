package evaluator

import (
	"fmt"
	"strings"
)

// Policy controls how free-text answers are folded before comparison.
// Judging is exact-match after trimming by default; Arabic orthographic
// variants (hamza placement, diacritics) then count as incorrect. The
// relaxed policies exist for deployments that want to forgive them.
type Policy string

const (
	PolicyNone       Policy = "none"
	PolicyDiacritics Policy = "diacritics"
	PolicyHamza      Policy = "hamza"
)

// ParsePolicy maps a config string onto a Policy, defaulting empty to none.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyNone:
		return PolicyNone, nil
	case PolicyDiacritics:
		return PolicyDiacritics, nil
	case PolicyHamza:
		return PolicyHamza, nil
	}
	return "", fmt.Errorf("unknown normalization policy %q", s)
}

// Arabic harakat and tatweel stripped under PolicyDiacritics and PolicyHamza.
var diacritics = map[rune]bool{
	0x064B: true, // fathatan
	0x064C: true, // dammatan
	0x064D: true, // kasratan
	0x064E: true, // fatha
	0x064F: true, // damma
	0x0650: true, // kasra
	0x0651: true, // shadda
	0x0652: true, // sukun
	0x0640: true, // tatweel
}

// Hamza-carrying alef forms folded to bare alef under PolicyHamza.
var hamzaFolds = map[rune]rune{
	0x0622: 0x0627, // alef madda
	0x0623: 0x0627, // alef hamza above
	0x0625: 0x0627, // alef hamza below
}

// normalize folds a free-text answer per the policy. Trimming applies under
// every policy, including none.
func (p Policy) normalize(s string) string {
	s = strings.TrimSpace(s)
	if p == PolicyNone {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if diacritics[r] {
			continue
		}
		if p == PolicyHamza {
			if folded, ok := hamzaFolds[r]; ok {
				r = folded
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// textEqual compares a submission against an answer key under the policy.
func (p Policy) textEqual(submitted, answer string) bool {
	return p.normalize(submitted) == p.normalize(answer)
}
