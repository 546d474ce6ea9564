package llm

import (
	"fmt"
	"strings"
)

// Guardrails decide whether a provider proposal is safe to apply.
// Rejections are conservative: a rejected chunk keeps its original
// text and the finding stays in the report for human review.
type Guardrails struct {
	// MinConfidence rejects proposals the provider itself is unsure of.
	MinConfidence float64

	// MaxEditDistance caps the token-level change a proposal may make.
	MaxEditDistance int
}

// NewGuardrails builds guardrails with the configured thresholds,
// falling back to the defaults for unset values.
func NewGuardrails(minConfidence float64, maxEditDistance int) Guardrails {
	if minConfidence <= 0 {
		minConfidence = 0.8
	}
	if maxEditDistance <= 0 {
		maxEditDistance = 8
	}
	return Guardrails{MinConfidence: minConfidence, MaxEditDistance: maxEditDistance}
}

// allowedAddedTokens are formatting tokens a correction may introduce
// even though they never appeared in the original chunk.
var allowedAddedTokens = map[string]bool{
	"INT.": true, "EXT.": true, "INT./EXT.": true, "I/E.": true,
	"-": true, "DAY": true, "NIGHT": true, "MORNING": true,
	"EVENING": true, "CONTINUOUS": true, "LATER": true,
	"(V.O.)": true, "(O.S.)": true, "(O.C.)": true, "(CONT'D)": true,
	"(": true, ")": true,
}

// Check validates one proposal against the original chunk text. A nil
// error means the proposal may be applied.
func (g Guardrails) Check(original, proposed string, confidence float64) error {
	if confidence < g.MinConfidence {
		return fmt.Errorf("confidence %.2f below threshold %.2f", confidence, g.MinConfidence)
	}
	if strings.TrimSpace(proposed) == "" {
		return fmt.Errorf("proposal is empty")
	}

	origTokens := strings.Fields(original)
	propTokens := strings.Fields(proposed)

	if d := tokenEditDistance(origTokens, propTokens); d > g.MaxEditDistance {
		return fmt.Errorf("token edit distance %d exceeds cap %d", d, g.MaxEditDistance)
	}

	if tok, ok := disallowedAddition(origTokens, propTokens); !ok {
		return fmt.Errorf("proposal introduces new token %q", tok)
	}

	return nil
}

// disallowedAddition finds the first proposed token that neither
// appears in the original (case-insensitively) nor is an allowed
// formatting token. Case-only rewrites of existing tokens are fine.
func disallowedAddition(orig, proposed []string) (string, bool) {
	seen := make(map[string]bool, len(orig))
	for _, t := range orig {
		seen[strings.ToUpper(t)] = true
	}
	for _, t := range proposed {
		upper := strings.ToUpper(strings.Trim(t, ".,;:!?"))
		if seen[strings.ToUpper(t)] || seen[upper] {
			continue
		}
		if allowedAddedTokens[strings.ToUpper(t)] || allowedAddedTokens[upper] {
			continue
		}
		return t, false
	}
	return "", true
}

// tokenEditDistance is Levenshtein distance over whole tokens.
func tokenEditDistance(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
