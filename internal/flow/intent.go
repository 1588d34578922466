// Package flow provides claim-intent detection for chat-mode messages.
package flow

import "strings"

// claimKeywords trigger the switch from open chat to structured intake.
var claimKeywords = []string{
	"claim", "accident", "incident", "crash", "collision",
	"file a claim", "report", "damage", "loss",
}

// WantsIntake reports whether the input expresses intent to file a claim.
// Pure case-insensitive substring matching; no external calls.
func WantsIntake(raw string) bool {
	lower := strings.ToLower(raw)
	for _, keyword := range claimKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
