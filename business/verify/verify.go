// Package verify checks spoken security answers against a case and tracks
// the attempt cap.
package verify

import (
	"strings"

	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

// DefaultMaxAttempts is the mismatch cap used when none is configured.
const DefaultMaxAttempts = 2

type Result int

const (
	Match Result = iota
	Mismatch
)

func (r Result) String() string {
	if r == Match {
		return "match"
	}
	return "mismatch"
}

// Engine compares answers exactly after normalization. It updates the
// attempt counter but never the case status.
type Engine struct {
	maxAttempts int
}

func New(maxAttempts int) *Engine {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Engine{maxAttempts: maxAttempts}
}

func (e *Engine) MaxAttempts() int {
	return e.maxAttempts
}

// Verify compares spoken against the stored answer. A mismatch increments
// c.VerificationAttempts, never past the cap, and the updated count is
// returned with the result.
func (e *Engine) Verify(c *fraudcase.FraudCase, spoken string) (Result, int) {
	if Normalize(spoken) == Normalize(c.SecurityAnswer) && Normalize(spoken) != "" {
		return Match, c.VerificationAttempts
	}

	if c.VerificationAttempts < e.maxAttempts {
		c.VerificationAttempts++
	}

	return Mismatch, c.VerificationAttempts
}

// AttemptsRemaining is max(0, maxAttempts - verificationAttempts).
func (e *Engine) AttemptsRemaining(c fraudcase.FraudCase) int {
	remaining := e.maxAttempts - c.VerificationAttempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Normalize trims, lowercases and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
