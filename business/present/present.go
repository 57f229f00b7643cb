// Package present renders a case's suspicious transaction as one sentence.
package present

import (
	"fmt"
	"strings"

	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

// Describe renders amount, merchant, location and time, in that order.
func Describe(c fraudcase.FraudCase) string {
	var b strings.Builder

	b.WriteString("We detected a suspicious transaction")
	if card := strings.TrimSpace(c.CardEnding); card != "" {
		fmt.Fprintf(&b, " on your card ending in %s", card)
	}
	fmt.Fprintf(&b, ": a charge of %s at %s, in %s, at %s.",
		field(c.TransactionAmount),
		field(c.TransactionMerchant),
		field(c.TransactionLocation),
		field(c.TransactionTime),
	)

	return b.String()
}

func field(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "an unknown value"
	}
	return s
}
