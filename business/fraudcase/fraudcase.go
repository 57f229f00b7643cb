// Package fraudcase holds the fraud review record and its status lifecycle.
package fraudcase

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("fraud case not found")
	ErrUnavailable    = errors.New("case store unavailable")
	ErrStatusConflict = errors.New("case already resolved with a different status")
	ErrInvalidStatus  = errors.New("invalid case status")
)

type Status string

const (
	PendingReview      Status = "pending_review"
	Safe               Status = "safe"
	Fraudulent         Status = "fraudulent"
	VerificationFailed Status = "verification_failed"
)

// IsTerminal reports whether the status ends the review lifecycle.
func (s Status) IsTerminal() bool {
	switch s {
	case Safe, Fraudulent, VerificationFailed:
		return true
	}
	return false
}

// FraudCase is one customer's fraud review record. The JSON layout is read and
// written directly by seeding tools.
type FraudCase struct {
	CustomerName         string     `json:"customerName"`
	SecurityQuestion     string     `json:"securityQuestion"`
	SecurityAnswer       string     `json:"securityAnswer"`
	CardEnding           string     `json:"cardEnding"`
	TransactionAmount    string     `json:"transactionAmount"`
	TransactionMerchant  string     `json:"transactionMerchant"`
	TransactionLocation  string     `json:"transactionLocation"`
	TransactionTime      string     `json:"transactionTime"`
	Status               Status     `json:"status"`
	ResolvedAt           *time.Time `json:"resolvedAt,omitempty"`
	VerificationAttempts int        `json:"verificationAttempts"`
	Outcome              string     `json:"outcome,omitempty"`
}

// Key returns the store key of the case.
func (c FraudCase) Key() string {
	return Key(c.CustomerName)
}

// CurrentStatus treats an unset status from seed data as pending review.
func (c FraudCase) CurrentStatus() Status {
	if c.Status == "" {
		return PendingReview
	}
	return c.Status
}

// Resolve moves a pending case to a terminal status and stamps ResolvedAt.
// Applying the status the case already has is a no-op.
func (c *FraudCase) Resolve(status Status, outcome string, now time.Time) error {
	if !status.IsTerminal() {
		return fmt.Errorf("resolve %q: %w", status, ErrInvalidStatus)
	}

	current := c.CurrentStatus()
	if current == status {
		return nil
	}
	if current.IsTerminal() {
		return fmt.Errorf("resolve %q over %q: %w", status, current, ErrStatusConflict)
	}

	at := now.UTC()
	c.Status = status
	c.ResolvedAt = &at
	c.Outcome = outcome

	return nil
}

// Clone returns a copy that shares no memory with c.
func (c FraudCase) Clone() FraudCase {
	if c.ResolvedAt != nil {
		at := *c.ResolvedAt
		c.ResolvedAt = &at
	}
	return c
}

// Key normalizes a customer name for case-insensitive exact lookup.
func Key(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
