// Package casestore persists fraud cases keyed by customer name.
package casestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

// Storer is the persistence contract the call state machine depends on.
// Implementations return fraudcase.ErrNotFound on a lookup miss and wrap
// fraudcase.ErrUnavailable for any backend failure.
type Storer interface {
	Find(ctx context.Context, customerName string) (fraudcase.FraudCase, error)
	Save(ctx context.Context, c fraudcase.FraudCase) error
}

// LoadDocument reads a JSON array of cases, the format used to seed stores.
func LoadDocument(path string) ([]fraudcase.FraudCase, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case document: %w", err)
	}

	var cases []fraudcase.FraudCase
	if err := json.Unmarshal(b, &cases); err != nil {
		return nil, fmt.Errorf("decode case document: %w", err)
	}

	return cases, nil
}

// Seed saves every case into s.
func Seed(ctx context.Context, s Storer, cases []fraudcase.FraudCase) error {
	for _, c := range cases {
		if c.Status == "" {
			c.Status = fraudcase.PendingReview
		}
		if err := s.Save(ctx, c); err != nil {
			return fmt.Errorf("seed case[%s]: %w", c.CustomerName, err)
		}
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, fraudcase.ErrUnavailable, err)
}
