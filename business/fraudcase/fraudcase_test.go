package fraudcase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

func TestResolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("pending to terminal", func(t *testing.T) {
		c := fraudcase.FraudCase{CustomerName: "John Smith"}
		if err := c.Resolve(fraudcase.Safe, "confirmed", now); err != nil {
			t.Fatal(err)
		}
		if c.Status != fraudcase.Safe {
			t.Fatalf("status = %s", c.Status)
		}
		if c.ResolvedAt == nil || !c.ResolvedAt.Equal(now) {
			t.Fatalf("resolvedAt = %v", c.ResolvedAt)
		}
	})

	t.Run("same terminal status is a no-op", func(t *testing.T) {
		c := fraudcase.FraudCase{Status: fraudcase.PendingReview}
		if err := c.Resolve(fraudcase.Fraudulent, "denied", now); err != nil {
			t.Fatal(err)
		}
		if err := c.Resolve(fraudcase.Fraudulent, "again", now.Add(time.Hour)); err != nil {
			t.Fatal(err)
		}
		if !c.ResolvedAt.Equal(now) || c.Outcome != "denied" {
			t.Fatalf("second resolve changed the record: %+v", c)
		}
	})

	t.Run("different terminal status rejected", func(t *testing.T) {
		c := fraudcase.FraudCase{Status: fraudcase.VerificationFailed}
		err := c.Resolve(fraudcase.Safe, "", now)
		if !errors.Is(err, fraudcase.ErrStatusConflict) {
			t.Fatalf("err = %v", err)
		}
		if c.Status != fraudcase.VerificationFailed {
			t.Fatalf("status overwritten: %s", c.Status)
		}
	})

	t.Run("non-terminal target rejected", func(t *testing.T) {
		c := fraudcase.FraudCase{}
		if err := c.Resolve(fraudcase.PendingReview, "", now); !errors.Is(err, fraudcase.ErrInvalidStatus) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestKey(t *testing.T) {
	for _, name := range []string{"John Smith", " john  smith ", "JOHN SMITH\t"} {
		if got := fraudcase.Key(name); got != "john smith" {
			t.Fatalf("Key(%q) = %q", name, got)
		}
	}
}

func TestClone(t *testing.T) {
	at := time.Now()
	c := fraudcase.FraudCase{ResolvedAt: &at}
	cp := c.Clone()
	*cp.ResolvedAt = at.Add(time.Hour)
	if !c.ResolvedAt.Equal(at) {
		t.Fatal("clone shares resolvedAt")
	}
}
