package config_test

import (
	"testing"

	"github.com/superfeelapi/goEagiFraud/foundation/config"
)

const (
	filepath  = "testdata/profiles.yaml"
	profileID = "securebank"
)

func TestGetProfile(t *testing.T) {
	t.Run("profile exists", func(t *testing.T) {
		t.Parallel()
		p, err := config.GetProfile(filepath, profileID)
		if err != nil {
			t.Fatal(err)
		}
		if p.BankName != "SecureBank" || p.MaxAttempts != 3 {
			t.Fatalf("unexpected profile: %+v", p)
		}
		if len(p.Keywords.Affirmative) != 3 || len(p.Keywords.Negative) != 2 {
			t.Fatalf("unexpected keywords: %+v", p.Keywords)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()
		p, err := config.GetProfile(filepath, "minimal")
		if err != nil {
			t.Fatal(err)
		}
		if p.BankName != "SecureBank" || p.MaxAttempts != 2 || p.Language != "en-US" {
			t.Fatalf("defaults not applied: %+v", p)
		}
	})

	t.Run("profile does not exist", func(t *testing.T) {
		t.Parallel()
		_, err := config.GetProfile(filepath, "0")
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("file does not exist", func(t *testing.T) {
		t.Parallel()
		_, err := config.GetProfile("testdata/missing.yaml", profileID)
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
