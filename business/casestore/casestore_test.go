package casestore_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/superfeelapi/goEagiFraud/business/casestore"
	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

func sampleCase() fraudcase.FraudCase {
	return fraudcase.FraudCase{
		CustomerName:        "John Smith",
		SecurityQuestion:    "What is your mother's maiden name?",
		SecurityAnswer:      "Johnson",
		CardEnding:          "4242",
		TransactionAmount:   "$2,499.99",
		TransactionMerchant: "ABC Industry",
		TransactionLocation: "Shanghai, China",
		TransactionTime:     "2:30 AM on November 26",
		Status:              fraudcase.PendingReview,
	}
}

type backend struct {
	name string
	open func(t *testing.T) casestore.Storer
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T) casestore.Storer {
			return casestore.NewMemoryStore()
		}},
		{"json", func(t *testing.T) casestore.Storer {
			s, err := casestore.OpenJSON(filepath.Join(t.TempDir(), "fraud_cases.json"))
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T) casestore.Storer {
			s, err := casestore.OpenSQLite(filepath.Join(t.TempDir(), "cases.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		}},
		{"redis", func(t *testing.T) casestore.Storer {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { client.Close() })
			return casestore.NewRedisStore(client, "")
		}},
	}
}

// requireSameCase compares records treating equal instants as equal.
func requireSameCase(t *testing.T, want, got fraudcase.FraudCase) {
	t.Helper()
	if want.ResolvedAt == nil {
		require.Nil(t, got.ResolvedAt)
	} else {
		require.NotNil(t, got.ResolvedAt)
		require.True(t, want.ResolvedAt.Equal(*got.ResolvedAt), "resolvedAt %v != %v", want.ResolvedAt, got.ResolvedAt)
	}
	want.ResolvedAt, got.ResolvedAt = nil, nil
	require.Equal(t, want, got)
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for _, b := range backends() {
		b := b
		t.Run(b.name, func(t *testing.T) {
			t.Run("miss", func(t *testing.T) {
				s := b.open(t)
				_, err := s.Find(ctx, "Nobody Here")
				require.ErrorIs(t, err, fraudcase.ErrNotFound)
			})

			t.Run("case-insensitive exact lookup", func(t *testing.T) {
				s := b.open(t)
				require.NoError(t, s.Save(ctx, sampleCase()))

				for _, name := range []string{"John Smith", "john smith", "  JOHN   SMITH "} {
					got, err := s.Find(ctx, name)
					require.NoError(t, err)
					requireSameCase(t, sampleCase(), got)
				}

				_, err := s.Find(ctx, "John")
				require.ErrorIs(t, err, fraudcase.ErrNotFound)
			})

			t.Run("full record round trip", func(t *testing.T) {
				s := b.open(t)
				c := sampleCase()
				c.VerificationAttempts = 1
				require.NoError(t, c.Resolve(fraudcase.Fraudulent, "customer denied", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
				require.NoError(t, s.Save(ctx, c))

				got, err := s.Find(ctx, c.CustomerName)
				require.NoError(t, err)
				requireSameCase(t, c, got)
			})

			t.Run("idempotent save", func(t *testing.T) {
				s := b.open(t)
				c := sampleCase()
				require.NoError(t, s.Save(ctx, c))
				first, err := s.Find(ctx, c.CustomerName)
				require.NoError(t, err)

				require.NoError(t, s.Save(ctx, c))
				second, err := s.Find(ctx, c.CustomerName)
				require.NoError(t, err)
				requireSameCase(t, first, second)
			})

			t.Run("find returns a copy", func(t *testing.T) {
				s := b.open(t)
				require.NoError(t, s.Save(ctx, sampleCase()))

				got, err := s.Find(ctx, "John Smith")
				require.NoError(t, err)
				got.VerificationAttempts = 2
				got.Status = fraudcase.Safe

				again, err := s.Find(ctx, "John Smith")
				require.NoError(t, err)
				require.Equal(t, 0, again.VerificationAttempts)
				require.Equal(t, fraudcase.PendingReview, again.Status)
			})

			t.Run("concurrent saves of one name", func(t *testing.T) {
				const writers, saves, readers, finds = 8, 5, 4, 20

				s := b.open(t)

				variants := make([]fraudcase.FraudCase, writers)
				for i := range variants {
					c := sampleCase()
					c.CardEnding = fmt.Sprintf("%04d", 1000+i)
					c.TransactionAmount = fmt.Sprintf("$%d.00", 100*(i+1))
					c.TransactionMerchant = fmt.Sprintf("Merchant %d", i)
					c.VerificationAttempts = i % 3
					variants[i] = c
				}
				require.NoError(t, s.Save(ctx, variants[0]))

				var wg sync.WaitGroup
				errs := make(chan error, writers*saves+readers*finds)
				seen := make(chan fraudcase.FraudCase, readers*finds)

				for i := 0; i < writers; i++ {
					wg.Add(1)
					go func(c fraudcase.FraudCase) {
						defer wg.Done()
						for j := 0; j < saves; j++ {
							if err := s.Save(ctx, c); err != nil {
								errs <- err
							}
						}
					}(variants[i])
				}

				for i := 0; i < readers; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						for j := 0; j < finds; j++ {
							got, err := s.Find(ctx, "john smith")
							if err != nil {
								errs <- err
								continue
							}
							seen <- got
						}
					}()
				}

				wg.Wait()
				close(errs)
				close(seen)

				for err := range errs {
					require.NoError(t, err)
				}

				require.Len(t, seen, readers*finds)
				for got := range seen {
					require.Contains(t, variants, got)
				}

				final, err := s.Find(ctx, "John Smith")
				require.NoError(t, err)
				require.Contains(t, variants, final)
			})
		})
	}
}

func TestJSONStoreDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fraud_cases.json")

	other := sampleCase()
	other.CustomerName = "Jane Doe"
	writeDocument(t, path, []fraudcase.FraudCase{sampleCase(), other})

	s, err := casestore.OpenJSON(path)
	require.NoError(t, err)
	require.Equal(t, path, s.Path())

	c, err := s.Find(ctx, "jane doe")
	require.NoError(t, err)
	require.NoError(t, c.Resolve(fraudcase.Safe, "confirmed", time.Now()))
	require.NoError(t, s.Save(ctx, c))

	cases, err := casestore.LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.Equal(t, "John Smith", cases[0].CustomerName)
	require.Equal(t, fraudcase.PendingReview, cases[0].Status)
	require.Equal(t, fraudcase.Safe, cases[1].Status)
	require.NotNil(t, cases[1].ResolvedAt)

	reopened, err := casestore.OpenJSON(path)
	require.NoError(t, err)
	got, err := reopened.Find(ctx, "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, fraudcase.Safe, got.Status)
}

func TestJSONStoreDocumentFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fraud_cases.json")
	s, err := casestore.OpenJSON(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleCase()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Len(t, raw, 1)
	for _, field := range []string{
		"customerName", "securityQuestion", "securityAnswer", "cardEnding",
		"transactionAmount", "transactionMerchant", "transactionLocation",
		"transactionTime", "status", "verificationAttempts",
	} {
		require.Contains(t, raw[0], field)
	}
	require.NotContains(t, raw[0], "resolvedAt")
}

func TestJSONStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.Mkdir(dir, 0755))

	s, err := casestore.OpenJSON(filepath.Join(dir, "fraud_cases.json"))
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleCase()))

	require.NoError(t, os.RemoveAll(dir))

	c := sampleCase()
	c.VerificationAttempts = 1
	err = s.Save(ctx, c)
	require.ErrorIs(t, err, fraudcase.ErrUnavailable)

	got, err := s.Find(ctx, c.CustomerName)
	require.NoError(t, err)
	require.Equal(t, 0, got.VerificationAttempts, "failed save must not be observable")
}

func TestJSONStoreDuplicateNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fraud_cases.json")
	dup := sampleCase()
	dup.CustomerName = "JOHN SMITH"
	writeDocument(t, path, []fraudcase.FraudCase{sampleCase(), dup})

	_, err := casestore.OpenJSON(path)
	require.Error(t, err)
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	s := casestore.NewRedisStore(client, "test:")
	mr.Close()

	_, err := s.Find(context.Background(), "John Smith")
	require.True(t, errors.Is(err, fraudcase.ErrUnavailable), "err = %v", err)

	err = s.Save(context.Background(), sampleCase())
	require.ErrorIs(t, err, fraudcase.ErrUnavailable)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.json")

	unset := sampleCase()
	unset.Status = ""
	writeDocument(t, path, []fraudcase.FraudCase{unset})

	cases, err := casestore.LoadDocument(path)
	require.NoError(t, err)

	s := casestore.NewMemoryStore()
	require.NoError(t, casestore.Seed(ctx, s, cases))

	got, err := s.Find(ctx, "John Smith")
	require.NoError(t, err)
	require.Equal(t, fraudcase.PendingReview, got.Status)
}

func writeDocument(t *testing.T, path string, cases []fraudcase.FraudCase) {
	t.Helper()
	b, err := json.MarshalIndent(cases, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0644))
}
