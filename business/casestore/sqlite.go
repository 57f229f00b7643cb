package casestore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

// SQLiteStore keeps one row per case keyed by the normalized customer name.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, unavailable("open sqlite store", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, unavailable("open sqlite store", err)
	}

	// Serializes writers on the single file.
	db.SetMaxOpenConns(1)

	s := SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, unavailable("migrate sqlite store", err)
	}

	return &s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS fraud_cases (
			customer_key TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			security_question TEXT NOT NULL,
			security_answer TEXT NOT NULL,
			card_ending TEXT NOT NULL,
			transaction_amount TEXT NOT NULL,
			transaction_merchant TEXT NOT NULL,
			transaction_location TEXT NOT NULL,
			transaction_time TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending_review',
			resolved_at DATETIME,
			verification_attempts INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL DEFAULT ''
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Find(ctx context.Context, customerName string) (fraudcase.FraudCase, error) {
	const q = `
		SELECT customer_name, security_question, security_answer, card_ending,
			transaction_amount, transaction_merchant, transaction_location, transaction_time,
			status, resolved_at, verification_attempts, outcome
		FROM fraud_cases WHERE customer_key = ?`

	var c fraudcase.FraudCase
	var resolvedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, q, fraudcase.Key(customerName)).Scan(
		&c.CustomerName, &c.SecurityQuestion, &c.SecurityAnswer, &c.CardEnding,
		&c.TransactionAmount, &c.TransactionMerchant, &c.TransactionLocation, &c.TransactionTime,
		&c.Status, &resolvedAt, &c.VerificationAttempts, &c.Outcome,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fraudcase.FraudCase{}, fraudcase.ErrNotFound
	}
	if err != nil {
		return fraudcase.FraudCase{}, unavailable("find case", err)
	}

	if resolvedAt.Valid {
		at := resolvedAt.Time.UTC()
		c.ResolvedAt = &at
	}

	return c, nil
}

func (s *SQLiteStore) Save(ctx context.Context, c fraudcase.FraudCase) error {
	const q = `
		INSERT INTO fraud_cases (
			customer_key, customer_name, security_question, security_answer, card_ending,
			transaction_amount, transaction_merchant, transaction_location, transaction_time,
			status, resolved_at, verification_attempts, outcome
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(customer_key) DO UPDATE SET
			customer_name = excluded.customer_name,
			security_question = excluded.security_question,
			security_answer = excluded.security_answer,
			card_ending = excluded.card_ending,
			transaction_amount = excluded.transaction_amount,
			transaction_merchant = excluded.transaction_merchant,
			transaction_location = excluded.transaction_location,
			transaction_time = excluded.transaction_time,
			status = excluded.status,
			resolved_at = excluded.resolved_at,
			verification_attempts = excluded.verification_attempts,
			outcome = excluded.outcome`

	var resolvedAt sql.NullTime
	if c.ResolvedAt != nil {
		resolvedAt = sql.NullTime{Time: c.ResolvedAt.UTC().Truncate(time.Microsecond), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, q,
		c.Key(), c.CustomerName, c.SecurityQuestion, c.SecurityAnswer, c.CardEnding,
		c.TransactionAmount, c.TransactionMerchant, c.TransactionLocation, c.TransactionTime,
		c.CurrentStatus(), resolvedAt, c.VerificationAttempts, c.Outcome,
	)
	if err != nil {
		return unavailable("save case", err)
	}

	return nil
}
