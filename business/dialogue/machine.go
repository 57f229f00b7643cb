// Package dialogue implements the fraud verification call as a state machine
// driven by one recognized utterance at a time.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/superfeelapi/goEagiFraud/business/casestore"
	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
	"github.com/superfeelapi/goEagiFraud/business/present"
	"github.com/superfeelapi/goEagiFraud/business/verify"
	"go.uber.org/zap"
)

// ErrCallEnded is returned by Handle once the call reached Ending.
var ErrCallEnded = errors.New("call has ended")

// maxAmbiguous is the number of unclear confirmations accepted before the
// reply is read as a denial.
const maxAmbiguous = 2

type State int

const (
	Greeting State = iota
	AwaitingName
	AwaitingVerification
	PresentingTransaction
	AwaitingConfirmation
	Ending
)

func (s State) String() string {
	switch s {
	case Greeting:
		return "greeting"
	case AwaitingName:
		return "awaiting_name"
	case AwaitingVerification:
		return "awaiting_verification"
	case PresentingTransaction:
		return "presenting_transaction"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Ending:
		return "ending"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Reason explains how a call ended.
type Reason string

const (
	ReasonResolved         Reason = "resolved"
	ReasonNotFound         Reason = "case_not_found"
	ReasonAlreadyResolved  Reason = "already_resolved"
	ReasonStoreUnavailable Reason = "store_unavailable"
	ReasonFailed           Reason = "failed"
)

// Outcome is the final decision of a call. It is meaningful once the
// machine is in Ending.
type Outcome struct {
	CustomerName string
	Status       fraudcase.Status
	Reason       Reason
	ResolvedAt   *time.Time
	Err          error
}

// Snapshot is a read-only view of a call in progress.
type Snapshot struct {
	State             string `json:"state"`
	CustomerName      string `json:"customerName,omitempty"`
	Status            string `json:"status,omitempty"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
}

type Config struct {
	Store      casestore.Storer
	Verifier   *verify.Engine
	Classifier *Classifier
	Script     Script
	Logger     *zap.SugaredLogger
	Now        func() time.Time
}

// Machine runs a single call. Transitions are serialized: each Handle call
// completes, including any store write, before the next is accepted.
type Machine struct {
	store      casestore.Storer
	verifier   *verify.Engine
	classifier *Classifier
	script     Script
	logger     *zap.SugaredLogger
	now        func() time.Time

	mu        sync.RWMutex
	state     State
	current   *fraudcase.FraudCase
	ambiguous int
	outcome   Outcome
}

func New(cfg Config) *Machine {
	m := Machine{
		store:      cfg.Store,
		verifier:   cfg.Verifier,
		classifier: cfg.Classifier,
		script:     cfg.Script,
		logger:     cfg.Logger,
		now:        cfg.Now,
		state:      Greeting,
	}
	if m.verifier == nil {
		m.verifier = verify.New(verify.DefaultMaxAttempts)
	}
	if m.classifier == nil {
		m.classifier = NewClassifier(nil, nil)
	}
	if m.logger == nil {
		m.logger = zap.NewNop().Sugar()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return &m
}

// Start emits the identification utterance and waits for the name.
func (m *Machine) Start(ctx context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Greeting {
		return nil
	}

	m.transition(AwaitingName)
	return []string{m.script.Greeting()}
}

// Handle consumes one recognized utterance and returns what to say next.
// The only error surfaced mid-call is a store failure, after which the call
// has already moved to Ending with an apology.
func (m *Machine) Handle(ctx context.Context, utterance string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Greeting:
		m.transition(AwaitingName)
		return []string{m.script.Greeting()}, nil

	case AwaitingName:
		return m.handleName(ctx, utterance)

	case AwaitingVerification:
		return m.handleAnswer(ctx, utterance)

	case AwaitingConfirmation:
		return m.handleConfirmation(ctx, utterance)
	}

	return nil, ErrCallEnded
}

func (m *Machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Ended reports whether the call reached its terminal state.
func (m *Machine) Ended() bool {
	return m.State() == Ending
}

func (m *Machine) Outcome() Outcome {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.outcome
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{State: m.state.String()}
	if m.current != nil {
		s.CustomerName = m.current.CustomerName
		s.Status = string(m.current.CurrentStatus())
		s.AttemptsRemaining = m.verifier.AttemptsRemaining(*m.current)
	}
	return s
}

// =====================================================================================================================

func (m *Machine) handleName(ctx context.Context, utterance string) ([]string, error) {
	name := ExtractName(utterance)
	if name == "" {
		return []string{m.script.AskNameAgain()}, nil
	}

	c, err := m.store.Find(ctx, name)
	switch {
	case errors.Is(err, fraudcase.ErrNotFound):
		m.logger.Warnw("dialogue: case lookup: not found", "customer", name)
		m.end(Outcome{CustomerName: name, Reason: ReasonNotFound})
		return []string{m.script.NotFound(name)}, nil

	case err != nil:
		return m.fail(name, err)
	}

	m.logger.Infow("dialogue: case lookup: found", "customer", c.CustomerName, "cardEnding", c.CardEnding, "status", c.CurrentStatus())

	if status := c.CurrentStatus(); status.IsTerminal() {
		m.end(Outcome{CustomerName: c.CustomerName, Status: status, Reason: ReasonAlreadyResolved, ResolvedAt: c.ResolvedAt})
		return []string{m.script.AlreadyReviewed()}, nil
	}

	m.current = &c

	if m.verifier.AttemptsRemaining(c) == 0 {
		if limit := m.verifier.MaxAttempts(); c.VerificationAttempts > limit {
			c.VerificationAttempts = limit
		}
		return m.resolve(ctx, c, fraudcase.VerificationFailed, m.lockOutNote(), m.script.LockedOut())
	}

	m.transition(AwaitingVerification)
	return []string{m.script.SecurityQuestion(c.CustomerName, c.SecurityQuestion)}, nil
}

func (m *Machine) handleAnswer(ctx context.Context, utterance string) ([]string, error) {
	if strings.TrimSpace(utterance) == "" {
		return []string{m.script.RepeatQuestion(m.current.SecurityQuestion)}, nil
	}

	working := m.current.Clone()
	result, attempts := m.verifier.Verify(&working, utterance)

	m.logger.Infow("dialogue: verification", "customer", working.CustomerName, "result", result, "attempts", attempts)

	if result == verify.Match {
		m.current = &working
		m.transition(PresentingTransaction)
		replies := []string{
			m.script.Verified(),
			present.Describe(working),
			m.script.ConfirmPrompt(),
		}
		m.transition(AwaitingConfirmation)
		return replies, nil
	}

	remaining := m.verifier.AttemptsRemaining(working)
	if remaining == 0 {
		return m.resolve(ctx, working, fraudcase.VerificationFailed, m.lockOutNote(), m.script.LockedOut())
	}

	// The counter is persisted so a dropped call cannot reset it.
	if err := m.store.Save(ctx, working); err != nil {
		return m.fail(working.CustomerName, err)
	}
	m.current = &working

	return []string{m.script.Retry(remaining, working.SecurityQuestion)}, nil
}

func (m *Machine) handleConfirmation(ctx context.Context, utterance string) ([]string, error) {
	if strings.TrimSpace(utterance) == "" {
		return []string{m.script.ConfirmPrompt()}, nil
	}

	c := *m.current
	class := m.classifier.Classify(utterance)

	m.logger.Infow("dialogue: confirmation", "customer", c.CustomerName, "classification", class)

	switch class {
	case Affirmative:
		return m.resolve(ctx, c, fraudcase.Safe,
			"Customer confirmed the transaction as legitimate.",
			m.script.MarkedSafe(c.CardEnding))

	case Negative:
		return m.resolve(ctx, c, fraudcase.Fraudulent,
			"Customer denied the transaction. Card blocked and dispute filed.",
			m.script.CardBlocked(c.CardEnding))
	}

	m.ambiguous++
	if m.ambiguous < maxAmbiguous {
		return []string{m.script.ConfirmAgain()}, nil
	}

	m.logger.Warnw("dialogue: confirmation: no clear answer, treating as denied", "customer", c.CustomerName)
	return m.resolve(ctx, c, fraudcase.Fraudulent,
		"No clear confirmation from customer. Treated as not recognized; card blocked and dispute filed.",
		m.script.CardBlocked(c.CardEnding))
}

// resolve writes the terminal status in the same transition that ends the
// call. If the write fails the decision is dropped and the call apologizes.
func (m *Machine) resolve(ctx context.Context, c fraudcase.FraudCase, status fraudcase.Status, note string, line string) ([]string, error) {
	decided := c.Clone()
	if err := decided.Resolve(status, note, m.now()); err != nil {
		return m.fail(c.CustomerName, err)
	}

	if err := m.store.Save(ctx, decided); err != nil {
		return m.fail(c.CustomerName, err)
	}

	m.current = &decided
	m.logger.Infow("dialogue: case resolved", "customer", decided.CustomerName, "status", decided.Status, "attempts", decided.VerificationAttempts)

	m.end(Outcome{
		CustomerName: decided.CustomerName,
		Status:       decided.Status,
		Reason:       ReasonResolved,
		ResolvedAt:   decided.ResolvedAt,
	})
	return []string{line}, nil
}

func (m *Machine) fail(customer string, err error) ([]string, error) {
	reason := ReasonFailed
	if errors.Is(err, fraudcase.ErrUnavailable) {
		reason = ReasonStoreUnavailable
	}

	m.logger.Errorw("dialogue: call aborted", "customer", customer, "reason", reason, "ERROR", err)

	m.current = nil
	m.end(Outcome{CustomerName: customer, Reason: reason, Err: err})
	return []string{m.script.Apology()}, err
}

func (m *Machine) end(o Outcome) {
	m.outcome = o
	m.transition(Ending)
}

func (m *Machine) transition(to State) {
	m.logger.Infow("dialogue: transition", "from", m.state, "to", to)
	m.state = to
}

func (m *Machine) lockOutNote() string {
	return fmt.Sprintf("Identity verification failed after %d attempts.", m.verifier.MaxAttempts())
}
