package worker

import (
	"context"
	"time"

	"github.com/superfeelapi/goEagiFraud/business/dialogue"
	"github.com/superfeelapi/goEagiFraud/foundation/redis"
	"github.com/superfeelapi/goEagiFraud/foundation/speech"
	"go.uber.org/zap"
)

// Listener delivers recognition results for the call.
type Listener interface {
	Listen(ctx context.Context) <-chan speech.Result
}

// Speaker renders outbound text.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type Settings struct {
	Config
	Logger   *zap.SugaredLogger
	Machine  *dialogue.Machine
	Listener Listener
	Speaker  Speaker
	Redis    *redis.Redis
}

type Config struct {
	CallID    string
	Actor     string
	ProfileID string
}

// =====================================================================================================================

// Decision is published once per call when the dialogue ends.
type Decision struct {
	DataID       string     `json:"data_id"`
	CallID       string     `json:"call_id"`
	Source       string     `json:"source"`
	ProfileID    string     `json:"profile_id"`
	CustomerName string     `json:"customer_name"`
	Status       string     `json:"status,omitempty"`
	Reason       string     `json:"reason"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

type utterance struct {
	text   string
	hangup bool
	err    error
}

type reply struct {
	text  string
	final bool
	err   error
}
