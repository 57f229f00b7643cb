// Package worker runs one call: it pumps recognized utterances into the
// dialogue, forwards replies to the speaker and publishes the decision.
package worker

import (
	"context"
	"sync"

	"github.com/superfeelapi/goEagiFraud/business/dialogue"
	"github.com/superfeelapi/goEagiFraud/foundation/pubsub"
	"github.com/superfeelapi/goEagiFraud/foundation/redis"
	"github.com/superfeelapi/goEagiFraud/foundation/state"
	"go.uber.org/zap"
)

const (
	utteranceTopic = "utterance"
	speechTopic    = "speech"
	decisionTopic  = "decision"
)

type Worker struct {
	config Config
	state  *state.State
	logger *zap.SugaredLogger

	machine  *dialogue.Machine
	listener Listener
	speaker  Speaker
	redis    *redis.Redis
	broker   *pubsub.Broker

	utteranceSub *pubsub.Subscriber
	speechSub    *pubsub.Subscriber
	decisionSub  *pubsub.Subscriber

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	shut     chan struct{}
	shutOnce sync.Once
	error    chan error
}

// Run starts the call and returns a channel that yields the terminal error,
// nil on a normal end of call, and is then closed.
func Run(s Settings) <-chan error {
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		config:       s.Config,
		state:        state.NewState(),
		logger:       s.Logger,
		machine:      s.Machine,
		listener:     s.Listener,
		speaker:      s.Speaker,
		redis:        s.Redis,
		broker:       pubsub.NewBroker(),
		utteranceSub: pubsub.NewSubscriber(0),
		speechSub:    pubsub.NewSubscriber(0),
		decisionSub:  pubsub.NewSubscriber(1),
		ctx:          ctx,
		cancel:       cancel,
		shut:         make(chan struct{}),
		error:        make(chan error, 1),
	}

	if w.redis == nil {
		w.state.Set(state.Decisions, false)
	}

	w.broker.Subscribe(utteranceTopic, w.utteranceSub)
	w.broker.Subscribe(speechTopic, w.speechSub)
	w.broker.Subscribe(decisionTopic, w.decisionSub)

	operations := []func(){
		w.decisionOperation,
		w.speakOperation,
		w.dialogueOperation,
		w.listenOperation,
	}

	g := len(operations)
	w.wg.Add(g)

	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return w.error
}

// Shutdown stops every operation. Only the first call has an effect; err
// is what Run's channel reports.
func (w *Worker) Shutdown(err error) {
	w.shutOnce.Do(func() {
		w.logger.Infow("worker: shutdown: started")
		if err != nil {
			w.logger.Errorw("worker: shutdown", "ERROR", err)
		}

		w.logger.Infow("worker: shutdown: terminate goroutines")
		close(w.shut)
		w.cancel()

		go func() {
			w.wg.Wait()
			w.logger.Infow("worker: shutdown: completed")
			w.error <- err
			close(w.error)
		}()
	})
}

// leave drops an operation's subscription once it stops reading, so later
// publishers on that topic are not handed to a dead channel.
func (w *Worker) leave(topic string, sub *pubsub.Subscriber) {
	if err := w.broker.UnSubscribe(topic, sub); err != nil {
		w.logger.Infow("worker: leave", "topic", topic, "ERROR", err)
	}
}
