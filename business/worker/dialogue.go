package worker

import (
	"context"
	"errors"

	"github.com/superfeelapi/goEagiFraud/business/dialogue"
	"github.com/superfeelapi/goEagiFraud/business/fraudcase"
)

func (w *Worker) dialogueOperation() {
	w.logger.Infow("worker: dialogueOperation: G started")
	defer w.logger.Infow("worker: dialogueOperation: G completed")
	defer w.leave(utteranceTopic, w.utteranceSub)

	if err := w.say(w.machine.Start(w.ctx), false, nil); err != nil {
		w.Shutdown(err)
		return
	}

	utteranceCh := w.utteranceSub.GetChannel()

	w.logger.Infow("worker: dialogueOperation: G listening")
	for {
		select {
		case data := <-utteranceCh:
			u := data.(utterance)

			if u.hangup {
				if !w.machine.Ended() {
					w.logger.Warnw("worker: dialogueOperation: caller hung up before resolution", "call", w.machine.Snapshot())
					w.Shutdown(u.err)
				}
				return
			}

			// A transition always runs to completion, including its store write,
			// even if the call is being torn down.
			replies, err := w.machine.Handle(context.Background(), u.text)
			switch {
			case errors.Is(err, dialogue.ErrCallEnded):
				continue

			case errors.Is(err, fraudcase.ErrUnavailable):
				w.logger.Errorw("worker: dialogueOperation: case store unavailable, no decision recorded", "ERROR", err)

			case err != nil:
				w.logger.Errorw("worker: dialogueOperation", "ERROR", err)
			}

			ended := w.machine.Ended()
			if ended {
				w.publishDecision()
			}

			if err := w.say(replies, ended, err); err != nil {
				w.Shutdown(err)
				return
			}

			if ended {
				return
			}

		case <-w.shut:
			w.logger.Infow("worker: dialogueOperation: received shut signal")
			return
		}
	}
}

// say queues replies for the speaker. When final is set the last reply
// carries the call's terminal error.
func (w *Worker) say(replies []string, final bool, callErr error) error {
	if final && len(replies) == 0 {
		replies = []string{""}
	}

	for i, text := range replies {
		r := reply{text: text}
		if final && i == len(replies)-1 {
			r.final = true
			r.err = callErr
		}
		if err := w.broker.Publish(w.ctx, speechTopic, r); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) publishDecision() {
	o := w.machine.Outcome()

	d := Decision{
		CallID:       w.config.CallID,
		Source:       w.config.Actor,
		ProfileID:    w.config.ProfileID,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		Reason:       string(o.Reason),
		ResolvedAt:   o.ResolvedAt,
	}

	w.logger.Infow("worker: dialogueOperation: call completed", "customer", d.CustomerName, "status", d.Status, "reason", d.Reason)

	if err := w.broker.Publish(w.ctx, decisionTopic, d); err != nil {
		w.logger.Errorw("worker: dialogueOperation: decision", "ERROR", err)
	}
}
