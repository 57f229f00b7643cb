package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/superfeelapi/goEagiFraud/foundation/state"
)

func (w *Worker) decisionOperation() {
	w.logger.Infow("worker: decisionOperation: G started")
	defer w.logger.Infow("worker: decisionOperation: G completed")
	defer w.leave(decisionTopic, w.decisionSub)

	decisionCh := w.decisionSub.GetChannel()

	w.logger.Infow("worker: decisionOperation: G listening")
	for {
		select {
		case data := <-decisionCh:
			w.produce(data.(Decision))

		case <-w.shut:
			w.logger.Infow("worker: decisionOperation: received shut signal")

			// The speaker may end the call before the decision was picked up.
			select {
			case data := <-decisionCh:
				w.produce(data.(Decision))
			default:
			}
			return
		}
	}
}

func (w *Worker) produce(d Decision) {
	d.DataID = uuid.New().String()

	if !w.state.Get(state.Decisions) {
		w.logger.Infow("worker: decisionOperation: publishing disabled", "decision", d)
		return
	}

	if err := w.redis.Produce(context.Background(), d); err != nil {
		w.state.Set(state.Decisions, false)
		w.logger.Errorw("worker: decisionOperation: redis", "ERROR", err)
	}
}
