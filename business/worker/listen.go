package worker

import (
	"strings"
)

func (w *Worker) listenOperation() {
	w.logger.Infow("worker: listenOperation: G started")
	defer w.logger.Infow("worker: listenOperation: G completed")

	resultCh := w.listener.Listen(w.ctx)

	w.logger.Infow("worker: listenOperation: G listening")
	for {
		select {
		case result, ok := <-resultCh:
			if !ok {
				w.logger.Infow("worker: listenOperation: transcript stream closed")
				w.publishUtterance(utterance{hangup: true})
				return
			}

			if result.Error != nil {
				w.logger.Errorw("worker: listenOperation", "ERROR", result.Error)
				w.publishUtterance(utterance{hangup: true, err: result.Error})
				return
			}

			w.logger.Infow("worker: listenOperation:", "transcription", result.Transcription, "isFinal", result.IsFinal)

			if !result.IsFinal {
				continue
			}
			if !w.publishUtterance(utterance{text: strings.TrimSpace(result.Transcription)}) {
				return
			}

		case <-w.shut:
			w.logger.Infow("worker: listenOperation: received shut signal")
			return
		}
	}
}

func (w *Worker) publishUtterance(u utterance) bool {
	if err := w.broker.Publish(w.ctx, utteranceTopic, u); err != nil {
		w.logger.Infow("worker: listenOperation: utterance dropped", "ERROR", err)
		return false
	}
	return true
}
