package worker

import (
	"fmt"
)

func (w *Worker) speakOperation() {
	w.logger.Infow("worker: speakOperation: G started")
	defer w.logger.Infow("worker: speakOperation: G completed")
	defer w.leave(speechTopic, w.speechSub)

	speechCh := w.speechSub.GetChannel()

	w.logger.Infow("worker: speakOperation: G listening")
	for {
		select {
		case data := <-speechCh:
			r := data.(reply)

			if r.text != "" {
				if err := w.speaker.Speak(w.ctx, r.text); err != nil {
					w.Shutdown(fmt.Errorf("worker: speakOperation: %w", err))
					return
				}
				w.logger.Infow("worker: speakOperation: spoke", "text", r.text)
			}

			if r.final {
				w.Shutdown(r.err)
				return
			}

		case <-w.shut:
			w.logger.Infow("worker: speakOperation: received shut signal")
			return
		}
	}
}
