package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// Console reads one utterance per line and prints outbound speech. It
// stands in for the speech gateway when running a call from a terminal.
type Console struct {
	in  io.Reader
	out io.Writer
	mu  sync.Mutex
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

// Listen emits every line as a final result and closes at end of input.
func (c *Console) Listen(ctx context.Context) <-chan Result {
	resultCh := make(chan Result)

	go func() {
		defer close(resultCh)

		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case resultCh <- Result{Transcription: scanner.Text(), IsFinal: true}:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			select {
			case resultCh <- Result{Error: fmt.Errorf("speech: console: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()

	return resultCh
}

func (c *Console) Speak(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.out, "agent: %s\n", text)
	return err
}

func (c *Console) Close() error {
	return nil
}
