package speech

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// Gateway talks to a speech gateway over one websocket: recognition results
// arrive as JSON frames and text to synthesize is sent back on the same
// connection.
type Gateway struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Dial connects to the gateway and registers the recognition languages.
func Dial(ctx context.Context, u url.URL, apiKey string, languageCodes []string) (*Gateway, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), http.Header{"api-key": []string{apiKey}})
	if err != nil {
		return nil, fmt.Errorf("speech: dial %s: %w", u.Host, err)
	}

	registerData := struct {
		LanguageCode []string
	}{
		LanguageCode: languageCodes,
	}

	if err := conn.WriteJSON(registerData); err != nil {
		conn.Close()
		return nil, fmt.Errorf("speech: register: %w", err)
	}

	return &Gateway{conn: conn}, nil
}

// Listen streams recognition results until the connection fails or ctx is
// done. A read failure is delivered as a Result with Error set, after which
// the channel is closed.
func (g *Gateway) Listen(ctx context.Context) <-chan Result {
	resultCh := make(chan Result, 10)

	go func() {
		defer close(resultCh)

		for {
			var r Result
			if err := g.conn.ReadJSON(&r); err != nil {
				if ctx.Err() != nil {
					return
				}
				r = Result{Error: fmt.Errorf("speech: conn.ReadJSON: %w", err)}
			}

			select {
			case resultCh <- r:
			case <-ctx.Done():
				return
			}

			if r.Error != nil {
				return
			}
		}
	}()

	return resultCh
}

// Speak sends text for synthesis.
func (g *Gateway) Speak(ctx context.Context, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	g.conn.SetWriteDeadline(deadline)

	if err := g.conn.WriteJSON(SpeakRequest{Type: "speak", Text: text}); err != nil {
		return fmt.Errorf("speech: conn.WriteJSON: %w", err)
	}
	return nil
}

// Close says goodbye to the gateway and drops the connection.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "call ended")
	g.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))

	return g.conn.Close()
}
