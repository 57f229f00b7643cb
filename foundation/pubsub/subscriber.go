package pubsub

import "context"

type Subscriber struct {
	payload chan any
}

func NewSubscriber(channelCapacity int) *Subscriber {
	if channelCapacity > 0 {
		return &Subscriber{
			payload: make(chan any, channelCapacity),
		}
	}
	return &Subscriber{
		payload: make(chan any),
	}
}

// Signal hands data to the subscriber or gives up when ctx is done.
func (s *Subscriber) Signal(ctx context.Context, data any) error {
	select {
	case s.payload <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Subscriber) GetChannel() <-chan any {
	return s.payload
}
