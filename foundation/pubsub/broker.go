// Package pubsub routes values between the goroutines of a call by topic.
package pubsub

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	topicWait    = 3 * time.Second
	topicBackoff = 50 * time.Millisecond
)

type Broker struct {
	topics map[string][]*Subscriber
	sync.RWMutex
}

func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string][]*Subscriber, 0),
	}
}

// Publish delivers data to every subscriber of topic, blocking until each
// has received it. Operations subscribe as they start, so a topic with no
// subscribers yet is retried for a short while before failing.
func (b *Broker) Publish(ctx context.Context, topic string, data any) error {
	deadline := time.NewTimer(topicWait)
	defer deadline.Stop()

	for {
		b.RLock()
		subs, exists := b.topics[topic]
		b.RUnlock()

		if exists && len(subs) > 0 {
			for _, sub := range subs {
				if err := sub.Signal(ctx, data); err != nil {
					return fmt.Errorf("topic[%s]: %w", topic, err)
				}
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("topic[%s]: %w", topic, ctx.Err())
		case <-deadline.C:
			return fmt.Errorf("topic[%s] does not exist", topic)
		case <-time.After(topicBackoff):
		}
	}
}

func (b *Broker) Subscribe(topic string, s *Subscriber) {
	b.Lock()
	defer b.Unlock()
	{
		_, exists := b.topics[topic]
		if !exists {
			b.topics[topic] = make([]*Subscriber, 0)
		}

		b.topics[topic] = append(b.topics[topic], s)
	}
}

func (b *Broker) UnSubscribe(topic string, s *Subscriber) error {
	b.Lock()
	defer b.Unlock()
	{
		subs, exists := b.topics[topic]
		if !exists {
			return fmt.Errorf("topic[%s] does not exists", topic)
		}

		b.topics[topic] = removeFromSlice(subs, s)
	}

	return nil
}

// =================================================================================================================

func removeFromSlice[T comparable](s []T, d T) []T {
	for i := range s {
		if s[i] == d {
			s[i] = s[len(s)-1]
			return s[:len(s)-1]
		}
	}
	return s
}
