package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shivxnshxrma/mysterymessages/db/models"
)

const TopicMessageReceived = "message.received"

type subscriber struct {
	ch   chan models.Message
	done chan struct{}
	stop sync.Once
}

type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]*subscriber
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]*subscriber)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan models.Message) (subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]*subscriber)
	}
	subId = uuid.NewString()
	ps.subs[topic][subId] = &subscriber{ch: ch, done: make(chan struct{})}
	return subId
}

// Unsubscribe signals the subscription as gone before taking the write lock:
// a Publish parked on the subscriber's channel holds the read lock and would
// otherwise keep the write lock unobtainable forever.
func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.RLock()
	sub := ps.subs[topic][id]
	ps.mu.RUnlock()
	if sub == nil {
		return
	}
	sub.stop.Do(func() { close(sub.done) })

	ps.mu.Lock()
	defer ps.mu.Unlock()
	delete(ps.subs[topic], id)
}

func (ps *Pubsub) Publish(topic string, msg models.Message) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, sub := range ps.subs[topic] {
		select {
		case sub.ch <- msg:
		case <-sub.done:
		}
	}
}
