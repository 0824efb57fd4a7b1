// Package chattest provides an in-memory messenger for tests
package chattest

import (
	"context"
	"errors"
	"sync"

	"github.com/raykavin/orderalert/pkg/core"
)

// ErrUnreachable is returned for chats registered with Fail
var ErrUnreachable = errors.New("chat unreachable")

// Delivery is a message recorded by the Recorder
type Delivery struct {
	ChatID  int64
	Message core.Message
}

// Recorder implements core.Messenger by keeping every delivered message
type Recorder struct {
	mu         sync.Mutex
	deliveries []Delivery
	failing    map[int64]bool
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{failing: make(map[int64]bool)}
}

// Fail makes every following send to chatID return ErrUnreachable
func (r *Recorder) Fail(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing[chatID] = true
}

func (r *Recorder) Send(_ context.Context, chatID int64, message core.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failing[chatID] {
		return ErrUnreachable
	}
	r.deliveries = append(r.deliveries, Delivery{ChatID: chatID, Message: message})
	return nil
}

// Deliveries returns a copy of everything sent so far
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Delivery(nil), r.deliveries...)
}

// To returns the messages delivered to chatID
func (r *Recorder) To(chatID int64) []core.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	var messages []core.Message
	for _, d := range r.deliveries {
		if d.ChatID == chatID {
			messages = append(messages, d.Message)
		}
	}
	return messages
}

// Reset forgets recorded deliveries
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = nil
}
