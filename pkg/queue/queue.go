package queue

import "errors"

// ErrQueueFull is returned by Enqueue when the queue cannot accept more items.
var ErrQueueFull = errors.New("queue is full")

// Queue is a multi-producer queue drained by a single consumer.
// Enqueue must never block the caller.
type Queue interface {
	Enqueue(item interface{}) error
	ReadAllMessages() ([]interface{}, error)
	Size() int
	ClearQueue()
}
