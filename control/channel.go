package control

import (
	"sync"
	"time"
)

// Channel is an unbounded FIFO of intents. Any number of goroutines may Send;
// exactly one consumer receives. Send never blocks and never drops.
type Channel struct {
	mu     sync.Mutex
	queue  []Intent
	notify chan struct{}
}

func NewChannel() *Channel {
	return &Channel{notify: make(chan struct{}, 1)}
}

func (c *Channel) Send(in Intent) {
	c.mu.Lock()
	c.queue = append(c.queue, in)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// TryReceive pops the oldest intent without waiting.
func (c *Channel) TryReceive() (Intent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return Intent{}, false
	}
	in := c.queue[0]
	c.queue = c.queue[1:]
	if len(c.queue) == 0 {
		c.queue = nil
	}
	return in, true
}

// Receive waits up to timeout for the next intent. A false result only means
// nothing arrived in time; the channel never closes.
func (c *Channel) Receive(timeout time.Duration) (Intent, bool) {
	if in, ok := c.TryReceive(); ok {
		return in, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-c.notify:
			if in, ok := c.TryReceive(); ok {
				return in, true
			}
		case <-timer.C:
			return Intent{}, false
		}
	}
}

func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}
