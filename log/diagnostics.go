package log

import "sync"

// DiagnosticsCollector drains a dedicated [Subscription] to a [Publisher]
// in the background, counting how many records the Publisher delivered
// while it ran. It gives a caller visibility into how much a command
// logged without parsing any particular wire format (json/logfmt/text)
// back out of the raw bytes [Publisher.Write] fans out.
type DiagnosticsCollector struct {
	pub  *Publisher
	sub  *Subscription
	done chan struct{}

	mu    sync.Mutex
	count int
}

// NewDiagnosticsCollector subscribes to pub and starts counting records
// in the background.
func NewDiagnosticsCollector(pub *Publisher) *DiagnosticsCollector {
	c := &DiagnosticsCollector{
		pub:  pub,
		sub:  pub.Subscribe(),
		done: make(chan struct{}),
	}

	go c.run()

	return c
}

func (c *DiagnosticsCollector) run() {
	defer close(c.done)

	for range c.sub.C() {
		c.mu.Lock()
		c.count++
		c.mu.Unlock()
	}
}

// Close closes the underlying Publisher, which closes every subscription
// including this collector's own, then waits for the drain goroutine to
// finish counting whatever was already in flight. Count is only final
// once Close returns.
func (c *DiagnosticsCollector) Close() error {
	err := c.pub.Close()

	<-c.done

	return err
}

// Count returns the number of records observed so far. Safe to call
// concurrently with the background drain.
func (c *DiagnosticsCollector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.count
}
