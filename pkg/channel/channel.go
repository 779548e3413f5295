package channel

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ZentaChain/erldist/pkg/atomcache"
	"github.com/ZentaChain/erldist/pkg/node"
)

// DefaultTickInterval is the keepalive period a freshly constructed
// Channel uses absent an explicit net_ticktime-shaped override.
const DefaultTickInterval = 15 * time.Second

// tickTimeoutFactor is how many tick intervals of inbound silence the
// channel tolerates before declaring the peer dead.
const tickTimeoutFactor = 1.25

// Stats holds the running counters Channel.Stats reports.
type Stats struct {
	FramesSent     uint64
	FramesReceived uint64
	TicksSent      uint64
	TicksReceived  uint64
	BytesSent      uint64
	BytesReceived  uint64
}

// Channel drives one post-handshake connection: it serializes outbound
// Messages into frames, deserializes inbound frames into Messages, sends
// periodic ticks, and tears the connection down on inbound silence or any
// framing/decode error (§4.5).
type Channel struct {
	conn  io.ReadWriteCloser
	flags node.DistributionFlags

	tickInterval time.Duration

	outMu     sync.Mutex
	outSender *atomcache.Sender

	inTable *atomcache.Table

	stats Stats

	closeOnce sync.Once
	closeErr  atomic.Value // error
	done      chan struct{}

	lastRecv atomic.Value // time.Time
}

// NewChannel wraps conn as a message channel using the flags negotiated
// during the handshake that produced it. tickInterval of zero uses
// DefaultTickInterval.
func NewChannel(conn io.ReadWriteCloser, flags node.DistributionFlags, tickInterval time.Duration) *Channel {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	c := &Channel{
		conn:         conn,
		flags:        flags,
		tickInterval: tickInterval,
		outSender:    atomcache.NewSender(),
		inTable:      atomcache.NewTable(),
		done:         make(chan struct{}),
	}
	c.lastRecv.Store(timeNow())
	return c
}

func (c *Channel) usesAtomCache() bool {
	return c.flags.Has(node.FlagDistHdrAtomCache)
}

// Send serializes and writes one distribution message as a frame.
func (c *Channel) Send(msg Message) error {
	body, err := encodeBody(c.outSender, c.usesAtomCache(), msg)
	if err != nil {
		return err
	}
	c.outMu.Lock()
	defer c.outMu.Unlock()
	if err := writeFrame(c.conn, body); err != nil {
		return err
	}
	atomic.AddUint64(&c.stats.FramesSent, 1)
	atomic.AddUint64(&c.stats.BytesSent, uint64(len(body)))
	return nil
}

// SendTick writes a zero-length keepalive frame.
func (c *Channel) SendTick() error {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	if err := writeTick(c.conn); err != nil {
		return err
	}
	atomic.AddUint64(&c.stats.TicksSent, 1)
	return nil
}

// Recv reads and decodes the next distribution message, consuming and
// resetting the idle timer for any ticks encountered along the way
// rather than surfacing them.
func (c *Channel) Recv() (Message, error) {
	for {
		body, isTick, err := readFrame(c.conn)
		if err != nil {
			c.fail(err)
			return nil, err
		}
		c.lastRecv.Store(timeNow())
		if isTick {
			atomic.AddUint64(&c.stats.TicksReceived, 1)
			continue
		}
		atomic.AddUint64(&c.stats.FramesReceived, 1)
		atomic.AddUint64(&c.stats.BytesReceived, uint64(len(body)))
		msg, err := decodeBody(c.inTable, body)
		if err != nil {
			c.fail(err)
			return nil, err
		}
		return msg, nil
	}
}

// RunTicks starts the background goroutines that send periodic ticks and
// close the channel on inbound silence exceeding tickTimeoutFactor ×
// tick interval. It returns immediately; the goroutines exit once Close
// is called.
func (c *Channel) RunTicks() {
	go c.tickSender()
	go c.idleWatcher()
}

func (c *Channel) tickSender() {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.SendTick(); err != nil {
				c.fail(err)
				return
			}
		}
	}
}

func (c *Channel) idleWatcher() {
	timeout := time.Duration(float64(c.tickInterval) * tickTimeoutFactor)
	ticker := time.NewTicker(timeout / 4)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			last, _ := c.lastRecv.Load().(time.Time)
			if timeNow().Sub(last) > timeout {
				c.fail(newError(ErrTickTimeout, "no inbound traffic within tick timeout"))
				return
			}
		}
	}
}

// Stats returns a snapshot of the channel's running counters.
func (c *Channel) Stats() Stats {
	return Stats{
		FramesSent:     atomic.LoadUint64(&c.stats.FramesSent),
		FramesReceived: atomic.LoadUint64(&c.stats.FramesReceived),
		TicksSent:      atomic.LoadUint64(&c.stats.TicksSent),
		TicksReceived:  atomic.LoadUint64(&c.stats.TicksReceived),
		BytesSent:      atomic.LoadUint64(&c.stats.BytesSent),
		BytesReceived:  atomic.LoadUint64(&c.stats.BytesReceived),
	}
}

// Err returns the error that caused the channel to close, if any.
func (c *Channel) Err() error {
	err, _ := c.closeErr.Load().(error)
	return err
}

func (c *Channel) fail(err error) {
	c.closeOnce.Do(func() {
		c.closeErr.Store(err)
		close(c.done)
		c.conn.Close()
	})
}

// Close tears down the channel's connection and stops its goroutines.
func (c *Channel) Close() error {
	c.fail(newError(ErrIO, "closed by caller"))
	return nil
}

// timeNow is a thin indirection so tests can observe idle-timeout
// behavior without sleeping a full tick interval.
var timeNow = time.Now
