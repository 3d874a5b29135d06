// Package ingest connects the decoders to their input feeds: a NATS
// subject delivering AIS JSON objects, and an RTCM word stream.
package ingest

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/nats-io/nats.go"
)

// Handler receives the raw bytes of one feed message.
type Handler func(data []byte)

// Consumer is a live NATS subscription.
type Consumer struct {
	nc  *nats.Conn
	sub *nats.Subscription
}

// Subscribe connects to the NATS server and subscribes to the AIS feed
// subject. With a non-empty queue name, multiple daemon instances share
// the feed.
func Subscribe(url, subject, queue string, h Handler) (*Consumer, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	cb := func(msg *nats.Msg) { h(msg.Data) }
	var sub *nats.Subscription
	if queue != "" {
		sub, err = nc.QueueSubscribe(subject, queue, cb)
	} else {
		sub, err = nc.Subscribe(subject, cb)
	}
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}

	return &Consumer{nc: nc, sub: sub}, nil
}

// Close drains the subscription and closes the connection.
func (c *Consumer) Close() error {
	if err := c.sub.Drain(); err != nil {
		c.nc.Close()
		return err
	}
	c.nc.Close()
	return nil
}

// ReadWords reads an RTCM word stream: big-endian 32-bit values, one
// 30-bit word each, as produced by the bit recovery layer. Each word is
// passed to fn until EOF or a read error.
func ReadWords(r io.Reader, fn func(word uint32)) error {
	var buf [4]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		fn(binary.BigEndian.Uint32(buf[:]) & 0x3FFFFFFF)
	}
}
