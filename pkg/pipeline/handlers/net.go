package handlers

import (
	"bytes"
	"net"

	"github.com/midway-go/midway/pkg/pipeline"
)

// receiveBufSize is the chunk size for a single network read.
const receiveBufSize = 4096

// Receivable provides the buffer that holds bytes read from the network.
type Receivable interface {
	Request() *bytes.Buffer
}

// Sendable provides the buffer whose bytes are written to the network.
type Sendable interface {
	Response() *bytes.Buffer
}

// Networkable provides the connection the Receive and Send middleware
// operate on.
type Networkable interface {
	Conn() net.Conn
}

// Receive reads one chunk from the context's connection into its request
// buffer, then invokes the remainder of the pipeline. Read errors,
// including io.EOF on an orderly close, are returned as-is so callers
// can distinguish them.
//
// If the context cannot be downcast to C, Receive invokes nothing and
// returns nil.
func Receive[C interface {
	Receivable
	Networkable
}](ctx pipeline.Context, next pipeline.Pipeline) error {
	c, ok := pipeline.AsMut[C](ctx)
	if !ok {
		return nil
	}
	buf := make([]byte, receiveBufSize)
	n, err := c.Conn().Read(buf)
	if err != nil {
		return err
	}
	c.Request().Write(buf[:n])
	return next.Invoke(ctx)
}

// Send invokes the remainder of the pipeline first, then writes the
// context's response buffer to its connection. Declaring Send before
// the handlers that fill the response means the write happens after
// they have run. An empty response writes nothing.
//
// If the context cannot be downcast to C, Send invokes nothing and
// returns nil.
func Send[C interface {
	Sendable
	Networkable
}](ctx pipeline.Context, next pipeline.Pipeline) error {
	c, ok := pipeline.AsMut[C](ctx)
	if !ok {
		return nil
	}
	if err := next.Invoke(ctx); err != nil {
		return err
	}
	if c.Response().Len() == 0 {
		return nil
	}
	if _, err := c.Conn().Write(c.Response().Bytes()); err != nil {
		return pipeline.Errorf("write response: %w", err)
	}
	return nil
}
