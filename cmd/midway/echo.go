package main

import (
	"bytes"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/midway-go/midway/pkg/pipeline"
	"github.com/midway-go/midway/pkg/pipeline/handlers"
)

// echoContext carries one received message through the echo pipeline.
// It implements the Receivable, Sendable, and Networkable capabilities
// used by the stock network middleware.
type echoContext struct {
	conn  net.Conn
	shout bool
	delay time.Duration
	req   bytes.Buffer
	resp  bytes.Buffer
}

func newEchoContext(conn net.Conn, shout bool, delay time.Duration) *echoContext {
	return &echoContext{conn: conn, shout: shout, delay: delay}
}

func (c *echoContext) View() any               { return c }
func (c *echoContext) MutView() any            { return c }
func (c *echoContext) Request() *bytes.Buffer  { return &c.req }
func (c *echoContext) Response() *bytes.Buffer { return &c.resp }
func (c *echoContext) Conn() net.Conn          { return c.conn }

// buildEchoPipeline assembles the per-message pipeline:
//
//	trace → receive → send → echo → (when shout: upcase) → end
//
// Send sits upstream of echo so the response it writes on the way back
// out has already been filled in, and the shout branch reconverges to
// the explicit end of the chain.
func buildEchoPipeline(logger *slog.Logger) pipeline.Pipeline {
	b := pipeline.NewBuilder()
	b.With(handlers.Trace(logger))
	b.With(handlers.Receive[*echoContext])
	b.With(handlers.Send[*echoContext])
	b.With(echoHandler)
	b.When(isShout, func(b *pipeline.Builder) {
		b.With(upcaseHandler)
	})
	b.With(handlers.End)
	return b.Assemble()
}

// isShout gates the upcase branch on the connection's shout flag.
func isShout(ctx pipeline.Context) bool {
	c, ok := pipeline.As[*echoContext](ctx)
	return ok && c.shout
}

// echoHandler copies the received message into the response, after the
// configured artificial delay.
func echoHandler(ctx pipeline.Context, next pipeline.Pipeline) error {
	c, ok := pipeline.AsMut[*echoContext](ctx)
	if !ok {
		return pipeline.Errorf("echo: unexpected context type")
	}
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.resp.Write(c.req.Bytes())
	return next.Invoke(ctx)
}

// upcaseHandler rewrites the response in upper case.
func upcaseHandler(ctx pipeline.Context, next pipeline.Pipeline) error {
	c, ok := pipeline.AsMut[*echoContext](ctx)
	if !ok {
		return pipeline.Errorf("upcase: unexpected context type")
	}
	shouted := strings.ToUpper(c.resp.String())
	c.resp.Reset()
	c.resp.WriteString(shouted)
	return next.Invoke(ctx)
}
