package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/midway-go/midway/pkg/pipeline"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	root := &cobra.Command{
		Use:   "midway",
		Short: "midway - onion-middleware pipeline demo server",
		Long: `Midway demonstrates the pipeline library with a TCP echo server
whose per-connection processing is a middleware chain: trace, receive,
echo, an optional shout branch, and send.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initLogger(logLevel, logFormat)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	root.AddCommand(serveCmd())
	root.AddCommand(graphCmd())
	return root
}

// ─── serve ───────────────────────────────────────────────────────────────────

func serveCmd() *cobra.Command {
	var (
		addr  string
		shout bool
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the TCP echo server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := signalContext(cmd.Context())
			return serve(ctx, addr, shout, delay)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":7777", "listen address")
	cmd.Flags().BoolVar(&shout, "shout", false, "uppercase every echoed message")
	cmd.Flags().DurationVar(&delay, "delay", 0, "artificial delay before each response")
	return cmd
}

// serve accepts connections until ctx is cancelled and runs the echo
// pipeline on each of them.
func serve(ctx context.Context, addr string, shout bool, delay time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	p := buildEchoPipeline(slog.Default())
	slog.Info("listening", "addr", ln.Addr().String(), "shout", shout)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("listener closed, shutting down")
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go handleConn(conn, p, shout, delay)
	}
}

// handleConn drives the pipeline once per received message, with a
// fresh context each time, until the peer closes the connection.
func handleConn(conn net.Conn, p pipeline.Pipeline, shout bool, delay time.Duration) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	slog.Info("client connected", "remote", remote)

	for {
		err := p.Invoke(newEchoContext(conn, shout, delay))
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			slog.Info("client disconnected", "remote", remote)
			return
		}
		slog.Error("connection pipeline failed", "remote", remote, "error", err)
		return
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// initLogger configures the default slog logger from CLI flags.
func initLogger(level, format string) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q: use debug, info, warn, or error", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format %q: use text or json", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ch:
			slog.Warn("interrupted, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}
