package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	echo "github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var c config
	app, cmds := newApp(&c)
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)

	cmd, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "flatdoc: %v\n", err)
		return err
	}

	log := newLogger(stderr, c.debug)
	defer log.Sync()

	err = dispatch(ctx, cmd, cmds, &c, stdin, stdout, log)
	if err != nil {
		log.Error("command failed", zap.String("command", cmd), zap.Error(err))
	}
	return err
}

func dispatch(
	ctx context.Context,
	cmd string,
	cmds commands,
	c *config,
	stdin io.Reader,
	stdout io.Writer,
	log *zap.Logger,
) error {
	if cmd == cmds.stream.FullCommand() {
		f, err := c.flattener()
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		m := newMetrics(reg)
		if c.metricsAddr != "" {
			stop := serveMetrics(c.metricsAddr, reg, log)
			defer stop()
		}
		return stream(ctx, f, c.keepGoing, stdin, stdout, log, m)
	}

	db, err := openDB(c, log)
	if err != nil {
		return err
	}
	defer db.Close()

	switch cmd {
	case cmds.imp.FullCommand():
		r := stdin
		if c.file != "" {
			f, err := os.Open(c.file)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", c.file, err)
			}
			defer f.Close()
			r = f
		}
		return db.Import(ctx, r, stdout, c.keepGoing, log)
	case cmds.find.FullCommand():
		ids, err := db.Find(c.paths...)
		if err != nil {
			return err
		}
		return writeIDs(stdout, ids)
	case cmds.query.FullCommand():
		rs, err := db.Query(c.expr, c.limit)
		if err != nil {
			return err
		}
		return writeRecords(stdout, rs...)
	case cmds.get.FullCommand():
		id, err := uuid.Parse(c.id)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", c.id, err)
		}
		r, err := db.Get(id)
		if err != nil {
			return err
		}
		return writeRecords(stdout, r)
	case cmds.serve.FullCommand():
		return serve(ctx, c.addr, NewServer(db, log).Handler(prometheus.NewRegistry()), log)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func serve(ctx context.Context, addr string, e *echo.Echo, log *zap.Logger) error {
	errc := make(chan error, 1)
	go func() {
		errc <- e.Start(addr)
	}()
	log.Info("serving", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := e.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
