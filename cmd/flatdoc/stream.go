package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ehsanranjbar/flatdoc/flatten"
	"github.com/ehsanranjbar/flatdoc/value"
	"go.uber.org/zap"
)

// eachLine calls fn with every non blank line of r, numbered from 1.
func eachLine(ctx context.Context, r io.Reader, fn func(n int, line []byte) error) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if ferr := fn(n, line); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read line %d: %w", n, err)
		}
	}
}

func flattenLine(f *flatten.Flattener, line []byte) (value.Value, error) {
	doc, err := value.Unmarshal(line)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to parse document: %w", err)
	}
	return f.Flatten(doc)
}

// stream writes the flattened form of every document of r to w, one per line.
func stream(
	ctx context.Context,
	f *flatten.Flattener,
	keepGoing bool,
	r io.Reader,
	w io.Writer,
	log *zap.Logger,
	m *metrics,
) error {
	err := eachLine(ctx, r, func(n int, line []byte) error {
		flat, err := flattenLine(f, line)
		if err != nil {
			m.failed()
			log.Error("failed to flatten line",
				zap.Int("line", n),
				zap.ByteString("input", bytes.TrimSpace(line)),
				zap.Error(err),
			)
			if keepGoing {
				return nil
			}
			return fmt.Errorf("line %d: %w", n, err)
		}

		m.ok(flat.Len())
		_, err = io.WriteString(w, flat.String()+"\n")
		if err != nil {
			return fmt.Errorf("failed to write line %d: %w", n, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("reached end of input")
	return nil
}
