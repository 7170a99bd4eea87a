// Package repl implements the interactive read-evaluate-print loop.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lemonberrylabs/numcalc/pkg/expr"
	"github.com/lemonberrylabs/numcalc/pkg/store"
	"github.com/lemonberrylabs/numcalc/pkg/types"
)

// REPL reads one expression per line and prints its result. Evaluation
// errors are printed and the loop continues.
type REPL struct {
	in      io.Reader
	out     io.Writer
	logger  *zap.Logger
	history *store.Store
}

// New creates a REPL. history may be nil.
func New(in io.Reader, out io.Writer, logger *zap.Logger, history *store.Store) *REPL {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &REPL{in: in, out: out, logger: logger, history: history}
}

// Run loops until the input ends or ctx is cancelled. Cancellation is only
// observed between lines. Lines of any length are accepted.
func (r *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(r.in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if _, err := fmt.Fprintln(r.out, "Input:"); err != nil {
			return err
		}

		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		if raw != "" {
			if err := r.step(raw); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			return nil
		}
	}
}

func (r *REPL) step(raw string) error {
	res, err := expr.EvaluateDetailed(raw)
	if r.history != nil {
		r.history.Record(raw, "repl", res, err)
	}
	input := expr.StripWhitespace(raw)

	if err != nil {
		r.logger.Debug("evaluation failed",
			zap.String("kind", string(types.KindOf(err))),
			zap.Int("inputLen", len(input)),
			zap.Error(err))
		_, werr := fmt.Fprintf(r.out, "\nError:\n%s\n\n", types.Message(err))
		return werr
	}

	r.logger.Debug("evaluation succeeded",
		zap.String("input", input),
		zap.Int("value", res.Value),
		zap.String("output", res.Output))
	_, werr := fmt.Fprintf(r.out, "\nOutput:\n%s\n\n", res.Output)
	return werr
}
