// Package cleandb implements the interactive "wipe everything and start over"
// flow used during development.
package cleandb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"kanbanboard/pkg/common/logger"
	"kanbanboard/pkg/schema"
)

// Schema is the part of schema.Resetter the flow needs.
type Schema interface {
	DropAll(ctx context.Context) error
	CreateAll(ctx context.Context) error
	Inspect(ctx context.Context) ([]schema.TableStat, error)
}

// Options mirror the command-line flags.
type Options struct {
	// Force skips the confirmation prompt.
	Force bool
	// DryRun reports what would be deleted and changes nothing.
	DryRun bool
}

// Result tells the caller how the run ended.
type Result int

const (
	ResultFailed Result = iota
	ResultCancelled
	ResultReset
	ResultDryRun
)

func (r Result) String() string {
	switch r {
	case ResultFailed:
		return "failed"
	case ResultCancelled:
		return "cancelled"
	case ResultReset:
		return "reset"
	case ResultDryRun:
		return "dry-run"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Run warns the operator, asks for confirmation unless opts.Force is set,
// then drops and recreates every table. Messages for the operator go to out;
// the answer is read from in.
func Run(ctx context.Context, s Schema, opts Options, in io.Reader, out io.Writer) (Result, error) {
	log := logger.WithComponent("cleandb")

	if opts.DryRun {
		stats, err := s.Inspect(ctx)
		if err != nil {
			return ResultFailed, fmt.Errorf("inspect tables: %w", err)
		}
		writeStats(out, stats)
		return ResultDryRun, nil
	}

	fmt.Fprintln(out, "WARNING: This will delete ALL data from the database.")
	if stats, err := s.Inspect(ctx); err != nil {
		log.Warn().Err(err).Msg("could not inspect tables")
	} else {
		tables, rows := schema.Totals(stats)
		fmt.Fprintf(out, "%d tables, %d rows will be removed.\n", tables, rows)
	}

	if !opts.Force {
		fmt.Fprintln(out, "To proceed without confirmation, use --force argument.")
		fmt.Fprint(out, "Type 'y' to confirm deletion of all data: ")
		answer, err := readAnswer(ctx, in)
		if ctx.Err() != nil {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Operation cancelled.")
			return ResultCancelled, ctx.Err()
		}
		if err != nil {
			return ResultFailed, fmt.Errorf("read confirmation: %w", err)
		}
		if strings.ToLower(answer) != "y" {
			fmt.Fprintln(out, "Operation cancelled.")
			log.Info().Str("answer", answer).Msg("reset cancelled")
			return ResultCancelled, nil
		}
	}

	fmt.Fprintln(out, "Dropping all tables...")
	if err := s.DropAll(ctx); err != nil {
		fmt.Fprintf(out, "Error dropping tables: %v\n", err)
		return ResultFailed, fmt.Errorf("drop tables: %w", err)
	}
	fmt.Fprintln(out, "Tables dropped.")

	fmt.Fprintln(out, "Creating all tables...")
	if err := s.CreateAll(ctx); err != nil {
		fmt.Fprintf(out, "Error creating tables: %v\n", err)
		return ResultFailed, fmt.Errorf("create tables: %w", err)
	}
	fmt.Fprintln(out, "Tables created.")

	fmt.Fprintln(out, "Database cleaned and reset successfully.")
	log.Info().Bool("forced", opts.Force).Msg("database reset")
	return ResultReset, nil
}

type readResult struct {
	line string
	err  error
}

// readAnswer returns the first line of in without its line terminator. End
// of input counts as an empty answer. It gives up when ctx is done; the read
// itself keeps blocking in the background until in yields.
func readAnswer(ctx context.Context, in io.Reader) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		ch <- readResult{line: strings.TrimRight(line, "\r\n"), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

func writeStats(out io.Writer, stats []schema.TableStat) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tEXISTS\tROWS")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%t\t%d\n", s.Name, s.Exists, s.Rows)
	}
	w.Flush()

	tables, rows := schema.Totals(stats)
	fmt.Fprintf(out, "%d tables, %d rows would be removed.\n", tables, rows)
}
