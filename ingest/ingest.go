// Package ingest reads an operation stream (spec.md §6) from CSV text and
// dispatches each record to an engine.Engine, logging and skipping
// malformed or rejected rows except for the fatal DatabaseError class.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/darkcodi/txnengine/engine"
	"github.com/darkcodi/txnengine/money"
)

// Dispatcher is the subset of engine.Engine the Ingestor drives. Accepting
// an interface rather than *engine.Engine keeps the CSV parsing logic
// testable against a fake.
type Dispatcher interface {
	Deposit(ctx context.Context, acc uint16, tx uint32, amount money.Money) error
	Withdraw(ctx context.Context, acc uint16, tx uint32, amount money.Money) error
	Dispute(ctx context.Context, acc uint16, tx uint32) error
	Resolve(ctx context.Context, acc uint16, tx uint32) error
	Chargeback(ctx context.Context, acc uint16, tx uint32) error
}

// Ingestor drives a Dispatcher from a CSV operation stream.
type Ingestor struct {
	dispatcher Dispatcher
	logger     *log.Logger
}

// New creates an Ingestor. A nil logger disables per-row rejection
// logging.
func New(d Dispatcher, logger *log.Logger) *Ingestor {
	return &Ingestor{dispatcher: d, logger: logger}
}

func (in *Ingestor) logf(format string, args ...any) {
	if in.logger != nil {
		in.logger.Printf(format, args...)
	}
}

// Run reads r as a CSV operation stream with header
// "type,client,tx,amount" and dispatches each row in sequence. It returns
// nil once the stream is exhausted (or empty), or a non-nil error only
// when the header row cannot be read or for a fatal engine.DatabaseError —
// every other per-row failure is logged and skipped, per spec.md §7's
// propagation policy.
func (in *Ingestor) Run(ctx context.Context, r io.Reader) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("ingest: read header: %w", err)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			in.logf("ingest: skipping malformed row: %v", err)
			continue
		}

		if err := in.dispatch(ctx, record); err != nil {
			var dbErr *engine.DatabaseError
			if errors.As(err, &dbErr) {
				return fmt.Errorf("ingest: fatal storage failure: %w", err)
			}
			in.logf("ingest: rejected row %v: %v", record, err)
		}
	}
}

func (in *Ingestor) dispatch(ctx context.Context, record []string) error {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	if len(record) < 3 {
		return fmt.Errorf("ingest: expected at least 3 fields, got %d", len(record))
	}

	kind := strings.ToLower(record[0])
	client, err := parseUint16(record[1])
	if err != nil {
		return fmt.Errorf("ingest: client: %w", err)
	}
	tx, err := parseUint32(record[2])
	if err != nil {
		return fmt.Errorf("ingest: tx: %w", err)
	}

	switch kind {
	case "deposit", "withdrawal", "withdraw":
		if len(record) < 4 || record[3] == "" {
			return fmt.Errorf("ingest: %s requires an amount", kind)
		}
		amount, err := money.Parse(record[3])
		if err != nil {
			return fmt.Errorf("ingest: amount: %w", err)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("ingest: amount must be positive, got %s", amount)
		}
		if kind == "deposit" {
			return in.dispatcher.Deposit(ctx, client, tx, amount)
		}
		return in.dispatcher.Withdraw(ctx, client, tx, amount)
	case "dispute":
		return in.dispatcher.Dispute(ctx, client, tx)
	case "resolve":
		return in.dispatcher.Resolve(ctx, client, tx)
	case "chargeback":
		return in.dispatcher.Chargeback(ctx, client, tx)
	default:
		return fmt.Errorf("ingest: unknown operation type %q", kind)
	}
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
