package database

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type operation struct {
	kind  string
	table string
	exec  func(ctx context.Context, tx *sqlx.Tx) (int64, error)
}

// Session collects staged writes from its repositories and applies them
// atomically on Commit. Reads go straight to the database and never see
// staged writes. A Session is not safe for concurrent use.
type Session struct {
	db      *sqlx.DB
	dialect Dialect
	pending []operation
}

func NewSession(db *sqlx.DB, dialect Dialect) *Session {
	return &Session{db: db, dialect: dialect}
}

func (s *Session) DB() *sqlx.DB      { return s.db }
func (s *Session) Dialect() Dialect { return s.dialect }

// Pending returns the number of staged operations.
func (s *Session) Pending() int { return len(s.pending) }

func (s *Session) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(s.dialect.PlaceholderFormat())
}

func (s *Session) stage(op operation) {
	s.pending = append(s.pending, op)
}

// Commit applies every staged operation, in staging order, inside one
// transaction. It reports true when at least one row was affected.
// On error nothing is applied. Staged operations are cleared either way.
func (s *Session) Commit(ctx context.Context) (committed bool, err error) {
	ops := s.pending
	s.pending = nil

	ctx, span := tracer.Start(ctx, "database.Commit",
		trace.WithAttributes(attribute.Int("db.operations", len(ops))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if len(ops) == 0 {
		return false, nil
	}

	start := time.Now()
	attrs := metric.WithAttributes(attribute.String("db.dialect", s.dialect.Name()))
	defer func() {
		commitCount.Add(ctx, 1, attrs)
		commitDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
		if err != nil {
			commitErrors.Add(ctx, 1, attrs)
		}
	}()

	var affected int64
	err = WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, op := range ops {
			n, err := op.exec(ctx, tx)
			if err != nil {
				return fmt.Errorf("%s %s: %w", op.kind, op.table, err)
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", affected))
	return affected > 0, nil
}
