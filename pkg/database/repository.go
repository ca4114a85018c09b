package database

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotSingle is returned by SingleOrDefault when more than one row matched.
var ErrNotSingle = errors.New("database: more than one row matched")

// Repository gives typed access to one table. Writes are staged on the
// owning Session and only reach the database on Session.Commit.
type Repository[T any] struct {
	session *Session
	schema  Schema[T]
}

func NewRepository[T any](session *Session) *Repository[T] {
	return &Repository[T]{
		session: session,
		schema:  LoadSchema[T](),
	}
}

// Get returns every row matching filter, ordered by primary key.
// A nil filter matches all rows. include names relations to eager-load;
// entries may be comma-separated and use dots for nested relations
// ("Author.Materials"). Unknown relation names are ignored.
func (r *Repository[T]) Get(ctx context.Context, filter sq.Sqlizer, include ...string) (_ []*T, err error) {
	ctx, span := tracer.Start(ctx, "database.Get",
		trace.WithAttributes(attribute.String("db.table", r.schema.TableName())))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	rows, err := selectRows(ctx, r.session, r.schema, filter)
	if err != nil {
		return nil, err
	}
	if err := applyIncludes(ctx, r.session, r.schema, rows, include); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert stages entity for insertion. For auto-increment tables the
// generated key is written back into entity once Commit succeeds.
func (r *Repository[T]) Insert(entity *T) {
	table := r.schema.TableName()
	r.session.stage(operation{
		kind:  "insert",
		table: table,
		exec: func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
			cols, vals := r.schema.InsertRow(entity)
			b := r.session.builder().Insert(table).Columns(cols...).Values(vals...)

			if r.schema.AutoIncrement() {
				query, args, err := b.Suffix("RETURNING " + r.schema.PrimaryKey()).ToSql()
				if err != nil {
					return 0, err
				}
				var id int64
				if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
					return 0, err
				}
				r.schema.SetKey(entity, id)
				return 1, nil
			}

			query, args, err := b.ToSql()
			if err != nil {
				return 0, err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return 0, err
			}
			return res.RowsAffected()
		},
	})
}

// Update stages a full update of entity, matched by its primary key.
func (r *Repository[T]) Update(entity *T) {
	table := r.schema.TableName()
	r.session.stage(operation{
		kind:  "update",
		table: table,
		exec: func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
			query, args, err := r.session.builder().
				Update(table).
				SetMap(r.schema.UpdateMap(entity)).
				Where(sq.Eq{r.schema.PrimaryKey(): r.schema.KeyOf(entity)}).
				ToSql()
			if err != nil {
				return 0, err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return 0, err
			}
			return res.RowsAffected()
		},
	})
}

// Delete looks up the row with the given key and stages its removal.
// A missing row is not an error and stages nothing.
func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	rows, err := selectRows(ctx, r.session, r.schema, sq.Eq{r.schema.PrimaryKey(): id})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	table := r.schema.TableName()
	key := r.schema.KeyOf(rows[0])
	r.session.stage(operation{
		kind:  "delete",
		table: table,
		exec: func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
			query, args, err := r.session.builder().
				Delete(table).
				Where(sq.Eq{r.schema.PrimaryKey(): key}).
				ToSql()
			if err != nil {
				return 0, err
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return 0, err
			}
			return res.RowsAffected()
		},
	})
	return nil
}

// SingleOrDefault returns the only element of rows, nil when rows is empty,
// and ErrNotSingle when there is more than one.
func SingleOrDefault[T any](rows []*T) (*T, error) {
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, ErrNotSingle
	}
}

func selectRows[T any](ctx context.Context, s *Session, schema Schema[T], filter sq.Sqlizer) ([]*T, error) {
	b := s.builder().
		Select(schema.SelectColumns()...).
		From(schema.TableName()).
		OrderBy(schema.PrimaryKey())
	if filter != nil {
		b = b.Where(filter)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", schema.TableName(), err)
	}

	rows := make([]*T, 0)
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", schema.TableName(), err)
	}
	return rows, nil
}
