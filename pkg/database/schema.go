package database

import (
	"context"
	"fmt"
	"reflect"
)

// Schema maps a model type to its table and back.
// Implementations are stateless and registered once with RegisterSchema.
type Schema[T any] interface {
	// Table metadata
	TableName() string
	PrimaryKey() string

	// Read operations
	SelectColumns() []string

	// Write operations. InsertRow and UpdateMap are evaluated when the
	// owning session commits, not when the operation is staged.
	InsertRow(*T) ([]string, []any)
	UpdateMap(*T) map[string]any

	// Identity
	KeyOf(*T) any
	SetKey(m *T, id int64)
	AutoIncrement() bool

	// Includes returns the eager-loadable relations by name.
	Includes() map[string]Include[T]
}

// Include loads one relation for a batch of rows. nested holds the
// remaining dotted include paths to apply to the loaded relation.
type Include[T any] func(ctx context.Context, s *Session, rows []*T, nested []string) error

var schemas = make(map[reflect.Type]any)

// RegisterSchema makes the schema for T available to repositories and relation loaders.
// It is meant to be called from init functions.
func RegisterSchema[T any](schema Schema[T]) {
	var t T
	schemas[reflect.TypeOf(t)] = schema
}

// LoadSchema returns the registered schema for T and panics when none is registered.
func LoadSchema[T any]() Schema[T] {
	var t T
	typ := reflect.TypeOf(t)
	if s, ok := schemas[typ]; ok {
		return s.(Schema[T])
	}
	panic(fmt.Sprintf("database: schema not registered for type %v", typ))
}
