package database

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

type includeNode struct {
	name   string
	nested []string
}

// parseIncludes flattens comma-separated include paths and groups them by
// their first segment, keeping first-seen order.
func parseIncludes(paths []string) []includeNode {
	var nodes []includeNode
	index := make(map[string]int)

	for _, entry := range paths {
		for _, path := range strings.Split(entry, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			name, rest, _ := strings.Cut(path, ".")
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			i, ok := index[name]
			if !ok {
				i = len(nodes)
				index[name] = i
				nodes = append(nodes, includeNode{name: name})
			}
			if rest = strings.TrimSpace(rest); rest != "" {
				nodes[i].nested = append(nodes[i].nested, rest)
			}
		}
	}
	return nodes
}

func applyIncludes[T any](ctx context.Context, s *Session, schema Schema[T], rows []*T, paths []string) error {
	if len(rows) == 0 || len(paths) == 0 {
		return nil
	}

	relations := schema.Includes()
	for _, node := range parseIncludes(paths) {
		load, ok := relations[node.name]
		if !ok {
			continue
		}
		if err := load(ctx, s, rows, node.nested); err != nil {
			return fmt.Errorf("include %s on %s: %w", node.name, schema.TableName(), err)
		}
	}
	return nil
}

// BelongsTo builds an Include that loads the single P referenced by a
// foreign key held on T.
func BelongsTo[T, P any, K comparable](foreignKey func(*T) K, parentKey func(*P) K, set func(*T, *P)) Include[T] {
	return func(ctx context.Context, s *Session, rows []*T, nested []string) error {
		parentSchema := LoadSchema[P]()

		ids := distinctKeys(rows, foreignKey)
		if len(ids) == 0 {
			return nil
		}

		parents, err := selectRows(ctx, s, parentSchema, sq.Eq{parentSchema.PrimaryKey(): ids})
		if err != nil {
			return err
		}
		if err := applyIncludes(ctx, s, parentSchema, parents, nested); err != nil {
			return err
		}

		byKey := make(map[K]*P, len(parents))
		for _, p := range parents {
			byKey[parentKey(p)] = p
		}
		for _, row := range rows {
			if p, ok := byKey[foreignKey(row)]; ok {
				set(row, p)
			}
		}
		return nil
	}
}

// HasMany builds an Include that loads every C whose foreignKeyColumn
// references T. Rows without children get an empty, non-nil slice.
func HasMany[T, C any, K comparable](foreignKeyColumn string, key func(*T) K, childKey func(*C) K, set func(*T, []*C)) Include[T] {
	return func(ctx context.Context, s *Session, rows []*T, nested []string) error {
		childSchema := LoadSchema[C]()

		ids := distinctKeys(rows, key)
		if len(ids) == 0 {
			return nil
		}

		children, err := selectRows(ctx, s, childSchema, sq.Eq{foreignKeyColumn: ids})
		if err != nil {
			return err
		}
		if err := applyIncludes(ctx, s, childSchema, children, nested); err != nil {
			return err
		}

		grouped := make(map[K][]*C, len(rows))
		for _, c := range children {
			k := childKey(c)
			grouped[k] = append(grouped[k], c)
		}
		for _, row := range rows {
			list := grouped[key(row)]
			if list == nil {
				list = make([]*C, 0)
			}
			set(row, list)
		}
		return nil
	}
}

func distinctKeys[T any, K comparable](rows []*T, key func(*T) K) []K {
	var zero K
	seen := make(map[K]struct{}, len(rows))
	ids := make([]K, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if k == zero {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, k)
	}
	return ids
}
