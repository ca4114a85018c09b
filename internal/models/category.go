package models

import "eduresource-api/pkg/database"

// Category classifies materials (documentation, video, ...).
type Category struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Definition string `json:"definition" db:"definition"`

	Materials []*Material `json:"-" db:"-"`
}

type categorySchema struct{}

func (categorySchema) TableName() string  { return "categories" }
func (categorySchema) PrimaryKey() string { return "id" }

func (categorySchema) SelectColumns() []string {
	return []string{"id", "name", "definition"}
}

func (categorySchema) InsertRow(c *Category) ([]string, []any) {
	return []string{"name", "definition"}, []any{c.Name, c.Definition}
}

func (categorySchema) UpdateMap(c *Category) map[string]any {
	return map[string]any{
		"name":       c.Name,
		"definition": c.Definition,
	}
}

func (categorySchema) KeyOf(c *Category) any        { return c.ID }
func (categorySchema) SetKey(c *Category, id int64) { c.ID = id }
func (categorySchema) AutoIncrement() bool          { return true }

func (categorySchema) Includes() map[string]database.Include[Category] {
	return map[string]database.Include[Category]{
		"Materials": database.HasMany("category_id",
			func(c *Category) int64 { return c.ID },
			func(m *Material) int64 { return m.CategoryID },
			func(c *Category, ms []*Material) { c.Materials = ms }),
	}
}
