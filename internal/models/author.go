package models

import "eduresource-api/pkg/database"

// Author wrote one or more materials.
type Author struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`

	Materials []*Material `json:"-" db:"-"`
}

type authorSchema struct{}

func (authorSchema) TableName() string  { return "authors" }
func (authorSchema) PrimaryKey() string { return "id" }

func (authorSchema) SelectColumns() []string {
	return []string{"id", "name", "description"}
}

func (authorSchema) InsertRow(a *Author) ([]string, []any) {
	return []string{"name", "description"}, []any{a.Name, a.Description}
}

func (authorSchema) UpdateMap(a *Author) map[string]any {
	return map[string]any{
		"name":        a.Name,
		"description": a.Description,
	}
}

func (authorSchema) KeyOf(a *Author) any        { return a.ID }
func (authorSchema) SetKey(a *Author, id int64) { a.ID = id }
func (authorSchema) AutoIncrement() bool        { return true }

func (authorSchema) Includes() map[string]database.Include[Author] {
	return map[string]database.Include[Author]{
		"Materials": database.HasMany("author_id",
			func(a *Author) int64 { return a.ID },
			func(m *Material) int64 { return m.AuthorID },
			func(a *Author, ms []*Material) { a.Materials = ms }),
	}
}
