package models

import (
	"time"

	"eduresource-api/pkg/database"
)

// Material is a learning resource published by an Author under a Category.
type Material struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	Published   time.Time `json:"published" db:"published"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	CategoryID  int64     `json:"categoryId" db:"category_id"`

	Author   *Author   `json:"-" db:"-"`
	Category *Category `json:"-" db:"-"`
	Reviews  []*Review `json:"-" db:"-"`
}

// ResolvedAuthorID prefers the explicit foreign key and falls back to the
// loaded relation, which lets a material be staged in the same commit as
// its author.
func (m *Material) ResolvedAuthorID() int64 {
	if m.AuthorID == 0 && m.Author != nil {
		return m.Author.ID
	}
	return m.AuthorID
}

func (m *Material) ResolvedCategoryID() int64 {
	if m.CategoryID == 0 && m.Category != nil {
		return m.Category.ID
	}
	return m.CategoryID
}

type materialSchema struct{}

func (materialSchema) TableName() string  { return "materials" }
func (materialSchema) PrimaryKey() string { return "id" }

func (materialSchema) SelectColumns() []string {
	return []string{"id", "title", "description", "location", "published", "author_id", "category_id"}
}

func (materialSchema) InsertRow(m *Material) ([]string, []any) {
	m.AuthorID = m.ResolvedAuthorID()
	m.CategoryID = m.ResolvedCategoryID()
	return []string{"title", "description", "location", "published", "author_id", "category_id"},
		[]any{m.Title, m.Description, m.Location, m.Published, m.AuthorID, m.CategoryID}
}

func (materialSchema) UpdateMap(m *Material) map[string]any {
	return map[string]any{
		"title":       m.Title,
		"description": m.Description,
		"location":    m.Location,
		"published":   m.Published,
		"author_id":   m.ResolvedAuthorID(),
		"category_id": m.ResolvedCategoryID(),
	}
}

func (materialSchema) KeyOf(m *Material) any        { return m.ID }
func (materialSchema) SetKey(m *Material, id int64) { m.ID = id }
func (materialSchema) AutoIncrement() bool          { return true }

func (materialSchema) Includes() map[string]database.Include[Material] {
	return map[string]database.Include[Material]{
		"Author": database.BelongsTo(
			func(m *Material) int64 { return m.AuthorID },
			func(a *Author) int64 { return a.ID },
			func(m *Material, a *Author) { m.Author = a }),
		"Category": database.BelongsTo(
			func(m *Material) int64 { return m.CategoryID },
			func(c *Category) int64 { return c.ID },
			func(m *Material, c *Category) { m.Category = c }),
		"Reviews": database.HasMany("material_id",
			func(m *Material) int64 { return m.ID },
			func(r *Review) int64 { return r.MaterialID },
			func(m *Material, rs []*Review) { m.Reviews = rs }),
	}
}
