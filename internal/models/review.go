package models

import "eduresource-api/pkg/database"

// Review is a scored opinion on a Material. Score is within [1, 10].
type Review struct {
	ID         int64  `json:"id" db:"id"`
	Text       string `json:"text" db:"text"`
	Score      int    `json:"score" db:"score"`
	MaterialID int64  `json:"materialId" db:"material_id"`

	Material *Material `json:"-" db:"-"`
}

func (r *Review) ResolvedMaterialID() int64 {
	if r.MaterialID == 0 && r.Material != nil {
		return r.Material.ID
	}
	return r.MaterialID
}

type reviewSchema struct{}

func (reviewSchema) TableName() string  { return "reviews" }
func (reviewSchema) PrimaryKey() string { return "id" }

func (reviewSchema) SelectColumns() []string {
	return []string{"id", "text", "score", "material_id"}
}

func (reviewSchema) InsertRow(r *Review) ([]string, []any) {
	r.MaterialID = r.ResolvedMaterialID()
	return []string{"text", "score", "material_id"}, []any{r.Text, r.Score, r.MaterialID}
}

func (reviewSchema) UpdateMap(r *Review) map[string]any {
	return map[string]any{
		"text":        r.Text,
		"score":       r.Score,
		"material_id": r.ResolvedMaterialID(),
	}
}

func (reviewSchema) KeyOf(r *Review) any        { return r.ID }
func (reviewSchema) SetKey(r *Review, id int64) { r.ID = id }
func (reviewSchema) AutoIncrement() bool        { return true }

func (reviewSchema) Includes() map[string]database.Include[Review] {
	return map[string]database.Include[Review]{
		"Material": database.BelongsTo(
			func(r *Review) int64 { return r.MaterialID },
			func(m *Material) int64 { return m.ID },
			func(r *Review, m *Material) { r.Material = m }),
	}
}
