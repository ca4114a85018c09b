package material

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"eduresource-api/internal/domains/author"
	"eduresource-api/internal/domains/category"
	"eduresource-api/internal/models"
	"eduresource-api/internal/shared"
)

// CreateMaterialRequest is the body of POST and PUT /materials.
type CreateMaterialRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Published   shared.Date `json:"published"`
	AuthorID    int64       `json:"authorId"`
	CategoryID  int64       `json:"categoryId"`
}

func (r CreateMaterialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.Location, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.Published, shared.DateRequired),
		validation.Field(&r.AuthorID, validation.Required, validation.Min(1)),
		validation.Field(&r.CategoryID, validation.Required, validation.Min(1)),
	)
}

func (r CreateMaterialRequest) ToEntity() *models.Material {
	m := &models.Material{}
	r.ApplyTo(m)
	return m
}

// ApplyTo overwrites every writable field of m, dropping any loaded
// relation that no longer matches.
func (r CreateMaterialRequest) ApplyTo(m *models.Material) {
	m.Title = r.Title
	m.Description = r.Description
	m.Location = r.Location
	m.Published = r.Published.Time
	setAuthor(m, r.AuthorID)
	setCategory(m, r.CategoryID)
}

// PatchMaterialRequest is the body of PATCH /materials/:materialId.
// Absent fields keep their stored value.
type PatchMaterialRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Location    *string      `json:"location"`
	Published   *shared.Date `json:"published"`
	AuthorID    *int64       `json:"authorId"`
	CategoryID  *int64       `json:"categoryId"`
}

func (r PatchMaterialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 256)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(1, 256)),
		validation.Field(&r.Location, validation.NilOrNotEmpty, validation.Length(1, 256)),
		validation.Field(&r.Published, validation.When(r.Published != nil, shared.DateRequired)),
		validation.Field(&r.AuthorID, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.CategoryID, validation.NilOrNotEmpty, validation.Min(1)),
	)
}

// ApplyTo merges the present fields into m.
func (r PatchMaterialRequest) ApplyTo(m *models.Material) {
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Location != nil {
		m.Location = *r.Location
	}
	if r.Published != nil {
		m.Published = r.Published.Time
	}
	if r.AuthorID != nil {
		setAuthor(m, *r.AuthorID)
	}
	if r.CategoryID != nil {
		setCategory(m, *r.CategoryID)
	}
}

func setAuthor(m *models.Material, id int64) {
	if m.Author != nil && m.Author.ID != id {
		m.Author = nil
	}
	m.AuthorID = id
}

func setCategory(m *models.Material, id int64) {
	if m.Category != nil && m.Category.ID != id {
		m.Category = nil
	}
	m.CategoryID = id
}

type MaterialResponse struct {
	ID          int64                      `json:"id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Location    string                     `json:"location"`
	Published   shared.Date                `json:"published"`
	Author      *author.AuthorResponse     `json:"author"`
	Category    *category.CategoryResponse `json:"category"`
}

// ToResponse converts Material to MaterialResponse. Author and Category are
// null unless those relations were loaded.
func ToResponse(m *models.Material) MaterialResponse {
	resp := MaterialResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Published:   shared.NewDate(m.Published),
	}
	if m.Author != nil {
		a := author.ToResponse(m.Author)
		resp.Author = &a
	}
	if m.Category != nil {
		c := category.ToResponse(m.Category)
		resp.Category = &c
	}
	return resp
}

func ToResponses(materials []*models.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, ToResponse(m))
	}
	return out
}
