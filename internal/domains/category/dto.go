package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"eduresource-api/internal/models"
)

// CreateCategoryRequest is the body of POST and PUT /categories.
type CreateCategoryRequest struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.Definition, validation.Required, validation.Length(1, 256)),
	)
}

func (r CreateCategoryRequest) ToEntity() *models.Category {
	c := &models.Category{}
	r.ApplyTo(c)
	return c
}

func (r CreateCategoryRequest) ApplyTo(c *models.Category) {
	c.Name = r.Name
	c.Definition = r.Definition
}

type CategoryResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

func ToResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		Definition: c.Definition,
	}
}

func ToResponses(categories []*models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, ToResponse(c))
	}
	return out
}
