package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"eduresource-api/internal/models"
)

// CreateAuthorRequest is the body of POST and PUT /authors.
type CreateAuthorRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 256)),
	)
}

func (r CreateAuthorRequest) ToEntity() *models.Author {
	a := &models.Author{}
	r.ApplyTo(a)
	return a
}

// ApplyTo overwrites every writable field of a.
func (r CreateAuthorRequest) ApplyTo(a *models.Author) {
	a.Name = r.Name
	a.Description = r.Description
}

type AuthorResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	MaterialsCount int    `json:"materialsCount"`
}

// ToResponse converts Author to AuthorResponse. MaterialsCount is only
// meaningful when the Materials relation was loaded.
func ToResponse(a *models.Author) AuthorResponse {
	return AuthorResponse{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		MaterialsCount: len(a.Materials),
	}
}

func ToResponses(authors []*models.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, ToResponse(a))
	}
	return out
}
