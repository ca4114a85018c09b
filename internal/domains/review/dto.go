package review

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"eduresource-api/internal/models"
)

// CreateReviewRequest is the body of POST and PUT on a material's reviews.
// The material comes from the path.
type CreateReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, 256)),
		validation.Field(&r.Score, validation.Required, validation.Min(1), validation.Max(10)),
	)
}

func (r CreateReviewRequest) ToEntity(materialID int64) *models.Review {
	rv := &models.Review{MaterialID: materialID}
	r.ApplyTo(rv)
	return rv
}

func (r CreateReviewRequest) ApplyTo(rv *models.Review) {
	rv.Text = r.Text
	rv.Score = r.Score
}

type ReviewResponse struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Score      int    `json:"score"`
	MaterialID int64  `json:"materialId"`
}

func ToResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		Text:       r.Text,
		Score:      r.Score,
		MaterialID: r.MaterialID,
	}
}

func ToResponses(reviews []*models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToResponse(r))
	}
	return out
}
