package handler

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	"eduresource-api/internal/data"
	"eduresource-api/internal/domains/review"
	"eduresource-api/internal/models"
	"eduresource-api/internal/shared/request"
	"eduresource-api/internal/shared/response"
)

var missingMaterial = map[string]string{"MaterialId": "Material does not exist in database."}

// ReviewHandler serves /materials/:materialId/reviews.
type ReviewHandler struct {
	store *data.Store
}

func NewReviewHandler(store *data.Store) *ReviewHandler {
	return &ReviewHandler{store: store}
}

// GetAll - GET /materials/:materialId/reviews
func (h *ReviewHandler) GetAll(c *gin.Context) {
	materialID, ok := request.PathID(c, "materialId")
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	reviews, err := uow.Reviews.Get(c.Request.Context(), sq.Eq{"material_id": materialID}, "Material")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if len(reviews) == 0 {
		request.LogFail(c, "No Reviews Exist")
		response.NotFound(c)
		return
	}

	request.LogSuccess(c, fmt.Sprint(len(reviews)))
	response.OK(c, review.ToResponses(reviews))
}

// GetByID - GET /materials/:materialId/reviews/:reviewId
func (h *ReviewHandler) GetByID(c *gin.Context) {
	materialID, reviewID, ok := ids(c)
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity, ok := h.find(c, uow, materialID, reviewID, "Material")
	if !ok {
		return
	}

	request.LogSuccess(c, "")
	response.OK(c, review.ToResponse(entity))
}

// Create - POST /materials/:materialId/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	materialID, ok := request.PathID(c, "materialId")
	if !ok {
		return
	}

	var req review.CreateReviewRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	if _, ok := request.FindOne(c, uow.Materials, sq.Eq{"id": materialID}, "Material"); !ok {
		return
	}

	entity := req.ToEntity(materialID)
	uow.Reviews.Insert(entity)
	if !request.Commit(c, uow, missingMaterial) {
		return
	}

	request.LogSuccess(c, fmt.Sprintf("Id: %d", entity.ID))
	response.Created(c, fmt.Sprintf("/materials/%d/reviews/%d", materialID, entity.ID), review.ToResponse(entity))
}

// Update - PUT /materials/:materialId/reviews/:reviewId
func (h *ReviewHandler) Update(c *gin.Context) {
	materialID, reviewID, ok := ids(c)
	if !ok {
		return
	}

	var req review.CreateReviewRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity, ok := h.find(c, uow, materialID, reviewID)
	if !ok {
		return
	}

	req.ApplyTo(entity)
	uow.Reviews.Update(entity)
	if !request.Commit(c, uow, missingMaterial) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}

// Delete - DELETE /materials/:materialId/reviews/:reviewId
func (h *ReviewHandler) Delete(c *gin.Context) {
	materialID, reviewID, ok := ids(c)
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	if _, ok := h.find(c, uow, materialID, reviewID); !ok {
		return
	}

	if err := uow.Reviews.Delete(c.Request.Context(), reviewID); err != nil {
		_ = c.Error(err)
		return
	}
	if !request.Commit(c, uow, missingMaterial) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}

func (h *ReviewHandler) find(c *gin.Context, uow *data.UnitOfWork, materialID, reviewID int64, include ...string) (*models.Review, bool) {
	filter := sq.Eq{"material_id": materialID, "id": reviewID}
	return request.FindOne(c, uow.Reviews, filter, "Review", include...)
}

func ids(c *gin.Context) (materialID, reviewID int64, ok bool) {
	if materialID, ok = request.PathID(c, "materialId"); !ok {
		return 0, 0, false
	}
	if reviewID, ok = request.PathID(c, "reviewId"); !ok {
		return 0, 0, false
	}
	return materialID, reviewID, true
}
