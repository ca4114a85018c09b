package handler

import (
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	"eduresource-api/internal/data"
	"eduresource-api/internal/domains/material"
	"eduresource-api/internal/models"
	"eduresource-api/internal/shared/request"
	"eduresource-api/internal/shared/response"
	"eduresource-api/pkg/database"
)

// readIncludes loads the author's own materials so materialsCount is right.
const readIncludes = "Author.Materials,Category"

var referenced = map[string]string{"Material": "Material is still referenced by one or more reviews."}

type MaterialHandler struct {
	store *data.Store
}

func NewMaterialHandler(store *data.Store) *MaterialHandler {
	return &MaterialHandler{store: store}
}

// GetAll - GET /materials
func (h *MaterialHandler) GetAll(c *gin.Context) {
	h.list(c, nil, false)
}

// GetByCategory - GET /materials/category/:categoryId
func (h *MaterialHandler) GetByCategory(c *gin.Context) {
	id, ok := request.PathID(c, "categoryId")
	if !ok {
		return
	}
	h.list(c, sq.Eq{"category_id": id}, false)
}

// GetByCategorySorted - GET /materials/category/:categoryId/sortByDate
func (h *MaterialHandler) GetByCategorySorted(c *gin.Context) {
	id, ok := request.PathID(c, "categoryId")
	if !ok {
		return
	}
	h.list(c, sq.Eq{"category_id": id}, true)
}

func (h *MaterialHandler) list(c *gin.Context, filter sq.Sqlizer, byDate bool) {
	uow := h.store.NewUnitOfWork()

	materials, err := uow.Materials.Get(c.Request.Context(), filter, readIncludes)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if len(materials) == 0 {
		request.LogFail(c, "No Materials Exist")
		response.NotFound(c)
		return
	}

	if byDate {
		sort.SliceStable(materials, func(i, j int) bool {
			return materials[i].Published.Before(materials[j].Published)
		})
	}

	request.LogSuccess(c, fmt.Sprint(len(materials)))
	response.OK(c, material.ToResponses(materials))
}

// GetByID - GET /materials/:materialId
func (h *MaterialHandler) GetByID(c *gin.Context) {
	id, ok := request.PathID(c, "materialId")
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity, ok := h.find(c, uow, id, readIncludes)
	if !ok {
		return
	}

	request.LogSuccess(c, "")
	response.OK(c, material.ToResponse(entity))
}

// Create - POST /materials
func (h *MaterialHandler) Create(c *gin.Context) {
	var req material.CreateMaterialRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	if !h.referencesExist(c, uow, req.AuthorID, req.CategoryID) {
		return
	}

	entity := req.ToEntity()
	uow.Materials.Insert(entity)
	if !request.Commit(c, uow, referenced) {
		return
	}

	created, ok := h.find(c, uow, entity.ID, readIncludes)
	if !ok {
		return
	}

	request.LogSuccess(c, fmt.Sprintf("Id: %d", entity.ID))
	response.Created(c, fmt.Sprintf("/materials/%d", entity.ID), material.ToResponse(created))
}

// Update - PUT /materials/:materialId
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := request.PathID(c, "materialId")
	if !ok {
		return
	}

	var req material.CreateMaterialRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity, ok := h.find(c, uow, id)
	if !ok {
		return
	}
	if !h.referencesExist(c, uow, req.AuthorID, req.CategoryID) {
		return
	}

	req.ApplyTo(entity)
	uow.Materials.Update(entity)
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}

// Patch - PATCH /materials/:materialId
func (h *MaterialHandler) Patch(c *gin.Context) {
	id, ok := request.PathID(c, "materialId")
	if !ok {
		return
	}

	var req material.PatchMaterialRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity, ok := h.find(c, uow, id)
	if !ok {
		return
	}

	req.ApplyTo(entity)
	if !h.referencesExist(c, uow, entity.AuthorID, entity.CategoryID) {
		return
	}

	uow.Materials.Update(entity)
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}

// Delete - DELETE /materials/:materialId
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := request.PathID(c, "materialId")
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	if _, ok := h.find(c, uow, id); !ok {
		return
	}

	if err := uow.Materials.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}

func (h *MaterialHandler) find(c *gin.Context, uow *data.UnitOfWork, id int64, include ...string) (*models.Material, bool) {
	return request.FindOne(c, uow.Materials, sq.Eq{"id": id}, "Material", include...)
}

// referencesExist checks the author and category a material points at.
// A missing one is answered with 400 naming the field.
func (h *MaterialHandler) referencesExist(c *gin.Context, uow *data.UnitOfWork, authorID, categoryID int64) bool {
	ctx := c.Request.Context()

	authors, err := uow.Authors.Get(ctx, sq.Eq{"id": authorID})
	if err != nil {
		_ = c.Error(err)
		return false
	}
	if a, err := database.SingleOrDefault(authors); err != nil || a == nil {
		errs := map[string]string{"AuthorId": "Author does not exist in database."}
		request.LogFail(c, response.Summary(errs))
		response.ValidationFailed(c, errs)
		return false
	}

	categories, err := uow.Categories.Get(ctx, sq.Eq{"id": categoryID})
	if err != nil {
		_ = c.Error(err)
		return false
	}
	if cat, err := database.SingleOrDefault(categories); err != nil || cat == nil {
		errs := map[string]string{"CategoryId": "Category does not exist in database."}
		request.LogFail(c, response.Summary(errs))
		response.ValidationFailed(c, errs)
		return false
	}

	return true
}
