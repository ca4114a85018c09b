package handler

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	"eduresource-api/internal/data"
	"eduresource-api/internal/domains/category"
	"eduresource-api/internal/shared/request"
	"eduresource-api/internal/shared/response"
)

type CategoryHandler struct {
	store *data.Store
}

func NewCategoryHandler(store *data.Store) *CategoryHandler {
	return &CategoryHandler{store: store}
}

var referenced = map[string]string{"Category": "Category is still referenced by one or more materials."}

// GetAll - GET /categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	uow := h.store.NewUnitOfWork()

	categories, err := uow.Categories.Get(c.Request.Context(), nil)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if len(categories) == 0 {
		request.LogFail(c, "No Categories Exist")
		response.NotFound(c)
		return
	}

	request.LogSuccess(c, fmt.Sprint(len(categories)))
	response.OK(c, category.ToResponses(categories))
}

// GetByID - GET /categories/:categoryId
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := request.PathID(c, "categoryId")
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity, ok := request.FindOne(c, uow.Categories, sq.Eq{"id": id}, "Category")
	if !ok {
		return
	}

	request.LogSuccess(c, "")
	response.OK(c, category.ToResponse(entity))
}

// Create - POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity := req.ToEntity()
	uow.Categories.Insert(entity)
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, fmt.Sprintf("Id: %d", entity.ID))
	response.Created(c, fmt.Sprintf("/categories/%d", entity.ID), category.ToResponse(entity))
}

// Update - PUT /categories/:categoryId
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := request.PathID(c, "categoryId")
	if !ok {
		return
	}

	var req category.CreateCategoryRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity, ok := request.FindOne(c, uow.Categories, sq.Eq{"id": id}, "Category")
	if !ok {
		return
	}

	req.ApplyTo(entity)
	uow.Categories.Update(entity)
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}

// Delete - DELETE /categories/:categoryId
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := request.PathID(c, "categoryId")
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	if _, ok := request.FindOne(c, uow.Categories, sq.Eq{"id": id}, "Category"); !ok {
		return
	}

	if err := uow.Categories.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}
