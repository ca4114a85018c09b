package handler

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	"eduresource-api/internal/data"
	"eduresource-api/internal/domains/author"
	"eduresource-api/internal/models"
	"eduresource-api/internal/shared/request"
	"eduresource-api/internal/shared/response"
)

type AuthorHandler struct {
	store *data.Store
}

func NewAuthorHandler(store *data.Store) *AuthorHandler {
	return &AuthorHandler{store: store}
}

// ════════════════════════════════════════════════════════════════
// READ: GetAll - GET /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetAll(c *gin.Context) {
	uow := h.store.NewUnitOfWork()

	authors, err := uow.Authors.Get(c.Request.Context(), nil, "Materials")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if len(authors) == 0 {
		request.LogFail(c, "No Authors Exist")
		response.NotFound(c)
		return
	}

	request.LogSuccess(c, fmt.Sprint(len(authors)))
	response.OK(c, author.ToResponses(authors))
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /authors/:authorId
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := request.PathID(c, "authorId")
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	a, ok := h.find(c, uow, id, "Materials")
	if !ok {
		return
	}

	request.LogSuccess(c, "")
	response.OK(c, author.ToResponse(a))
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity := req.ToEntity()
	uow.Authors.Insert(entity)
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, fmt.Sprintf("Id: %d", entity.ID))
	response.Created(c, fmt.Sprintf("/authors/%d", entity.ID), author.ToResponse(entity))
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /authors/:authorId
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := request.PathID(c, "authorId")
	if !ok {
		return
	}

	var req author.CreateAuthorRequest
	if !request.BindAndValidate(c, &req) {
		return
	}

	uow := h.store.NewUnitOfWork()
	entity, ok := h.find(c, uow, id)
	if !ok {
		return
	}

	req.ApplyTo(entity)
	uow.Authors.Update(entity)
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /authors/:authorId
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := request.PathID(c, "authorId")
	if !ok {
		return
	}

	uow := h.store.NewUnitOfWork()
	if _, ok := h.find(c, uow, id); !ok {
		return
	}

	if err := uow.Authors.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	if !request.Commit(c, uow, referenced) {
		return
	}

	request.LogSuccess(c, "")
	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

var referenced = map[string]string{"Author": "Author is still referenced by one or more materials."}

func (h *AuthorHandler) find(c *gin.Context, uow *data.UnitOfWork, id int64, include ...string) (*models.Author, bool) {
	return request.FindOne(c, uow.Authors, sq.Eq{"id": id}, "Author", include...)
}
