package request

import (
	"context"
	"net/http"

	sq "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	"eduresource-api/internal/shared/response"
	"eduresource-api/pkg/database"
)

// Committer is satisfied by a unit of work.
type Committer interface {
	Commit(ctx context.Context) (bool, error)
}

// FindOne loads the single row matching filter. When there is none it logs
// "<entity> Not Found" and answers 404; lookup failures go to c.Error.
func FindOne[T any](c *gin.Context, repo *database.Repository[T], filter sq.Sqlizer, entity string, include ...string) (*T, bool) {
	rows, err := repo.Get(c.Request.Context(), filter, include...)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}

	row, err := database.SingleOrDefault(rows)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	if row == nil {
		LogFail(c, entity+" Not Found")
		response.NotFound(c)
		return nil, false
	}
	return row, true
}

// Commit applies the staged changes. A foreign key violation is answered
// with 409 and conflict as the field errors, a commit that touched no rows
// with an empty 400, anything else goes to c.Error.
func Commit(c *gin.Context, uow Committer, conflict map[string]string) bool {
	ok, err := uow.Commit(c.Request.Context())
	switch {
	case err != nil && database.IsForeignKeyViolation(err):
		LogFail(c, response.Summary(conflict))
		response.Conflict(c, http.StatusText(http.StatusConflict), conflict)
		return false
	case err != nil:
		_ = c.Error(err)
		return false
	case !ok:
		LogFail(c, "Nothing Changed")
		response.BadRequest(c)
		return false
	}
	return true
}
